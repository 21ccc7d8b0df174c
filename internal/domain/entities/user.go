package entities

import (
	"time"
)

// User represents a platform account. Both doctors and patients are
// backed by exactly one user row; a doctor whose user is inactive is
// invisible to every directory query.
type User struct {
	ID        string    `json:"id" db:"user_id"`
	Email     string    `json:"email" db:"email"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Gender    string    `json:"gender" db:"gender"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FullName returns "first last" for display purposes.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
