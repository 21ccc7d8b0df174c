package entities

import "time"

// Patient represents a care-seeking account. The recommendation engine
// only ever reads patients, it never mutates them.
type Patient struct {
	ID        string    `json:"patient_id" db:"patient_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Language  string    `json:"language" db:"language"`
	Religion  string    `json:"religion" db:"religion"`
	Address   string    `json:"address" db:"address"`
	Gender    string    `json:"gender" db:"gender"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
