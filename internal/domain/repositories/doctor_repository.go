package repositories

import (
	"context"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
)

// DoctorRepository defines read access to the doctor directory. Every
// query is scoped to doctors whose owning user account is active, with
// availability windows and the owning user eagerly attached.
type DoctorRepository interface {
	// GetByID retrieves one active doctor by ID
	GetByID(ctx context.Context, id string) (*entities.Doctor, error)

	// ListActive retrieves active doctors matching the filter
	ListActive(ctx context.Context, filter DoctorFilter) ([]*entities.Doctor, error)
}

// DoctorSearchRepository defines free-text doctor search (e.g. Typesense)
type DoctorSearchRepository interface {
	// Search searches doctors by name or specialization
	Search(ctx context.Context, query string, limit int) ([]*DoctorSearchHit, error)

	// Index indexes a doctor
	Index(ctx context.Context, doctor *entities.Doctor) error

	// Delete removes a doctor from the index
	Delete(ctx context.Context, id string) error
}

// DoctorSearchHit is one free-text search result from the doctor index.
type DoctorSearchHit struct {
	DoctorID        string  `json:"doctor_id"`
	Name            string  `json:"name"`
	Specialization  string  `json:"specialization"`
	Language        string  `json:"language"`
	Address         string  `json:"address"`
	Gender          string  `json:"gender"`
	ConsultationFee float64 `json:"consultation_fee"`
}

// DoctorFilter defines the structured directory filters. Zero-valued
// fields impose no constraint; all present fields apply conjunctively.
type DoctorFilter struct {
	Language           string
	Region             string // case-insensitive substring of address
	Gender             string
	Specialization     string // case-insensitive substring
	MaxConsultationFee *float64
	ExcludeIDs         []string
}

// IsZero reports whether the filter imposes no constraint at all.
func (f DoctorFilter) IsZero() bool {
	return f.Language == "" && f.Region == "" && f.Gender == "" &&
		f.Specialization == "" && f.MaxConsultationFee == nil && len(f.ExcludeIDs) == 0
}
