package repositories

import (
	"context"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
)

// PatientRepository defines read access to patient profiles.
type PatientRepository interface {
	// GetByID retrieves a patient by ID
	GetByID(ctx context.Context, id string) (*entities.Patient, error)
}
