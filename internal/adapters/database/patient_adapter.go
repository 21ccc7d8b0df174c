package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/repositories"
	"github.com/Rohanmore123/mental-health-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/Rohanmore123/mental-health-backend/pkg/errors"
)

// PatientAdapter implements the PatientRepository interface
type PatientAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPatientAdapter creates a new patient adapter
func NewPatientAdapter(client *postgres.Client) repositories.PatientRepository {
	return &PatientAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a patient by ID
func (a *PatientAdapter) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	query, args, err := a.db.From("patients").
		Select("patient_id", "user_id", "language", "religion", "address", "gender").
		Where(goqu.C("patient_id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build patient query", err)
	}

	var (
		patient                     entities.Patient
		language, religion, address sql.NullString
		gender                      sql.NullString
	)
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&patient.ID,
		&patient.UserID,
		&language,
		&religion,
		&address,
		&gender,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("patient with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get patient", err)
	}

	patient.Language = language.String
	patient.Religion = religion.String
	patient.Address = address.String
	patient.Gender = gender.String

	return &patient, nil
}
