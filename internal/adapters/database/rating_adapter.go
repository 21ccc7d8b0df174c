package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/repositories"
	"github.com/Rohanmore123/mental-health-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/Rohanmore123/mental-health-backend/pkg/errors"
)

// RatingAdapter implements the RatingRepository interface
type RatingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRatingAdapter creates a new rating adapter
func NewRatingAdapter(client *postgres.Client) repositories.RatingRepository {
	return &RatingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores a new rating
func (a *RatingAdapter) Create(ctx context.Context, rating *entities.Rating) error {
	record := goqu.Record{
		"rating_id":  rating.ID,
		"doctor_id":  rating.DoctorID,
		"patient_id": rating.PatientID,
		"rating":     rating.Value,
		"comment":    sql.NullString{String: rating.Comment, Valid: rating.Comment != ""},
		"created_at": rating.CreatedAt,
	}

	query, args, err := a.db.Insert("ratings").Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build rating insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create rating", err)
	}

	return nil
}

// ListByDoctor retrieves all ratings for one doctor
func (a *RatingAdapter) ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Rating, error) {
	query, args, err := a.db.From("ratings").
		Select("rating_id", "doctor_id", "patient_id", "rating", "comment", "created_at").
		Where(goqu.C("doctor_id").Eq(doctorID)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build rating query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list ratings", err)
	}
	defer rows.Close()

	ratings := []*entities.Rating{}
	for rows.Next() {
		var (
			rating  entities.Rating
			comment sql.NullString
		)
		if err := rows.Scan(&rating.ID, &rating.DoctorID, &rating.PatientID, &rating.Value, &comment, &rating.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan rating", err)
		}
		rating.Comment = comment.String
		ratings = append(ratings, &rating)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate ratings", err)
	}

	return ratings, nil
}
