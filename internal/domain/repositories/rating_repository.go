package repositories

import (
	"context"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
)

// RatingRepository defines rating persistence and lookup.
type RatingRepository interface {
	// Create stores a new rating
	Create(ctx context.Context, rating *entities.Rating) error

	// ListByDoctor retrieves all ratings for one doctor
	ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Rating, error)
}
