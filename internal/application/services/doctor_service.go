package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/repositories"
	apperrors "github.com/Rohanmore123/mental-health-backend/pkg/errors"
)

// DoctorProfile is a directory entry enriched with live rating data.
type DoctorProfile struct {
	Doctor        *entities.Doctor `json:"doctor"`
	AverageRating *float64         `json:"average_rating"`
	RatingCount   int              `json:"rating_count"`
}

// DoctorService handles directory listing, profiles, ratings, and
// free-text search.
type DoctorService struct {
	doctorRepo repositories.DoctorRepository
	ratingRepo repositories.RatingRepository
	searchRepo repositories.DoctorSearchRepository
}

// NewDoctorService creates a new doctor service. searchRepo may be nil
// when no search backend is configured.
func NewDoctorService(
	doctorRepo repositories.DoctorRepository,
	ratingRepo repositories.RatingRepository,
	searchRepo repositories.DoctorSearchRepository,
) *DoctorService {
	return &DoctorService{
		doctorRepo: doctorRepo,
		ratingRepo: ratingRepo,
		searchRepo: searchRepo,
	}
}

// List retrieves active doctors matching the structured filter
func (s *DoctorService) List(ctx context.Context, filter repositories.DoctorFilter) ([]*entities.Doctor, error) {
	return s.doctorRepo.ListActive(ctx, filter)
}

// GetProfile retrieves one doctor with the rating average computed at
// read time.
func (s *DoctorService) GetProfile(ctx context.Context, id string) (*DoctorProfile, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ratings, err := s.ratingRepo.ListByDoctor(ctx, id)
	if err != nil {
		return nil, err
	}

	average := entities.AverageRating(ratings)
	if average != nil {
		rounded := math.Round(*average*100) / 100
		average = &rounded
	}

	return &DoctorProfile{
		Doctor:        doctor,
		AverageRating: average,
		RatingCount:   len(ratings),
	}, nil
}

// Rate stores a patient's rating of a doctor
func (s *DoctorService) Rate(ctx context.Context, rating *entities.Rating) error {
	if rating.Value < 1 || rating.Value > 5 {
		return apperrors.NewValidationError("rating must be between 1 and 5")
	}
	if rating.PatientID == "" {
		return apperrors.NewValidationError("patient_id is required")
	}

	if _, err := s.doctorRepo.GetByID(ctx, rating.DoctorID); err != nil {
		return err
	}

	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	rating.CreatedAt = time.Now()

	return s.ratingRepo.Create(ctx, rating)
}

// ListRatings retrieves all ratings for one doctor
func (s *DoctorService) ListRatings(ctx context.Context, doctorID string) ([]*entities.Rating, error) {
	if _, err := s.doctorRepo.GetByID(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.ratingRepo.ListByDoctor(ctx, doctorID)
}

// Search performs free-text search over the doctor index
func (s *DoctorService) Search(ctx context.Context, query string, limit int) ([]*repositories.DoctorSearchHit, error) {
	if s.searchRepo == nil {
		return nil, apperrors.NewExternalError("doctor search is not configured", nil)
	}
	if query == "" {
		return nil, apperrors.NewValidationError("query is required")
	}
	return s.searchRepo.Search(ctx, query, limit)
}
