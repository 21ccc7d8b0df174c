package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/repositories"
	apperrors "github.com/Rohanmore123/mental-health-backend/pkg/errors"
)

func TestDoctorService_GetProfile(t *testing.T) {
	doctorRepo := new(mockDoctorRepo)
	ratingRepo := new(mockRatingRepo)
	service := NewDoctorService(doctorRepo, ratingRepo, nil)

	doctor := testDoctor("d1", nil)
	doctorRepo.On("GetByID", mock.Anything, "d1").Return(doctor, nil)
	ratingRepo.On("ListByDoctor", mock.Anything, "d1").Return([]*entities.Rating{
		{Value: 5}, {Value: 4},
	}, nil)

	profile, err := service.GetProfile(context.Background(), "d1")

	require.NoError(t, err)
	assert.Equal(t, doctor, profile.Doctor)
	assert.Equal(t, 2, profile.RatingCount)
	require.NotNil(t, profile.AverageRating)
	assert.Equal(t, 4.5, *profile.AverageRating)
}

func TestDoctorService_GetProfile_Unrated(t *testing.T) {
	doctorRepo := new(mockDoctorRepo)
	ratingRepo := new(mockRatingRepo)
	service := NewDoctorService(doctorRepo, ratingRepo, nil)

	doctorRepo.On("GetByID", mock.Anything, "d1").Return(testDoctor("d1", nil), nil)
	ratingRepo.On("ListByDoctor", mock.Anything, "d1").Return([]*entities.Rating{}, nil)

	profile, err := service.GetProfile(context.Background(), "d1")

	require.NoError(t, err)
	assert.Nil(t, profile.AverageRating)
	assert.Zero(t, profile.RatingCount)
}

func TestDoctorService_Rate(t *testing.T) {
	doctorRepo := new(mockDoctorRepo)
	ratingRepo := new(mockRatingRepo)
	service := NewDoctorService(doctorRepo, ratingRepo, nil)

	doctorRepo.On("GetByID", mock.Anything, "d1").Return(testDoctor("d1", nil), nil)
	ratingRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.Rating) bool {
		return r.ID != "" && r.DoctorID == "d1" && r.Value == 4
	})).Return(nil)

	err := service.Rate(context.Background(), &entities.Rating{
		DoctorID:  "d1",
		PatientID: "pat-1",
		Value:     4,
	})

	require.NoError(t, err)
	ratingRepo.AssertExpectations(t)
}

func TestDoctorService_Rate_Validation(t *testing.T) {
	service := NewDoctorService(new(mockDoctorRepo), new(mockRatingRepo), nil)

	tests := []struct {
		name   string
		rating *entities.Rating
	}{
		{"value too low", &entities.Rating{DoctorID: "d1", PatientID: "pat-1", Value: 0}},
		{"value too high", &entities.Rating{DoctorID: "d1", PatientID: "pat-1", Value: 6}},
		{"missing patient", &entities.Rating{DoctorID: "d1", Value: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Rate(context.Background(), tt.rating)
			require.Error(t, err)
			appErr, ok := err.(*apperrors.AppError)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
		})
	}
}

func TestDoctorService_Rate_UnknownDoctor(t *testing.T) {
	doctorRepo := new(mockDoctorRepo)
	ratingRepo := new(mockRatingRepo)
	service := NewDoctorService(doctorRepo, ratingRepo, nil)

	doctorRepo.On("GetByID", mock.Anything, "ghost").
		Return(nil, apperrors.NewNotFoundError("doctor with id ghost not found"))

	err := service.Rate(context.Background(), &entities.Rating{
		DoctorID:  "ghost",
		PatientID: "pat-1",
		Value:     5,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	ratingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDoctorService_Search(t *testing.T) {
	searchRepo := new(mockDoctorSearchRepo)
	service := NewDoctorService(new(mockDoctorRepo), new(mockRatingRepo), searchRepo)

	hits := []*repositories.DoctorSearchHit{
		{DoctorID: "d1", Name: "Asha Verma", Specialization: "Anxiety and stress management"},
	}
	searchRepo.On("Search", mock.Anything, "anxiety", 10).Return(hits, nil)

	got, err := service.Search(context.Background(), "anxiety", 10)

	require.NoError(t, err)
	assert.Equal(t, hits, got)
}

func TestDoctorService_Search_NotConfigured(t *testing.T) {
	service := NewDoctorService(new(mockDoctorRepo), new(mockRatingRepo), nil)

	_, err := service.Search(context.Background(), "anxiety", 10)

	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeExternal, appErr.Type)
}

func TestDoctorService_Search_EmptyQuery(t *testing.T) {
	service := NewDoctorService(new(mockDoctorRepo), new(mockRatingRepo), new(mockDoctorSearchRepo))

	_, err := service.Search(context.Background(), "", 10)

	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}
