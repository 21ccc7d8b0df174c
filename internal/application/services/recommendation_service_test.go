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

type recommendationFixture struct {
	doctorRepo      *mockDoctorRepo
	patientRepo     *mockPatientRepo
	chatRepo        *mockChatMessageRepo
	ratingRepo      *mockRatingRepo
	appointmentRepo *mockAppointmentRepo
	service         *RecommendationService
}

func newRecommendationFixture() *recommendationFixture {
	f := &recommendationFixture{
		doctorRepo:      new(mockDoctorRepo),
		patientRepo:     new(mockPatientRepo),
		chatRepo:        new(mockChatMessageRepo),
		ratingRepo:      new(mockRatingRepo),
		appointmentRepo: new(mockAppointmentRepo),
	}
	f.service = NewRecommendationService(
		f.doctorRepo,
		f.patientRepo,
		f.chatRepo,
		f.ratingRepo,
		f.appointmentRepo,
	)
	return f
}

func testPatient() *entities.Patient {
	return &entities.Patient{
		ID:       "pat-1",
		UserID:   "user-pat-1",
		Language: "Hindi",
		Religion: "Hindu",
		Address:  "Mumbai",
	}
}

func testDoctor(id string, mutate func(*entities.Doctor)) *entities.Doctor {
	doctor := &entities.Doctor{
		ID:              id,
		UserID:          "user-" + id,
		Specialization:  "General psychiatry",
		ConsultationFee: 1000,
		User: &entities.User{
			ID:        "user-" + id,
			FirstName: "Doc",
			LastName:  id,
			Gender:    "female",
			IsActive:  true,
		},
	}
	if mutate != nil {
		mutate(doctor)
	}
	return doctor
}

func TestRecommend_PatientNotFound(t *testing.T) {
	f := newRecommendationFixture()
	f.patientRepo.On("GetByID", mock.Anything, "missing").
		Return(nil, apperrors.NewNotFoundError("patient with id missing not found"))

	recommendations, err := f.service.Recommend(context.Background(), "missing", nil)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Nil(t, recommendations)
	f.doctorRepo.AssertNotCalled(t, "ListActive", mock.Anything, mock.Anything)
}

func TestRecommend_EmptyPatientID(t *testing.T) {
	f := newRecommendationFixture()

	_, err := f.service.Recommend(context.Background(), "", nil)

	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestRecommend_InvalidAvailabilityClock(t *testing.T) {
	f := newRecommendationFixture()

	filter := &entities.RecommendationFilter{
		Availability: &entities.AvailabilityFilter{StartTime: "9am"},
	}
	_, err := f.service.Recommend(context.Background(), "pat-1", filter)

	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	f.patientRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestRecommend_NoDoctorsReturnsEmptyList(t *testing.T) {
	f := newRecommendationFixture()
	f.patientRepo.On("GetByID", mock.Anything, "pat-1").Return(testPatient(), nil)
	f.chatRepo.On("ListBySender", mock.Anything, "pat-1").Return([]*entities.ChatMessage{}, nil)
	f.doctorRepo.On("ListActive", mock.Anything, mock.Anything).Return([]*entities.Doctor{}, nil)

	recommendations, err := f.service.Recommend(context.Background(), "pat-1", nil)

	require.NoError(t, err)
	assert.NotNil(t, recommendations)
	assert.Empty(t, recommendations)
}

func TestRecommend_BackfillTopsUpToFive(t *testing.T) {
	f := newRecommendationFixture()
	f.patientRepo.On("GetByID", mock.Anything, "pat-1").Return(testPatient(), nil)
	f.chatRepo.On("ListBySender", mock.Anything, "pat-1").Return([]*entities.ChatMessage{}, nil)
	f.ratingRepo.On("ListByDoctor", mock.Anything, mock.Anything).Return([]*entities.Rating{}, nil)

	// Three filter matches: d2 outranks the d1/d3 tie.
	filtered := []*entities.Doctor{
		testDoctor("d1", func(d *entities.Doctor) { d.Language = "Hindi" }),
		testDoctor("d2", func(d *entities.Doctor) { d.Language = "Hindi"; d.Religion = "Hindu" }),
		testDoctor("d3", func(d *entities.Doctor) { d.Language = "Hindi" }),
	}
	f.doctorRepo.On("ListActive", mock.Anything, repositories.DoctorFilter{Language: "Hindi"}).
		Return(filtered, nil)

	// Six more in the wider pool; only the best two may be appended.
	pool := []*entities.Doctor{
		testDoctor("b1", nil),
		testDoctor("b2", func(d *entities.Doctor) { d.Religion = "Hindu" }),
		testDoctor("b3", func(d *entities.Doctor) { d.Address = "mumbai" }),
		testDoctor("b4", nil),
		testDoctor("b5", nil),
		testDoctor("b6", nil),
	}
	f.doctorRepo.On("ListActive", mock.Anything, mock.MatchedBy(func(filter repositories.DoctorFilter) bool {
		return len(filter.ExcludeIDs) == 3
	})).Return(pool, nil)

	filter := &entities.RecommendationFilter{Language: "Hindi"}
	recommendations, err := f.service.Recommend(context.Background(), "pat-1", filter)

	require.NoError(t, err)
	require.Len(t, recommendations, 5)

	ids := make([]string, len(recommendations))
	for i, rec := range recommendations {
		ids[i] = rec.DoctorID
	}
	// d2 scores 7, d1 and d3 tie at 5 and keep their filtered order, then
	// the two best backfills: b3 (address, 4) and b2 (religion, 2).
	assert.Equal(t, []string{"d2", "d1", "d3", "b3", "b2"}, ids)
	assert.Equal(t, 7.0, recommendations[0].Score)
	assert.Equal(t, 5.0, recommendations[1].Score)
	assert.Equal(t, 4.0, recommendations[3].Score)
	assert.Equal(t, 2.0, recommendations[4].Score)
}

func TestRecommend_NoBackfillQueryWhenEnoughMatches(t *testing.T) {
	f := newRecommendationFixture()
	f.patientRepo.On("GetByID", mock.Anything, "pat-1").Return(testPatient(), nil)
	f.chatRepo.On("ListBySender", mock.Anything, "pat-1").Return([]*entities.ChatMessage{}, nil)
	f.ratingRepo.On("ListByDoctor", mock.Anything, mock.Anything).Return([]*entities.Rating{}, nil)

	filtered := make([]*entities.Doctor, 0, 7)
	for _, id := range []string{"d1", "d2", "d3", "d4", "d5", "d6", "d7"} {
		filtered = append(filtered, testDoctor(id, nil))
	}
	f.doctorRepo.On("ListActive", mock.Anything, mock.Anything).Return(filtered, nil)

	recommendations, err := f.service.Recommend(context.Background(), "pat-1", nil)

	require.NoError(t, err)
	assert.Len(t, recommendations, 5)
	f.doctorRepo.AssertNumberOfCalls(t, "ListActive", 1)
}

func TestRecommend_RatingAverageFeedsScore(t *testing.T) {
	f := newRecommendationFixture()
	patient := testPatient()
	patient.Language = "English"
	patient.Religion = ""
	patient.Address = ""
	f.patientRepo.On("GetByID", mock.Anything, "pat-1").Return(patient, nil)
	f.chatRepo.On("ListBySender", mock.Anything, "pat-1").Return([]*entities.ChatMessage{}, nil)

	doctor := testDoctor("d1", func(d *entities.Doctor) { d.Language = "English" })
	f.doctorRepo.On("ListActive", mock.Anything, mock.Anything).
		Return([]*entities.Doctor{doctor}, nil).Once()
	f.doctorRepo.On("ListActive", mock.Anything, mock.Anything).
		Return([]*entities.Doctor{}, nil)

	ratings := []*entities.Rating{
		{ID: "r1", DoctorID: "d1", Value: 4},
		{ID: "r2", DoctorID: "d1", Value: 5},
		{ID: "r3", DoctorID: "d1", Value: 3},
	}
	f.ratingRepo.On("ListByDoctor", mock.Anything, "d1").Return(ratings, nil)

	recommendations, err := f.service.Recommend(context.Background(), "pat-1", nil)

	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	// +5 language plus the 4.0 mean of [4,5,3]
	assert.Equal(t, 9.0, recommendations[0].Score)
	require.NotNil(t, recommendations[0].AverageRating)
	assert.Equal(t, 4.0, *recommendations[0].AverageRating)
}

func TestRecommend_AvailabilityWindowMustCoverRange(t *testing.T) {
	f := newRecommendationFixture()
	f.patientRepo.On("GetByID", mock.Anything, "pat-1").Return(testPatient(), nil)
	f.chatRepo.On("ListBySender", mock.Anything, "pat-1").Return([]*entities.ChatMessage{}, nil)
	f.ratingRepo.On("ListByDoctor", mock.Anything, mock.Anything).Return([]*entities.Rating{}, nil)

	// Only Monday window is in the afternoon, so a morning request must
	// exclude this doctor even though the day matches.
	afternoonOnly := testDoctor("d1", func(d *entities.Doctor) {
		d.Availability = []entities.DoctorAvailability{
			{DoctorID: "d1", DayOfWeek: "Monday", StartTime: "14:00", EndTime: "15:00"},
		}
	})
	morning := testDoctor("d2", func(d *entities.Doctor) {
		d.Availability = []entities.DoctorAvailability{
			{DoctorID: "d2", DayOfWeek: "Monday", StartTime: "08:00", EndTime: "12:00"},
		}
	})
	f.doctorRepo.On("ListActive", mock.Anything, repositories.DoctorFilter{}).
		Return([]*entities.Doctor{afternoonOnly, morning}, nil).Once()
	f.doctorRepo.On("ListActive", mock.Anything, mock.Anything).Return([]*entities.Doctor{}, nil)

	filter := &entities.RecommendationFilter{
		Availability: &entities.AvailabilityFilter{
			Day:       "Monday",
			StartTime: "09:00",
			EndTime:   "10:00",
		},
	}
	recommendations, err := f.service.Recommend(context.Background(), "pat-1", filter)

	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	assert.Equal(t, "d2", recommendations[0].DoctorID)
	f.appointmentRepo.AssertNotCalled(t, "ListBookedDoctorIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecommend_BusyDoctorsExcludedForConcreteSlot(t *testing.T) {
	f := newRecommendationFixture()
	f.patientRepo.On("GetByID", mock.Anything, "pat-1").Return(testPatient(), nil)
	f.chatRepo.On("ListBySender", mock.Anything, "pat-1").Return([]*entities.ChatMessage{}, nil)
	f.ratingRepo.On("ListByDoctor", mock.Anything, mock.Anything).Return([]*entities.Rating{}, nil)

	windows := []entities.DoctorAvailability{
		{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "17:00"},
	}
	booked := testDoctor("d1", func(d *entities.Doctor) { d.Availability = windows })
	free := testDoctor("d2", func(d *entities.Doctor) { d.Availability = windows })

	f.doctorRepo.On("ListActive", mock.Anything, repositories.DoctorFilter{}).
		Return([]*entities.Doctor{booked, free}, nil).Once()
	f.doctorRepo.On("ListActive", mock.Anything, mock.Anything).Return([]*entities.Doctor{}, nil)
	f.appointmentRepo.On("ListBookedDoctorIDs", mock.Anything, "2026-09-07", "10:00").
		Return([]string{"d1"}, nil)

	filter := &entities.RecommendationFilter{
		Availability: &entities.AvailabilityFilter{
			Day:       "Monday",
			Date:      "2026-09-07",
			StartTime: "10:00",
			EndTime:   "11:00",
		},
	}
	recommendations, err := f.service.Recommend(context.Background(), "pat-1", filter)

	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	assert.Equal(t, "d2", recommendations[0].DoctorID)
}

func TestScoreDoctor(t *testing.T) {
	patient := &entities.Patient{Language: "Hindi", Religion: "Hindu", Address: "Mumbai"}

	tests := []struct {
		name     string
		doctor   *entities.Doctor
		messages []*entities.ChatMessage
		ratings  []*entities.Rating
		want     float64
	}{
		{
			name:   "no overlap",
			doctor: &entities.Doctor{Language: "English", Religion: "Christian", Address: "Kochi"},
			want:   0,
		},
		{
			name:   "full demographic match",
			doctor: &entities.Doctor{Language: "Hindi", Religion: "Hindu", Address: "Mumbai"},
			want:   11,
		},
		{
			name:   "address match is case-insensitive",
			doctor: &entities.Doctor{Address: "MUMBAI"},
			want:   4,
		},
		{
			name:   "language match is case-sensitive",
			doctor: &entities.Doctor{Language: "hindi"},
			want:   0,
		},
		{
			name:   "keyword bonus accumulates per message",
			doctor: &entities.Doctor{Specialization: "Stress and anxiety management"},
			messages: []*entities.ChatMessage{
				{MessageText: "work Stress is getting worse"},
				{MessageText: "stress and anxiety at night"},
			},
			// message 1 hits stress; message 2 hits stress and anxiety
			want: 15,
		},
		{
			name:    "rating mean is added unweighted",
			doctor:  &entities.Doctor{Language: "Hindi"},
			ratings: []*entities.Rating{{Value: 4}, {Value: 5}, {Value: 3}},
			want:    9,
		},
		{
			name:    "result is rounded to two decimals",
			doctor:  &entities.Doctor{},
			ratings: []*entities.Rating{{Value: 3}, {Value: 3}, {Value: 4}},
			want:    3.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreDoctor(tt.doctor, patient, tt.messages, tt.ratings)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreDoctor_AddingSignalsNeverLowersScore(t *testing.T) {
	patient := &entities.Patient{Language: "Hindi", Religion: "Hindu", Address: "Mumbai"}
	doctor := &entities.Doctor{Specialization: "Stress management"}

	base := scoreDoctor(doctor, patient, nil, nil)

	withLanguage := *doctor
	withLanguage.Language = "Hindi"
	assert.GreaterOrEqual(t, scoreDoctor(&withLanguage, patient, nil, nil), base)

	messages := []*entities.ChatMessage{{MessageText: "too much stress lately"}}
	withMessage := scoreDoctor(doctor, patient, messages, nil)
	assert.GreaterOrEqual(t, withMessage, base)

	more := append(messages, &entities.ChatMessage{MessageText: "stress again"})
	assert.GreaterOrEqual(t, scoreDoctor(doctor, patient, more, nil), withMessage)
}

func TestScoreDoctor_EmptyPatientAddress(t *testing.T) {
	patient := &entities.Patient{Address: ""}
	doctor := &entities.Doctor{Address: ""}

	assert.Equal(t, 0.0, scoreDoctor(doctor, patient, nil, nil))
}

func TestMatchesAvailability(t *testing.T) {
	doctor := &entities.Doctor{
		Availability: []entities.DoctorAvailability{
			{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "12:00"},
			{DayOfWeek: "Wednesday", StartTime: "14:00", EndTime: "18:00"},
		},
	}

	tests := []struct {
		name   string
		filter entities.AvailabilityFilter
		want   bool
	}{
		{"empty filter matches", entities.AvailabilityFilter{}, true},
		{"day only", entities.AvailabilityFilter{Day: "monday"}, true},
		{"day not offered", entities.AvailabilityFilter{Day: "Sunday"}, false},
		{"range inside window", entities.AvailabilityFilter{Day: "Monday", StartTime: "10:00", EndTime: "11:00"}, true},
		{"range equals window", entities.AvailabilityFilter{Day: "Monday", StartTime: "09:00", EndTime: "12:00"}, true},
		{"range overruns window", entities.AvailabilityFilter{Day: "Monday", StartTime: "11:00", EndTime: "13:00"}, false},
		{"range fits another day only", entities.AvailabilityFilter{Day: "Monday", StartTime: "14:00", EndTime: "15:00"}, false},
		{"range without day checks all windows", entities.AvailabilityFilter{StartTime: "15:00", EndTime: "16:00"}, true},
		{"start without end ignores range", entities.AvailabilityFilter{Day: "Monday", StartTime: "20:00"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesAvailability(doctor, &tt.filter))
		})
	}
}

func TestPack_DeduplicatesByDoctorID(t *testing.T) {
	f := newRecommendationFixture()
	f.ratingRepo.On("ListByDoctor", mock.Anything, mock.Anything).Return([]*entities.Rating{}, nil)

	doctor := testDoctor("d1", nil)
	candidates := []scoredDoctor{
		{doctor: doctor, score: 5},
		{doctor: doctor, score: 3},
	}

	recommendations, err := f.service.pack(context.Background(), candidates)

	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	// first occurrence wins
	assert.Equal(t, 5.0, recommendations[0].Score)
}

func TestPack_MissingUserFallsBackToNA(t *testing.T) {
	f := newRecommendationFixture()
	f.ratingRepo.On("ListByDoctor", mock.Anything, mock.Anything).Return([]*entities.Rating{}, nil)

	doctor := testDoctor("d1", func(d *entities.Doctor) { d.User = nil })
	recommendations, err := f.service.pack(context.Background(), []scoredDoctor{{doctor: doctor, score: 1}})

	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	assert.Equal(t, "N/A", recommendations[0].Name)
	assert.Equal(t, "N/A", recommendations[0].Gender)
	assert.Nil(t, recommendations[0].AverageRating)
}
