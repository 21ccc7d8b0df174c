package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
	apperrors "github.com/Rohanmore123/mental-health-backend/pkg/errors"
)

type mockRecommender struct {
	mock.Mock
}

func (m *mockRecommender) Recommend(ctx context.Context, patientID string, filter *entities.RecommendationFilter) ([]*entities.DoctorRecommendation, error) {
	args := m.Called(ctx, patientID, filter)
	if recs := args.Get(0); recs != nil {
		return recs.([]*entities.DoctorRecommendation), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRecommendationHandler_Recommend(t *testing.T) {
	service := new(mockRecommender)
	handler := NewRecommendationHandler(service, nil)

	recs := []*entities.DoctorRecommendation{
		{DoctorID: "d1", Name: "Asha Verma", Score: 9.5},
		{DoctorID: "d2", Name: "Rahul Nair", Score: 7.0},
	}
	service.On("Recommend", mock.Anything, "pat-1", mock.MatchedBy(func(f *entities.RecommendationFilter) bool {
		return f != nil && f.Language == "Hindi"
	})).Return(recs, nil)

	body := `{"patient_id":"pat-1","filters":{"language":"Hindi"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Recommend(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response []map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response, 2)
	assert.Equal(t, "d1", response[0]["doctor_id"])
	assert.Equal(t, 9.5, response[0]["score"])
	// unrated doctors serialize a null average, not a sentinel string
	assert.Nil(t, response[0]["average_rating"])
	service.AssertExpectations(t)
}

func TestRecommendationHandler_Recommend_MissingPatientID(t *testing.T) {
	service := new(mockRecommender)
	handler := NewRecommendationHandler(service, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(`{"filters":{}}`))
	w := httptest.NewRecorder()

	handler.Recommend(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "Recommend", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecommendationHandler_Recommend_BadPayload(t *testing.T) {
	handler := NewRecommendationHandler(new(mockRecommender), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(`{not json`))
	w := httptest.NewRecorder()

	handler.Recommend(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendationHandler_Recommend_PatientNotFound(t *testing.T) {
	service := new(mockRecommender)
	handler := NewRecommendationHandler(service, nil)

	service.On("Recommend", mock.Anything, "ghost", (*entities.RecommendationFilter)(nil)).
		Return(nil, apperrors.NewNotFoundError("patient with id ghost not found"))

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(`{"patient_id":"ghost"}`))
	w := httptest.NewRecorder()

	handler.Recommend(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommendationHandler_Recommend_InternalErrorMasked(t *testing.T) {
	service := new(mockRecommender)
	handler := NewRecommendationHandler(service, nil)

	service.On("Recommend", mock.Anything, "pat-1", (*entities.RecommendationFilter)(nil)).
		Return(nil, apperrors.NewInternalError("query failed", assert.AnError))

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(`{"patient_id":"pat-1"}`))
	w := httptest.NewRecorder()

	handler.Recommend(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "query failed")
}
