package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
	"github.com/Rohanmore123/mental-health-backend/internal/infrastructure/observability"
)

// Recommender defines the recommendation operation used by the handler.
type Recommender interface {
	Recommend(ctx context.Context, patientID string, filter *entities.RecommendationFilter) ([]*entities.DoctorRecommendation, error)
}

// RecommendationHandler handles doctor recommendation requests
type RecommendationHandler struct {
	service Recommender
	metrics *observability.Metrics
}

// NewRecommendationHandler creates a new recommendation handler. metrics
// may be nil.
func NewRecommendationHandler(service Recommender, metrics *observability.Metrics) *RecommendationHandler {
	return &RecommendationHandler{service: service, metrics: metrics}
}

type recommendationRequest struct {
	PatientID string                         `json:"patient_id"`
	Filters   *entities.RecommendationFilter `json:"filters,omitempty"`
}

// Recommend handles POST /api/recommendations
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var payload recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.PatientID == "" {
		respondWithError(w, http.StatusBadRequest, "patient_id is required")
		return
	}

	if h.metrics != nil {
		h.metrics.RecommendationCount.Add(r.Context(), 1)
	}

	recommendations, err := h.service.Recommend(r.Context(), payload.PatientID, payload.Filters)
	if err != nil {
		logger := observability.LoggerFromContext(r.Context())
		logger.Error().Err(err).Str("patient_id", payload.PatientID).Msg("recommendation request failed")
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, recommendations)
}
