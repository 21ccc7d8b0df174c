package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Rohanmore123/mental-health-backend/internal/application/services"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/repositories"
	apperrors "github.com/Rohanmore123/mental-health-backend/pkg/errors"
)

// DoctorHandler handles doctor directory HTTP requests
type DoctorHandler struct {
	service *services.DoctorService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(service *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

// ListDoctors handles GET /api/doctors
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repositories.DoctorFilter{
		Language:       query.Get("language"),
		Region:         query.Get("region"),
		Gender:         query.Get("gender"),
		Specialization: query.Get("specialization"),
	}
	if raw := query.Get("max_fee"); raw != "" {
		maxFee, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "max_fee must be a number")
			return
		}
		filter.MaxConsultationFee = &maxFee
	}

	doctors, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// SearchDoctors handles GET /api/doctors/search
func (h *DoctorHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 50 {
			limit = parsed
		}
	}

	hits, err := h.service.Search(r.Context(), query, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": hits,
		"count":   len(hits),
	})
}

// GetDoctor handles GET /api/doctors/{id}
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID := r.PathValue("id")
	if doctorID == "" {
		respondWithError(w, http.StatusBadRequest, "doctor ID is required")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), doctorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

type ratingRequest struct {
	PatientID string `json:"patient_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// RateDoctor handles POST /api/doctors/{id}/ratings
func (h *DoctorHandler) RateDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID := r.PathValue("id")
	if doctorID == "" {
		respondWithError(w, http.StatusBadRequest, "doctor ID is required")
		return
	}

	var payload ratingRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	rating := &entities.Rating{
		DoctorID:  doctorID,
		PatientID: payload.PatientID,
		Value:     payload.Rating,
		Comment:   payload.Comment,
	}
	if err := h.service.Rate(r.Context(), rating); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"status":    "received",
		"rating_id": rating.ID,
	})
}

// ListDoctorRatings handles GET /api/doctors/{id}/ratings
func (h *DoctorHandler) ListDoctorRatings(w http.ResponseWriter, r *http.Request) {
	doctorID := r.PathValue("id")
	if doctorID == "" {
		respondWithError(w, http.StatusBadRequest, "doctor ID is required")
		return
	}

	ratings, err := h.service.ListRatings(r.Context(), doctorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ratings": ratings,
		"count":   len(ratings),
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

func respondWithAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status := apperrors.HTTPStatus(appErr)
		if status == http.StatusInternalServerError {
			respondWithError(w, status, "internal server error")
			return
		}
		respondWithError(w, status, appErr.Message)
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
