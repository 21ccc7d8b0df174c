package handlers

import (
	"net/http"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/repositories"
)

// PatientHandler handles patient profile HTTP requests
type PatientHandler struct {
	patientRepo repositories.PatientRepository
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patientRepo repositories.PatientRepository) *PatientHandler {
	return &PatientHandler{patientRepo: patientRepo}
}

// GetPatient handles GET /api/patients/{id}
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID := r.PathValue("id")
	if patientID == "" {
		respondWithError(w, http.StatusBadRequest, "patient ID is required")
		return
	}

	patient, err := h.patientRepo.GetByID(r.Context(), patientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, patient)
}
