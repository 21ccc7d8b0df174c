package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Rohanmore123/mental-health-backend/internal/application/services"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
)

// AppointmentHandler handles appointment HTTP requests
type AppointmentHandler struct {
	service *services.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type bookAppointmentRequest struct {
	DoctorID  string `json:"doctor_id"`
	PatientID string `json:"patient_id"`
	Date      string `json:"appointment_date"`
	Time      string `json:"appointment_time"`
	Notes     string `json:"notes"`
}

// BookAppointment handles POST /api/appointments
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var payload bookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	appointment := &entities.Appointment{
		DoctorID:  payload.DoctorID,
		PatientID: payload.PatientID,
		Date:      payload.Date,
		Time:      payload.Time,
		Notes:     payload.Notes,
	}
	if err := h.service.Book(r.Context(), appointment); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, appointment)
}

// ListPatientAppointments handles GET /api/patients/{id}/appointments
func (h *AppointmentHandler) ListPatientAppointments(w http.ResponseWriter, r *http.Request) {
	patientID := r.PathValue("id")
	if patientID == "" {
		respondWithError(w, http.StatusBadRequest, "patient ID is required")
		return
	}

	appointments, err := h.service.ListByPatient(r.Context(), patientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}
