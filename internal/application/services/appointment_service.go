package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/repositories"
	apperrors "github.com/Rohanmore123/mental-health-backend/pkg/errors"
)

// AppointmentService handles consultation booking.
type AppointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	doctorRepo      repositories.DoctorRepository
	patientRepo     repositories.PatientRepository
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	appointmentRepo repositories.AppointmentRepository,
	doctorRepo repositories.DoctorRepository,
	patientRepo repositories.PatientRepository,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
	}
}

// Book validates and stores a new appointment. A doctor already booked
// at the requested slot produces a conflict error.
func (s *AppointmentService) Book(ctx context.Context, appointment *entities.Appointment) error {
	if appointment.DoctorID == "" || appointment.PatientID == "" {
		return apperrors.NewValidationError("doctor_id and patient_id are required")
	}
	if _, err := time.Parse("2006-01-02", appointment.Date); err != nil {
		return apperrors.NewValidationError("appointment_date must be YYYY-MM-DD")
	}
	if _, err := entities.ParseClock(appointment.Time); err != nil {
		return apperrors.NewValidationError("appointment_time must be HH:MM")
	}

	if _, err := s.doctorRepo.GetByID(ctx, appointment.DoctorID); err != nil {
		return err
	}
	if _, err := s.patientRepo.GetByID(ctx, appointment.PatientID); err != nil {
		return err
	}

	busyIDs, err := s.appointmentRepo.ListBookedDoctorIDs(ctx, appointment.Date, appointment.Time)
	if err != nil {
		return err
	}
	for _, id := range busyIDs {
		if id == appointment.DoctorID {
			return apperrors.NewConflictError("doctor is already booked at this time")
		}
	}

	if appointment.ID == "" {
		appointment.ID = uuid.New().String()
	}
	appointment.Status = entities.AppointmentStatusScheduled
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt

	return s.appointmentRepo.Create(ctx, appointment)
}

// ListByPatient retrieves a patient's appointments
func (s *AppointmentService) ListByPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error) {
	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.appointmentRepo.ListByPatient(ctx, patientID)
}
