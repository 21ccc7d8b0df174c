package repositories

import (
	"context"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
)

// AppointmentRepository defines appointment persistence and the busy-slot
// lookups consumed by booking and recommendation filtering.
type AppointmentRepository interface {
	// Create stores a new appointment
	Create(ctx context.Context, appointment *entities.Appointment) error

	// ListByPatient retrieves a patient's appointments
	ListByPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error)

	// ListBookedDoctorIDs returns the IDs of doctors holding a
	// non-cancelled appointment at exactly the given date and time
	ListBookedDoctorIDs(ctx context.Context, date, startTime string) ([]string, error)
}
