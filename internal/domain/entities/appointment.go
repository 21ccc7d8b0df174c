package entities

import "time"

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a consultation booking between a patient and a
// doctor at a concrete date and clock slot. Date uses "2006-01-02" and
// Time uses "HH:MM", matching the availability window format.
type Appointment struct {
	ID        string            `json:"appointment_id" db:"appointment_id"`
	DoctorID  string            `json:"doctor_id" db:"doctor_id"`
	PatientID string            `json:"patient_id" db:"patient_id"`
	Date      string            `json:"appointment_date" db:"appointment_date"`
	Time      string            `json:"appointment_time" db:"appointment_time"`
	Status    AppointmentStatus `json:"status" db:"status"`
	Notes     string            `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}
