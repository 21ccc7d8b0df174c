package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Doctor represents a practitioner in the directory.
type Doctor struct {
	ID              string               `json:"doctor_id" db:"doctor_id"`
	UserID          string               `json:"user_id" db:"user_id"`
	Language        string               `json:"language" db:"language"`
	Religion        string               `json:"religion" db:"religion"`
	Address         string               `json:"address" db:"address"`
	Gender          string               `json:"gender" db:"gender"`
	Specialization  string               `json:"specialization" db:"specialization"`
	ConsultationFee float64              `json:"consultation_fee" db:"consultation_fee"`
	Availability    []DoctorAvailability `json:"availability" db:"-"`
	User            *User                `json:"-" db:"-"`
	CreatedAt       time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at" db:"updated_at"`
}

// DoctorAvailability is a weekly recurring consultation window owned by
// one doctor. Clock fields use the "HH:MM" wire format; start is assumed
// to precede end upstream.
type DoctorAvailability struct {
	ID        string `json:"id" db:"availability_id"`
	DoctorID  string `json:"doctor_id" db:"doctor_id"`
	DayOfWeek string `json:"day_of_week" db:"day_of_week"`
	StartTime string `json:"start_time" db:"start_time"`
	EndTime   string `json:"end_time" db:"end_time"`
}

// ParseClock converts an "HH:MM" (or "HH:MM:SS") clock string to minutes
// since midnight.
func ParseClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 3)
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock value %q out of range", clock)
	}
	return hours*60 + minutes, nil
}
