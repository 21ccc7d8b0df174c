package entities

import "time"

// Rating is a single 1-5 star review of a doctor by a patient. Averages
// are computed at read time so new ratings take effect immediately.
type Rating struct {
	ID        string    `json:"rating_id" db:"rating_id"`
	DoctorID  string    `json:"doctor_id" db:"doctor_id"`
	PatientID string    `json:"patient_id" db:"patient_id"`
	Value     int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AverageRating returns the arithmetic mean of the given ratings, or nil
// when there are none.
func AverageRating(ratings []*Rating) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0.0
	for _, r := range ratings {
		sum += float64(r.Value)
	}
	avg := sum / float64(len(ratings))
	return &avg
}
