package entities

// RecommendationFilter narrows the doctor pool before scoring. Every
// field is optional; an absent field imposes no constraint.
type RecommendationFilter struct {
	Language           string              `json:"language,omitempty"`
	Region             string              `json:"region,omitempty"`
	Gender             string              `json:"gender,omitempty"`
	Specialization     string              `json:"specialization,omitempty"`
	MaxConsultationFee *float64            `json:"max_consultation_fee,omitempty"`
	Availability       *AvailabilityFilter `json:"availability,omitempty"`
}

// AvailabilityFilter narrows doctors by their weekly windows and, when a
// concrete date and start time are both given, excludes doctors already
// booked at that slot.
type AvailabilityFilter struct {
	Day       string `json:"day,omitempty"`
	Date      string `json:"date,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

// AvailabilityEntry is the response projection of one weekly window.
type AvailabilityEntry struct {
	Day   string `json:"day"`
	Start string `json:"start_time"`
	End   string `json:"end_time"`
}

// DoctorRecommendation is one ranked entry of a recommendation response.
// AverageRating is nil (JSON null) when the doctor has no ratings yet;
// the "N/A" sentinel of the legacy API is a presentation concern.
type DoctorRecommendation struct {
	DoctorID        string              `json:"doctor_id"`
	Name            string              `json:"name"`
	Gender          string              `json:"gender"`
	Specialization  string              `json:"specialization"`
	Language        string              `json:"language"`
	Address         string              `json:"address"`
	AverageRating   *float64            `json:"average_rating"`
	ConsultationFee float64             `json:"consultation_fee"`
	Availability    []AvailabilityEntry `json:"availability"`
	Score           float64             `json:"score"`
}
