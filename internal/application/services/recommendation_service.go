package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/repositories"
	apperrors "github.com/Rohanmore123/mental-health-backend/pkg/errors"
)

const (
	// minCandidates is the floor the backfill stage guarantees before
	// ranking, pool permitting.
	minCandidates = 5

	// maxResults caps the final ranked list.
	maxResults = 5
)

// matchKeywords is the fixed vocabulary for chat-history signal matching.
// A keyword counts once per (message, keyword) pair, so long histories
// accumulate unbounded bonuses; that mirrors the legacy behavior and is
// deliberately left uncapped.
var matchKeywords = []string{"stress", "depression", "anxiety", "relationship", "trauma", "insomnia"}

// RecommendationService ranks doctors for a patient using structured
// filters, chat-history keyword overlap, and live rating averages.
type RecommendationService struct {
	doctorRepo      repositories.DoctorRepository
	patientRepo     repositories.PatientRepository
	chatRepo        repositories.ChatMessageRepository
	ratingRepo      repositories.RatingRepository
	appointmentRepo repositories.AppointmentRepository
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(
	doctorRepo repositories.DoctorRepository,
	patientRepo repositories.PatientRepository,
	chatRepo repositories.ChatMessageRepository,
	ratingRepo repositories.RatingRepository,
	appointmentRepo repositories.AppointmentRepository,
) *RecommendationService {
	return &RecommendationService{
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		chatRepo:        chatRepo,
		ratingRepo:      ratingRepo,
		appointmentRepo: appointmentRepo,
	}
}

// scoredDoctor pairs a candidate with its score for the duration of one
// recommendation call.
type scoredDoctor struct {
	doctor *entities.Doctor
	score  float64
}

// Recommend returns up to five ranked doctors for the given patient.
// Filter-matched doctors are inserted ahead of backfilled ones, so on
// score ties they keep the higher rank.
func (s *RecommendationService) Recommend(ctx context.Context, patientID string, filter *entities.RecommendationFilter) ([]*entities.DoctorRecommendation, error) {
	if patientID == "" {
		return nil, apperrors.NewValidationError("patient_id is required")
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	patient, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.ListBySender(ctx, patientID)
	if err != nil {
		return nil, err
	}

	filtered, err := s.doctorRepo.ListActive(ctx, structuredFilter(filter))
	if err != nil {
		return nil, err
	}

	if filter != nil && filter.Availability != nil {
		filtered, err = s.applyAvailability(ctx, filtered, filter.Availability)
		if err != nil {
			return nil, err
		}
	}

	candidates := make([]scoredDoctor, 0, len(filtered))
	for _, doctor := range filtered {
		score, err := s.score(ctx, doctor, patient, messages)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, scoredDoctor{doctor: doctor, score: score})
	}

	candidates, err = s.backfill(ctx, candidates, patient, messages)
	if err != nil {
		return nil, err
	}

	return s.pack(ctx, candidates)
}

// structuredFilter maps the caller-supplied filter onto the directory
// query. Availability is handled separately after the query.
func structuredFilter(filter *entities.RecommendationFilter) repositories.DoctorFilter {
	if filter == nil {
		return repositories.DoctorFilter{}
	}
	return repositories.DoctorFilter{
		Language:           filter.Language,
		Region:             filter.Region,
		Gender:             filter.Gender,
		Specialization:     filter.Specialization,
		MaxConsultationFee: filter.MaxConsultationFee,
	}
}

func validateFilter(filter *entities.RecommendationFilter) error {
	if filter == nil || filter.Availability == nil {
		return nil
	}
	av := filter.Availability
	if av.StartTime != "" {
		if _, err := entities.ParseClock(av.StartTime); err != nil {
			return apperrors.NewValidationError("availability start_time must be HH:MM")
		}
	}
	if av.EndTime != "" {
		if _, err := entities.ParseClock(av.EndTime); err != nil {
			return apperrors.NewValidationError("availability end_time must be HH:MM")
		}
	}
	return nil
}

// applyAvailability keeps doctors owning a window that satisfies the
// availability sub-filter, then drops doctors already booked when both a
// date and a start time were requested.
func (s *RecommendationService) applyAvailability(ctx context.Context, doctors []*entities.Doctor, av *entities.AvailabilityFilter) ([]*entities.Doctor, error) {
	matched := make([]*entities.Doctor, 0, len(doctors))
	for _, doctor := range doctors {
		if matchesAvailability(doctor, av) {
			matched = append(matched, doctor)
		}
	}

	if av.Date == "" || av.StartTime == "" {
		return matched, nil
	}

	busyIDs, err := s.appointmentRepo.ListBookedDoctorIDs(ctx, av.Date, av.StartTime)
	if err != nil {
		return nil, err
	}
	if len(busyIDs) == 0 {
		return matched, nil
	}

	busy := make(map[string]bool, len(busyIDs))
	for _, id := range busyIDs {
		busy[id] = true
	}

	free := matched[:0]
	for _, doctor := range matched {
		if !busy[doctor.ID] {
			free = append(free, doctor)
		}
	}
	return free, nil
}

// matchesAvailability reports whether the doctor owns a single window
// satisfying every present window constraint: day-of-week equality
// (case-insensitive) and [start,end] containment of the requested range.
func matchesAvailability(doctor *entities.Doctor, av *entities.AvailabilityFilter) bool {
	needDay := av.Day != ""
	needRange := av.StartTime != "" && av.EndTime != ""

	if !needDay && !needRange {
		return true
	}

	var reqStart, reqEnd int
	if needRange {
		var err error
		if reqStart, err = entities.ParseClock(av.StartTime); err != nil {
			return false
		}
		if reqEnd, err = entities.ParseClock(av.EndTime); err != nil {
			return false
		}
	}

	for _, window := range doctor.Availability {
		if needDay && !strings.EqualFold(window.DayOfWeek, av.Day) {
			continue
		}
		if needRange {
			winStart, err := entities.ParseClock(window.StartTime)
			if err != nil {
				continue
			}
			winEnd, err := entities.ParseClock(window.EndTime)
			if err != nil {
				continue
			}
			if winStart > reqStart || winEnd < reqEnd {
				continue
			}
		}
		return true
	}
	return false
}

// score fetches the doctor's live ratings and delegates to the pure
// scoring function.
func (s *RecommendationService) score(ctx context.Context, doctor *entities.Doctor, patient *entities.Patient, messages []*entities.ChatMessage) (float64, error) {
	ratings, err := s.ratingRepo.ListByDoctor(ctx, doctor.ID)
	if err != nil {
		return 0, err
	}
	return scoreDoctor(doctor, patient, messages, ratings), nil
}

// scoreDoctor computes the match score for one doctor/patient pair:
// +5 language, +2 religion, +4 address (case-insensitive, both non-empty),
// +5 per (message, keyword) overlap with the doctor's specialization, plus
// the unweighted rating average. The sum is rounded to two decimals and
// has no upper bound.
func scoreDoctor(doctor *entities.Doctor, patient *entities.Patient, messages []*entities.ChatMessage, ratings []*entities.Rating) float64 {
	score := 0.0

	if doctor.Language == patient.Language {
		score += 5
	}
	if doctor.Religion == patient.Religion {
		score += 2
	}
	if doctor.Address != "" && patient.Address != "" && strings.EqualFold(doctor.Address, patient.Address) {
		score += 4
	}

	specialization := strings.ToLower(doctor.Specialization)
	for _, message := range messages {
		text := strings.ToLower(message.MessageText)
		for _, keyword := range matchKeywords {
			if strings.Contains(text, keyword) && strings.Contains(specialization, keyword) {
				score += 5
			}
		}
	}

	if avg := entities.AverageRating(ratings); avg != nil {
		score += *avg
	}

	return math.Round(score*100) / 100
}

// backfill tops the candidate list up to the minimum by scoring the rest
// of the active pool and appending only the best of it. No extra query
// runs when the filtered set already meets the minimum.
func (s *RecommendationService) backfill(ctx context.Context, candidates []scoredDoctor, patient *entities.Patient, messages []*entities.ChatMessage) ([]scoredDoctor, error) {
	if len(candidates) >= minCandidates {
		return candidates, nil
	}

	excludeIDs := make([]string, len(candidates))
	for i, c := range candidates {
		excludeIDs[i] = c.doctor.ID
	}

	remaining, err := s.doctorRepo.ListActive(ctx, repositories.DoctorFilter{ExcludeIDs: excludeIDs})
	if err != nil {
		return nil, err
	}

	extras := make([]scoredDoctor, 0, len(remaining))
	for _, doctor := range remaining {
		score, err := s.score(ctx, doctor, patient, messages)
		if err != nil {
			return nil, err
		}
		extras = append(extras, scoredDoctor{doctor: doctor, score: score})
	}

	sort.SliceStable(extras, func(i, j int) bool {
		return extras[i].score > extras[j].score
	})

	needed := minCandidates - len(candidates)
	if needed > len(extras) {
		needed = len(extras)
	}
	return append(candidates, extras[:needed]...), nil
}

// pack deduplicates by doctor identity (first occurrence wins), sorts by
// score descending with a stable sort, truncates, and projects into the
// response shape.
func (s *RecommendationService) pack(ctx context.Context, candidates []scoredDoctor) ([]*entities.DoctorRecommendation, error) {
	seen := make(map[string]bool, len(candidates))
	recommendations := make([]*entities.DoctorRecommendation, 0, len(candidates))

	for _, candidate := range candidates {
		doctor := candidate.doctor
		if seen[doctor.ID] {
			continue
		}
		seen[doctor.ID] = true

		ratings, err := s.ratingRepo.ListByDoctor(ctx, doctor.ID)
		if err != nil {
			return nil, err
		}
		average := entities.AverageRating(ratings)
		if average != nil {
			rounded := math.Round(*average*100) / 100
			average = &rounded
		}

		name, gender := "N/A", "N/A"
		if doctor.User != nil {
			name = doctor.User.FullName()
			if doctor.User.Gender != "" {
				gender = doctor.User.Gender
			}
		}

		availability := make([]entities.AvailabilityEntry, 0, len(doctor.Availability))
		for _, window := range doctor.Availability {
			availability = append(availability, entities.AvailabilityEntry{
				Day:   window.DayOfWeek,
				Start: clockHHMM(window.StartTime),
				End:   clockHHMM(window.EndTime),
			})
		}

		recommendations = append(recommendations, &entities.DoctorRecommendation{
			DoctorID:        doctor.ID,
			Name:            name,
			Gender:          gender,
			Specialization:  doctor.Specialization,
			Language:        doctor.Language,
			Address:         doctor.Address,
			AverageRating:   average,
			ConsultationFee: doctor.ConsultationFee,
			Availability:    availability,
			Score:           candidate.score,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	if len(recommendations) > maxResults {
		recommendations = recommendations[:maxResults]
	}
	return recommendations, nil
}

// clockHHMM normalizes a clock string to "HH:MM" for responses.
func clockHHMM(clock string) string {
	minutes, err := entities.ParseClock(clock)
	if err != nil {
		return clock
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
