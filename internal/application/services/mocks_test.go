package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/repositories"
)

type mockDoctorRepo struct {
	mock.Mock
}

func (m *mockDoctorRepo) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	args := m.Called(ctx, id)
	if doctor := args.Get(0); doctor != nil {
		return doctor.(*entities.Doctor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDoctorRepo) ListActive(ctx context.Context, filter repositories.DoctorFilter) ([]*entities.Doctor, error) {
	args := m.Called(ctx, filter)
	if doctors := args.Get(0); doctors != nil {
		return doctors.([]*entities.Doctor), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDoctorSearchRepo struct {
	mock.Mock
}

func (m *mockDoctorSearchRepo) Search(ctx context.Context, query string, limit int) ([]*repositories.DoctorSearchHit, error) {
	args := m.Called(ctx, query, limit)
	if hits := args.Get(0); hits != nil {
		return hits.([]*repositories.DoctorSearchHit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDoctorSearchRepo) Index(ctx context.Context, doctor *entities.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *mockDoctorSearchRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPatientRepo struct {
	mock.Mock
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	args := m.Called(ctx, id)
	if patient := args.Get(0); patient != nil {
		return patient.(*entities.Patient), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockChatMessageRepo struct {
	mock.Mock
}

func (m *mockChatMessageRepo) ListBySender(ctx context.Context, senderID string) ([]*entities.ChatMessage, error) {
	args := m.Called(ctx, senderID)
	if messages := args.Get(0); messages != nil {
		return messages.([]*entities.ChatMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockRatingRepo struct {
	mock.Mock
}

func (m *mockRatingRepo) Create(ctx context.Context, rating *entities.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *mockRatingRepo) ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Rating, error) {
	args := m.Called(ctx, doctorID)
	if ratings := args.Get(0); ratings != nil {
		return ratings.([]*entities.Rating), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) Create(ctx context.Context, appointment *entities.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *mockAppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error) {
	args := m.Called(ctx, patientID)
	if appointments := args.Get(0); appointments != nil {
		return appointments.([]*entities.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) ListBookedDoctorIDs(ctx context.Context, date, startTime string) ([]string, error) {
	args := m.Called(ctx, date, startTime)
	if ids := args.Get(0); ids != nil {
		return ids.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}
