package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/repositories"
	"github.com/Rohanmore123/mental-health-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/Rohanmore123/mental-health-backend/pkg/errors"
)

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores a new appointment
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	record := goqu.Record{
		"appointment_id":   appointment.ID,
		"doctor_id":        appointment.DoctorID,
		"patient_id":       appointment.PatientID,
		"appointment_date": appointment.Date,
		"appointment_time": appointment.Time,
		"status":           string(appointment.Status),
		"notes":            sql.NullString{String: appointment.Notes, Valid: appointment.Notes != ""},
		"created_at":       appointment.CreatedAt,
		"updated_at":       appointment.UpdatedAt,
	}

	query, args, err := a.db.Insert("appointments").Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build appointment insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create appointment", err)
	}

	return nil
}

// ListByPatient retrieves a patient's appointments, newest first
func (a *AppointmentAdapter) ListByPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error) {
	query, args, err := a.db.From("appointments").
		Select("appointment_id", "doctor_id", "patient_id", "appointment_date", "appointment_time", "status", "notes", "created_at", "updated_at").
		Where(goqu.C("patient_id").Eq(patientID)).
		Order(goqu.C("appointment_date").Desc(), goqu.C("appointment_time").Desc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build appointment query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}
	defer rows.Close()

	appointments := []*entities.Appointment{}
	for rows.Next() {
		var (
			appointment entities.Appointment
			status      string
			notes       sql.NullString
		)
		if err := rows.Scan(
			&appointment.ID,
			&appointment.DoctorID,
			&appointment.PatientID,
			&appointment.Date,
			&appointment.Time,
			&status,
			&notes,
			&appointment.CreatedAt,
			&appointment.UpdatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan appointment", err)
		}
		appointment.Status = entities.AppointmentStatus(status)
		appointment.Notes = notes.String
		appointments = append(appointments, &appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate appointments", err)
	}

	return appointments, nil
}

// ListBookedDoctorIDs returns the IDs of doctors holding a non-cancelled
// appointment at exactly the given date and clock time.
func (a *AppointmentAdapter) ListBookedDoctorIDs(ctx context.Context, date, startTime string) ([]string, error) {
	query, args, err := a.db.From("appointments").
		Select("doctor_id").
		Where(
			goqu.C("appointment_date").Eq(date),
			goqu.C("appointment_time").Eq(startTime),
			goqu.C("status").Neq(string(entities.AppointmentStatusCancelled)),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build busy doctor query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list busy doctors", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan busy doctor id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate busy doctors", err)
	}

	return ids, nil
}
