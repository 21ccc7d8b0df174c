package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/repositories"
	"github.com/Rohanmore123/mental-health-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/Rohanmore123/mental-health-backend/pkg/errors"
)

// DoctorAdapter implements the DoctorRepository interface. All queries
// join the owning user and keep inactive accounts out of every result.
type DoctorAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDoctorAdapter creates a new doctor adapter
func NewDoctorAdapter(client *postgres.Client) repositories.DoctorRepository {
	return &DoctorAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var doctorColumns = []interface{}{
	goqu.I("d.doctor_id"),
	goqu.I("d.user_id"),
	goqu.I("d.language"),
	goqu.I("d.religion"),
	goqu.I("d.address"),
	goqu.I("d.gender"),
	goqu.I("d.specialization"),
	goqu.I("d.consultation_fee"),
	goqu.I("u.email"),
	goqu.I("u.first_name"),
	goqu.I("u.last_name"),
	goqu.I("u.gender"),
	goqu.I("u.is_active"),
}

func (a *DoctorAdapter) activeDoctors() *goqu.SelectDataset {
	return a.db.From(goqu.T("doctors").As("d")).
		Select(doctorColumns...).
		Join(
			goqu.T("users").As("u"),
			goqu.On(goqu.I("d.user_id").Eq(goqu.I("u.user_id"))),
		).
		Where(goqu.I("u.is_active").IsTrue())
}

// GetByID retrieves one active doctor by ID
func (a *DoctorAdapter) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	query, args, err := a.activeDoctors().
		Where(goqu.I("d.doctor_id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build doctor query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	doctor, err := scanDoctor(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("doctor with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get doctor", err)
	}

	if err := a.attachAvailability(ctx, []*entities.Doctor{doctor}); err != nil {
		return nil, err
	}
	return doctor, nil
}

// ListActive retrieves active doctors matching the filter, with
// availability windows and owning users eagerly attached
func (a *DoctorAdapter) ListActive(ctx context.Context, filter repositories.DoctorFilter) ([]*entities.Doctor, error) {
	ds := a.activeDoctors()

	if filter.Language != "" {
		ds = ds.Where(goqu.I("d.language").Eq(filter.Language))
	}
	if filter.Region != "" {
		ds = ds.Where(goqu.I("d.address").ILike("%" + filter.Region + "%"))
	}
	if filter.Gender != "" {
		ds = ds.Where(goqu.I("d.gender").Eq(filter.Gender))
	}
	if filter.Specialization != "" {
		ds = ds.Where(goqu.I("d.specialization").ILike("%" + filter.Specialization + "%"))
	}
	if filter.MaxConsultationFee != nil {
		ds = ds.Where(goqu.I("d.consultation_fee").Lte(*filter.MaxConsultationFee))
	}
	if len(filter.ExcludeIDs) > 0 {
		ds = ds.Where(goqu.I("d.doctor_id").NotIn(filter.ExcludeIDs))
	}

	query, args, err := ds.Order(goqu.I("d.doctor_id").Asc()).Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build doctor list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list doctors", err)
	}
	defer rows.Close()

	doctors := []*entities.Doctor{}
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan doctor", err)
		}
		doctors = append(doctors, doctor)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate doctors", err)
	}

	if err := a.attachAvailability(ctx, doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDoctor(row rowScanner) (*entities.Doctor, error) {
	var (
		doctor                              entities.Doctor
		user                                entities.User
		language, religion, address         sql.NullString
		gender, specialization              sql.NullString
		email, firstName, lastName, uGender sql.NullString
	)

	err := row.Scan(
		&doctor.ID,
		&doctor.UserID,
		&language,
		&religion,
		&address,
		&gender,
		&specialization,
		&doctor.ConsultationFee,
		&email,
		&firstName,
		&lastName,
		&uGender,
		&user.IsActive,
	)
	if err != nil {
		return nil, err
	}

	doctor.Language = language.String
	doctor.Religion = religion.String
	doctor.Address = address.String
	doctor.Gender = gender.String
	doctor.Specialization = specialization.String

	user.ID = doctor.UserID
	user.Email = email.String
	user.FirstName = firstName.String
	user.LastName = lastName.String
	user.Gender = uGender.String
	doctor.User = &user

	return &doctor, nil
}

// attachAvailability loads availability windows for the given doctors in
// one query and attaches them in place.
func (a *DoctorAdapter) attachAvailability(ctx context.Context, doctors []*entities.Doctor) error {
	if len(doctors) == 0 {
		return nil
	}

	ids := make([]string, len(doctors))
	byID := make(map[string]*entities.Doctor, len(doctors))
	for i, d := range doctors {
		ids[i] = d.ID
		byID[d.ID] = d
	}

	query, args, err := a.db.From("doctor_availability").
		Select("availability_id", "doctor_id", "day_of_week", "start_time", "end_time").
		Where(goqu.C("doctor_id").In(ids)).
		Order(goqu.C("doctor_id").Asc(), goqu.C("day_of_week").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build availability query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to load availability", err)
	}
	defer rows.Close()

	for rows.Next() {
		var window entities.DoctorAvailability
		if err := rows.Scan(&window.ID, &window.DoctorID, &window.DayOfWeek, &window.StartTime, &window.EndTime); err != nil {
			return apperrors.NewInternalError("failed to scan availability", err)
		}
		if doctor, ok := byID[window.DoctorID]; ok {
			doctor.Availability = append(doctor.Availability, window)
		}
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewInternalError("failed to iterate availability", err)
	}

	return nil
}
