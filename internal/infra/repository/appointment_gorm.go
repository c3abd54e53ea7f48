package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// mapError translates driver errors into the business taxonomy. Deadline
// errors stay wrapped so callers classify them as timeouts.
func mapError(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return httperr.NotFoundErr(notFound)
	case httperr.IsUniqueViolation(err), httperr.IsExclusionConflict(err):
		return httperr.SlotTakenErr("slot_taken")
	}
	return err
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, mapError(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, mapError(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListForStaffDay(
	ctx context.Context,
	businessID string,
	staffID string,
	date calendar.Date,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"business_id = ? AND staff_id = ? AND date = ? AND status IN ?",
			businessID,
			staffID,
			date,
			[]string{string(domain.StatusScheduled), string(domain.StatusCompleted)},
		).
		Order("start_minute ASC").
		Find(&apps).Error; err != nil {
		return nil, mapError(err, "")
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListForStaffPeriod(
	ctx context.Context,
	staffID string,
	from calendar.Date,
	to calendar.Date,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND date >= ? AND date < ?", staffID, from, to).
		Order("date ASC").
		Order("start_minute ASC").
		Find(&apps).Error; err != nil {
		return nil, mapError(err, "")
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return mapError(r.db.WithContext(ctx).Create(ap).Error, "")
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return mapError(r.db.WithContext(ctx).Save(ap).Error, "appointment_not_found")
}

// --------------------------------------------------
// Concurrency
// --------------------------------------------------

// LockStaffDay takes a transaction-scoped advisory lock. Outside a
// transaction it is released as soon as the statement ends.
func (r *AppointmentGormRepository) LockStaffDay(
	ctx context.Context,
	businessID string,
	staffID string,
	date calendar.Date,
) error {
	key := lock.StaffDayKey(businessID, staffID, date)
	if err := r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
		return fmt.Errorf("advisory lock %s: %w", key, err)
	}
	return nil
}

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Store) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Store = (*AppointmentGormRepository)(nil)
