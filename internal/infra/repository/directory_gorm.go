package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

// DirectoryGormRepository reads business, staff and service records and
// shapes them into the snapshots the engine works on.
type DirectoryGormRepository struct {
	db *gorm.DB
}

func NewDirectoryGormRepository(db *gorm.DB) *DirectoryGormRepository {
	return &DirectoryGormRepository{db: db}
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *DirectoryGormRepository) GetBusiness(
	ctx context.Context,
	businessID string,
) (*domain.Business, error) {

	var b models.Business
	if err := r.db.WithContext(ctx).
		Where("id = ?", businessID).
		First(&b).Error; err != nil {
		return nil, mapError(err, "business_not_found")
	}

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND staff_id IS NULL", businessID).
		Find(&hours).Error; err != nil {
		return nil, err
	}

	var holidays []models.Holiday
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND staff_id IS NULL", businessID).
		Find(&holidays).Error; err != nil {
		return nil, err
	}

	return &domain.Business{
		ID:       b.ID,
		Active:   b.Active,
		Calendar: buildCalendar(hours, holidays, b.Timezone),
		Policy: domain.BookingPolicy{
			MinAdvanceHours:              b.MinAdvanceHours,
			MaxAdvanceDays:               b.MaxAdvanceDays,
			CancellationWindowHours:      b.CancellationWindowHours,
			RescheduleWindowHours:        b.RescheduleWindowHours,
			MaxReschedulesPerAppointment: b.MaxReschedulesPerAppointment,
			RequiresApproval:             b.RequiresApproval,
		},
		Location: timezone.Location(b.Timezone),
	}, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *DirectoryGormRepository) GetService(
	ctx context.Context,
	businessID string,
	serviceID string,
) (*domain.ServiceSpec, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		Preload("Staff").
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&s).Error; err != nil {
		return nil, mapError(err, "service_not_found")
	}

	eligible := make(map[string]bool, len(s.Staff))
	for _, st := range s.Staff {
		eligible[st.ID] = true
	}

	return &domain.ServiceSpec{
		ID:               s.ID,
		BusinessID:       s.BusinessID,
		Active:           s.Active,
		DurationMinutes:  s.DurationMinutes,
		BufferMinutes:    s.BufferMinutes,
		EligibleStaffIDs: eligible,
	}, nil
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *DirectoryGormRepository) GetStaff(
	ctx context.Context,
	businessID string,
	staffID string,
) (*domain.Staff, error) {

	var st models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", staffID, businessID).
		First(&st).Error; err != nil {
		return nil, mapError(err, "staff_not_found")
	}

	out, err := r.staffSnapshot(ctx, st)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *DirectoryGormRepository) ListStaff(
	ctx context.Context,
	businessID string,
) ([]domain.Staff, error) {

	var rows []models.Staff
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Staff, 0, len(rows))
	for _, st := range rows {
		snap, err := r.staffSnapshot(ctx, st)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}

func (r *DirectoryGormRepository) staffSnapshot(
	ctx context.Context,
	st models.Staff,
) (domain.Staff, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND staff_id = ?", st.BusinessID, st.ID).
		Find(&hours).Error; err != nil {
		return domain.Staff{}, err
	}

	var holidays []models.Holiday
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND staff_id = ?", st.BusinessID, st.ID).
		Find(&holidays).Error; err != nil {
		return domain.Staff{}, err
	}

	var off []models.StaffUnavailableDate
	if err := r.db.WithContext(ctx).
		Where("staff_id = ?", st.ID).
		Find(&off).Error; err != nil {
		return domain.Staff{}, err
	}

	sc := calendar.StaffCalendar{}
	if len(hours) > 0 || len(holidays) > 0 {
		override := buildCalendar(hours, holidays, "")
		sc.Override = &override
	}
	if len(off) > 0 {
		sc.UnavailableDates = make(map[calendar.Date]bool, len(off))
		for _, u := range off {
			sc.UnavailableDates[u.Date] = true
		}
	}

	return domain.Staff{
		ID:         st.ID,
		BusinessID: st.BusinessID,
		Active:     st.Active,
		Calendar:   sc,
	}, nil
}

var _ domain.Directory = (*DirectoryGormRepository)(nil)
