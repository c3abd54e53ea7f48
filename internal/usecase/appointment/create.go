package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/notify"
)

func (e *Engine) create(ctx context.Context, t Transition) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Input / actor
	// --------------------------------------------------
	customerID := t.CustomerID
	if customerID == "" && t.Actor.Role == domain.RoleCustomer {
		customerID = t.Actor.ID
	}
	if err := domain.AuthorizeCreate(t.Actor, t.BusinessID, customerID); err != nil {
		return nil, err
	}
	if t.BusinessID == "" || t.ServiceID == "" || t.StaffID == "" || customerID == "" {
		return nil, httperr.InvalidErr("missing_fields")
	}

	// --------------------------------------------------
	// 2. Directory
	// --------------------------------------------------
	biz, err := e.activeBusiness(ctx, t.BusinessID)
	if err != nil {
		return nil, err
	}
	svc, err := e.activeService(ctx, t.BusinessID, t.ServiceID)
	if err != nil {
		return nil, err
	}
	st, err := e.eligibleStaff(ctx, t.BusinessID, t.StaffID, svc)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Time guards
	// --------------------------------------------------
	if err := e.checkSlot(biz, st, svc, t.Date, t.Start); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Check-then-write under the staff-day lock
	// --------------------------------------------------
	release, err := e.locker.Acquire(ctx, lock.StaffDayKey(t.BusinessID, st.ID, t.Date))
	if err != nil {
		return nil, err
	}
	defer release()

	ap := domain.NewScheduled(domain.NewAppointmentInput{
		ID:         e.newID(),
		BusinessID: t.BusinessID,
		CustomerID: customerID,
		ServiceID:  svc.ID,
		StaffID:    st.ID,
		Date:       t.Date,
		Start:      t.Start,
		Service:    *svc,
		Notes:      t.Notes,
	}, biz.Policy, e.now())

	err = e.store.Transaction(ctx, func(tx domain.Store) error {
		if err := claimSlot(ctx, tx, ap); err != nil {
			return err
		}
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Side effects
	// --------------------------------------------------
	e.emit(ctx, notify.EventCreated, ap)
	e.record(t.Actor, "appointment_created", ap, map[string]any{
		"date":       ap.Date.String(),
		"start_time": ap.StartMinute.String(),
		"confirmed":  ap.Confirmed,
	})
	return ap, nil
}

// checkSlot applies the guards shared by create and the new half of a
// reschedule: advance window, open day and working hours.
func (e *Engine) checkSlot(
	biz *domain.Business,
	st *domain.Staff,
	svc *domain.ServiceSpec,
	date calendar.Date,
	start calendar.Minute,
) error {
	if date.IsZero() {
		return httperr.InvalidErr("invalid_date")
	}
	if start < 0 || start >= calendar.MinutesPerDay {
		return httperr.InvalidErr("invalid_start_time")
	}

	startAt := date.At(start, biz.Location)
	if err := domain.CheckBookingWindow(biz.Policy, date, startAt, e.now(), biz.Location); err != nil {
		return err
	}

	day, open := calendar.EffectiveDay(&biz.Calendar, &st.Calendar, date)
	if !open {
		return httperr.InvalidErr("day_closed")
	}
	window := calendar.Interval{Start: start, End: start.Add(svc.DurationMinutes)}
	if !day.Fits(window) {
		return httperr.InvalidErr("outside_working_hours")
	}
	return nil
}

// claimSlot locks the staff day inside tx and runs the conflict check.
// Appointments in exclude are ignored.
func claimSlot(ctx context.Context, tx domain.Store, ap *models.Appointment, exclude ...string) error {
	if err := tx.LockStaffDay(ctx, ap.BusinessID, ap.StaffID, ap.Date); err != nil {
		return err
	}
	existing, err := tx.ListForStaffDay(ctx, ap.BusinessID, ap.StaffID, ap.Date)
	if err != nil {
		return err
	}
	duration := int(ap.EndMinute - ap.StartMinute)
	if !domain.IsAvailable(existing, ap.StaffID, ap.Date, ap.StartMinute, duration, exclude...) {
		return httperr.SlotTakenErr("slot_taken")
	}
	return nil
}
