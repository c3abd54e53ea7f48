package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/notify"
)

// reschedule moves an appointment to a new slot. The old record turning
// rescheduled and the new record being created happen in one transaction.
func (e *Engine) reschedule(ctx context.Context, t Transition) (*models.Appointment, error) {

	if t.AppointmentID == "" {
		return nil, httperr.InvalidErr("missing_appointment_id")
	}

	// --------------------------------------------------
	// 1. Current record and its business
	// --------------------------------------------------
	current, err := e.store.GetAppointment(ctx, t.AppointmentID)
	if err != nil {
		return nil, err
	}
	biz, err := e.activeBusiness(ctx, current.BusinessID)
	if err != nil {
		return nil, err
	}

	// Fail fast on the old side before touching the new slot.
	g := e.guard(t.Actor, biz)
	if err := domain.CanReschedule(current, g); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. New slot guards (same as create)
	// --------------------------------------------------
	staffID := t.StaffID
	if staffID == "" {
		staffID = current.StaffID
	}
	svc, err := e.activeService(ctx, current.BusinessID, current.ServiceID)
	if err != nil {
		return nil, err
	}
	st, err := e.eligibleStaff(ctx, current.BusinessID, staffID, svc)
	if err != nil {
		return nil, err
	}
	if err := e.checkSlot(biz, st, svc, t.Date, t.Start); err != nil {
		return nil, err
	}

	release, err := e.locker.Acquire(ctx, lock.StaffDayKey(current.BusinessID, st.ID, t.Date))
	if err != nil {
		return nil, err
	}
	defer release()

	next := domain.NewScheduled(domain.NewAppointmentInput{
		ID:         e.newID(),
		BusinessID: current.BusinessID,
		CustomerID: current.CustomerID,
		ServiceID:  current.ServiceID,
		StaffID:    st.ID,
		Date:       t.Date,
		Start:      t.Start,
		Service:    *svc,
		Notes:      current.Notes,
	}, biz.Policy, e.now())

	// --------------------------------------------------
	// 3. Atomic swap
	// --------------------------------------------------
	var old *models.Appointment
	err = e.store.Transaction(ctx, func(tx domain.Store) error {
		var err error
		old, err = tx.GetAppointmentForUpdate(ctx, t.AppointmentID)
		if err != nil {
			return err
		}
		if err := domain.CanReschedule(old, g); err != nil {
			return err
		}
		if err := claimSlot(ctx, tx, next, old.ID); err != nil {
			return err
		}

		domain.Reschedule(old, next, e.now())

		// The old row leaves the scheduled index before the new row enters it.
		if err := tx.UpdateAppointment(ctx, old); err != nil {
			return err
		}
		return tx.CreateAppointment(ctx, next)
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Side effects
	// --------------------------------------------------
	e.emit(ctx, notify.EventRescheduled, next, old.StaffID)
	e.record(t.Actor, "appointment_rescheduled", old, map[string]any{
		"rescheduled_to":   next.ID,
		"reschedule_count": next.RescheduleCount,
	})
	return next, nil
}
