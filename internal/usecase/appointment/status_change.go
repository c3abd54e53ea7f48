package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/notify"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

var transitionEvents = map[TransitionKind]struct {
	event  notify.EventType
	action string
}{
	TransitionCancel:   {notify.EventCancelled, "appointment_cancelled"},
	TransitionComplete: {notify.EventCompleted, "appointment_completed"},
	TransitionNoShow:   {notify.EventNoShow, "appointment_no_show"},
	TransitionConfirm:  {notify.EventConfirmed, "appointment_confirmed"},
}

// mutate applies a single-record status change. The record is re-read under
// a row lock so the guard sees the latest state.
func (e *Engine) mutate(
	ctx context.Context,
	t Transition,
	apply func(ap *models.Appointment, g domain.Guard) error,
) (*models.Appointment, error) {

	if t.AppointmentID == "" {
		return nil, httperr.InvalidErr("missing_appointment_id")
	}

	current, err := e.store.GetAppointment(ctx, t.AppointmentID)
	if err != nil {
		return nil, err
	}
	biz, err := e.directory.GetBusiness(ctx, current.BusinessID)
	if err != nil {
		return nil, err
	}
	if err := biz.Policy.Validate(); err != nil {
		return nil, httperr.InvalidErr("invalid_policy")
	}

	var out *models.Appointment
	err = e.store.Transaction(ctx, func(tx domain.Store) error {
		ap, err := tx.GetAppointmentForUpdate(ctx, t.AppointmentID)
		if err != nil {
			return err
		}
		if err := apply(ap, e.guard(t.Actor, biz)); err != nil {
			return err
		}
		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}
		out = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	meta := transitionEvents[t.Kind]
	e.emit(ctx, meta.event, out)
	e.record(t.Actor, meta.action, out, map[string]any{"reason": t.Reason})
	return out, nil
}

func (e *Engine) guard(actor domain.Actor, biz *domain.Business) domain.Guard {
	return domain.Guard{
		Actor:    actor,
		Policy:   biz.Policy,
		Now:      e.now(),
		Location: timezone.Resolve(biz.Location),
	}
}
