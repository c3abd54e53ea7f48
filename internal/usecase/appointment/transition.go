package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type TransitionKind string

const (
	TransitionCreate     TransitionKind = "create"
	TransitionCancel     TransitionKind = "cancel"
	TransitionReschedule TransitionKind = "reschedule"
	TransitionComplete   TransitionKind = "complete"
	TransitionNoShow     TransitionKind = "no_show"
	TransitionConfirm    TransitionKind = "confirm"
)

// ======================================================
// INPUT
// ======================================================

// Transition is one requested lifecycle change. Which fields matter depends
// on Kind:
//
//	create      BusinessID, ServiceID, StaffID, CustomerID, Date, Start, Notes
//	reschedule  AppointmentID, Date, Start, StaffID (optional, defaults to the current staff)
//	cancel      AppointmentID, Reason
//	complete, no_show, confirm  AppointmentID
type Transition struct {
	Kind          TransitionKind
	AppointmentID string
	Actor         domain.Actor

	BusinessID string
	ServiceID  string
	StaffID    string
	CustomerID string
	Date       calendar.Date
	Start      calendar.Minute

	Reason string
	Notes  string
}

// ======================================================
// EXECUTE
// ======================================================

// CommitTransition re-validates every guard against current data and applies
// the change. For reschedule the returned record is the new appointment.
func (e *Engine) CommitTransition(
	ctx context.Context,
	t Transition,
) (ap *models.Appointment, err error) {

	ctx, span := tracer.Start(ctx, "engine.commit_transition")
	span.SetAttributes(spanAttrs(t)...)
	defer func() {
		e.metrics.ObserveCommit(string(t.Kind), outcome(err))
		if err != nil {
			e.logger.Info("transition rejected",
				"kind", t.Kind,
				"appointment_id", t.AppointmentID,
				"actor_id", t.Actor.ID,
				"outcome", outcome(err),
				"err", err,
			)
		}
		endSpan(span, err)
	}()

	if !t.Actor.Role.Valid() || t.Actor.ID == "" {
		return nil, httperr.UnauthorizedErr("unknown_actor")
	}

	ctx, cancel := e.bounded(ctx)
	defer cancel()

	switch t.Kind {
	case TransitionCreate:
		ap, err = e.create(ctx, t)
	case TransitionReschedule:
		ap, err = e.reschedule(ctx, t)
	case TransitionCancel:
		ap, err = e.mutate(ctx, t, func(ap *models.Appointment, g domain.Guard) error {
			return domain.Cancel(ap, g, t.Reason)
		})
	case TransitionComplete:
		ap, err = e.mutate(ctx, t, domain.Complete)
	case TransitionNoShow:
		ap, err = e.mutate(ctx, t, domain.MarkNoShow)
	case TransitionConfirm:
		ap, err = e.mutate(ctx, t, domain.Confirm)
	default:
		return nil, httperr.InvalidErr("unknown_transition")
	}
	if err != nil {
		return nil, classify(err)
	}

	e.logger.Info("transition committed",
		"kind", t.Kind,
		"appointment_id", ap.ID,
		"actor_id", t.Actor.ID,
		"status", ap.Status,
	)
	return ap, nil
}
