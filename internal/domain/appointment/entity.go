package appointment

import (
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// Guard carries what every transition is checked against.
type Guard struct {
	Actor    Actor
	Policy   BookingPolicy
	Now      time.Time
	Location *time.Location
}

// StartOf returns the absolute start instant of ap in loc.
func StartOf(ap *models.Appointment, loc *time.Location) time.Time {
	return ap.Date.At(ap.StartMinute, loc)
}

func (g Guard) hoursUntil(ap *models.Appointment) float64 {
	return HoursUntil(StartOf(ap, g.Location), g.Now)
}

// ===============================
// Domain Actions
// ===============================

type NewAppointmentInput struct {
	ID         string
	BusinessID string
	CustomerID string
	ServiceID  string
	StaffID    string
	Date       calendar.Date
	Start      calendar.Minute
	Service    ServiceSpec
	Notes      string
}

// NewScheduled builds the record a successful create persists. Businesses
// that require approval get an unconfirmed record that still holds its slot.
func NewScheduled(in NewAppointmentInput, p BookingPolicy, now time.Time) *models.Appointment {
	ap := &models.Appointment{
		ID:            in.ID,
		BusinessID:    in.BusinessID,
		CustomerID:    in.CustomerID,
		ServiceID:     in.ServiceID,
		StaffID:       in.StaffID,
		Date:          in.Date,
		StartMinute:   in.Start,
		EndMinute:     in.Start.Add(in.Service.DurationMinutes),
		BufferMinutes: in.Service.BufferMinutes,
		Status:        string(InitialStatus()),
		Confirmed:     !p.RequiresApproval,
		Notes:         in.Notes,
	}
	if ap.Confirmed {
		ap.ConfirmedAt = &now
	}
	return ap
}

func Cancel(ap *models.Appointment, g Guard, reason string) error {
	if err := CanTransition(Status(ap.Status), StatusCancelled); err != nil {
		return err
	}

	switch {
	case g.Actor.IsAdminOf(ap.BusinessID), g.Actor.IsAssignedStaff(ap):
	case g.Actor.IsCustomerOf(ap):
		if g.hoursUntil(ap) < float64(g.Policy.CancellationWindowHours) {
			return httperr.WindowViolationErr("cancellation_window")
		}
	default:
		return httperr.UnauthorizedErr("cannot_cancel")
	}

	actorID := g.Actor.ID
	ap.Status = string(StatusCancelled)
	ap.CancelledBy = &actorID
	ap.CancellationReason = reason
	ap.CancelledAt = &g.Now
	return nil
}

func Complete(ap *models.Appointment, g Guard) error {
	if err := CanTransition(Status(ap.Status), StatusCompleted); err != nil {
		return err
	}
	if !ap.Confirmed {
		return httperr.InvalidTransitionErr("pending_approval")
	}
	if !g.Actor.IsAdminOf(ap.BusinessID) && !g.Actor.IsAssignedStaff(ap) {
		return httperr.UnauthorizedErr("cannot_complete")
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &g.Now
	return nil
}

func MarkNoShow(ap *models.Appointment, g Guard) error {
	if err := CanTransition(Status(ap.Status), StatusNoShow); err != nil {
		return err
	}
	if !ap.Confirmed {
		return httperr.InvalidTransitionErr("pending_approval")
	}
	if !g.Actor.IsAdminOf(ap.BusinessID) {
		return httperr.UnauthorizedErr("cannot_mark_no_show")
	}

	ap.Status = string(StatusNoShow)
	ap.NoShowAt = &g.Now
	return nil
}

// Confirm approves a pending booking. It keeps the scheduled status.
func Confirm(ap *models.Appointment, g Guard) error {
	if Status(ap.Status).IsTerminal() {
		return httperr.InvalidTransitionErr("terminal_state")
	}
	if ap.Confirmed {
		return httperr.InvalidTransitionErr("already_confirmed")
	}
	if !g.Actor.IsAdminOf(ap.BusinessID) {
		return httperr.UnauthorizedErr("cannot_confirm")
	}

	ap.Confirmed = true
	ap.ConfirmedAt = &g.Now
	return nil
}

// CanReschedule checks the old side of a reschedule: state, actor, window
// and the reschedule cap.
func CanReschedule(ap *models.Appointment, g Guard) error {
	if err := CanTransition(Status(ap.Status), StatusRescheduled); err != nil {
		return err
	}
	if !ap.Confirmed {
		return httperr.InvalidTransitionErr("pending_approval")
	}

	switch {
	case g.Actor.IsAdminOf(ap.BusinessID), g.Actor.IsAssignedStaff(ap):
	case g.Actor.IsCustomerOf(ap):
		if g.hoursUntil(ap) < float64(g.Policy.RescheduleWindowHours) {
			return httperr.WindowViolationErr("reschedule_window")
		}
	default:
		return httperr.UnauthorizedErr("cannot_reschedule")
	}

	if ap.RescheduleCount >= g.Policy.MaxReschedulesPerAppointment {
		return httperr.LimitExceededErr("max_reschedules")
	}
	return nil
}

// Reschedule links old and next. It expects CanReschedule to have passed
// and next to be a fresh scheduled record.
func Reschedule(old, next *models.Appointment, now time.Time) {
	oldID, nextID := old.ID, next.ID

	old.Status = string(StatusRescheduled)
	old.RescheduledTo = &nextID
	old.RescheduledAt = &now

	next.RescheduledFrom = &oldID
	next.RescheduleCount = old.RescheduleCount + 1
	next.Confirmed = old.Confirmed
	next.ConfirmedAt = old.ConfirmedAt
}
