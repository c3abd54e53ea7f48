package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

var (
	customer = Actor{ID: "c1", Role: RoleCustomer}
	admin    = Actor{ID: "adm", Role: RoleAdmin, BusinessID: "b1"}
	staff    = Actor{ID: "s1", Role: RoleStaff, BusinessID: "b1"}
	stranger = Actor{ID: "c2", Role: RoleCustomer}
)

var policy = BookingPolicy{
	MinAdvanceHours:              2,
	MaxAdvanceDays:               60,
	CancellationWindowHours:      24,
	RescheduleWindowHours:        24,
	MaxReschedulesPerAppointment: 2,
}

func scheduledAt(start time.Time) *models.Appointment {
	return &models.Appointment{
		ID:          "ap1",
		BusinessID:  "b1",
		CustomerID:  "c1",
		StaffID:     "s1",
		Date:        calendar.DateOf(start),
		StartMinute: calendar.Clock(start.Hour(), start.Minute()),
		EndMinute:   calendar.Clock(start.Hour(), start.Minute()).Add(30),
		Status:      string(StatusScheduled),
		Confirmed:   true,
	}
}

func guard(a Actor, now time.Time) Guard {
	return Guard{Actor: a, Policy: policy, Now: now, Location: time.UTC}
}

func TestTerminalStatesRejectEveryTransition(t *testing.T) {
	start := time.Date(2026, 11, 10, 10, 0, 0, 0, time.UTC)
	now := start.Add(-72 * time.Hour)

	for _, st := range []Status{StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled} {
		for _, a := range []Actor{customer, admin, staff} {
			ap := scheduledAt(start)
			ap.Status = string(st)
			g := guard(a, now)

			assert.True(t, httperr.IsKind(Cancel(ap, g, ""), httperr.KindInvalidTransition), "%s cancel by %s", st, a.Role)
			assert.True(t, httperr.IsKind(Complete(ap, g), httperr.KindInvalidTransition))
			assert.True(t, httperr.IsKind(MarkNoShow(ap, g), httperr.KindInvalidTransition))
			assert.True(t, httperr.IsKind(CanReschedule(ap, g), httperr.KindInvalidTransition))
			assert.True(t, httperr.IsKind(Confirm(ap, g), httperr.KindInvalidTransition))
			assert.Equal(t, string(st), ap.Status, "terminal record untouched")
		}
	}
}

func TestCancelWindow(t *testing.T) {
	start := time.Date(2026, 11, 10, 10, 0, 0, 0, time.UTC)

	justOutside := start.Add(-24*time.Hour - time.Minute)
	ap := scheduledAt(start)
	require.NoError(t, Cancel(ap, guard(customer, justOutside), "sick"))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledBy)
	assert.Equal(t, "c1", *ap.CancelledBy)
	assert.Equal(t, "sick", ap.CancellationReason)
	require.NotNil(t, ap.CancelledAt)

	justInside := start.Add(-24*time.Hour + time.Minute)
	ap = scheduledAt(start)
	err := Cancel(ap, guard(customer, justInside), "")
	assert.True(t, httperr.IsBusiness(err, "cancellation_window"))
	assert.Equal(t, string(StatusScheduled), ap.Status)

	ap = scheduledAt(start)
	require.NoError(t, Cancel(ap, guard(admin, justInside), ""), "admin ignores the window")

	ap = scheduledAt(start)
	require.NoError(t, Cancel(ap, guard(staff, start.Add(-time.Hour)), ""), "assigned staff ignores the window")

	ap = scheduledAt(start)
	err = Cancel(ap, guard(stranger, justOutside), "")
	assert.True(t, httperr.IsKind(err, httperr.KindUnauthorized))
}

func TestRescheduleRules(t *testing.T) {
	start := time.Date(2026, 11, 10, 10, 0, 0, 0, time.UTC)
	early := start.Add(-48 * time.Hour)

	ap := scheduledAt(start)
	require.NoError(t, CanReschedule(ap, guard(customer, early)))

	err := CanReschedule(ap, guard(customer, start.Add(-2*time.Hour)))
	assert.True(t, httperr.IsBusiness(err, "reschedule_window"))

	ap.RescheduleCount = policy.MaxReschedulesPerAppointment
	err = CanReschedule(ap, guard(admin, early))
	assert.True(t, httperr.IsKind(err, httperr.KindLimitExceeded))

	zero := guard(customer, early)
	zero.Policy.MaxReschedulesPerAppointment = 0
	ap.RescheduleCount = 0
	assert.True(t, httperr.IsBusiness(CanReschedule(ap, zero), "max_reschedules"))

	next := &models.Appointment{ID: "ap2", Status: string(StatusScheduled)}
	ap.RescheduleCount = 1
	Reschedule(ap, next, early)
	assert.Equal(t, string(StatusRescheduled), ap.Status)
	require.NotNil(t, ap.RescheduledTo)
	assert.Equal(t, "ap2", *ap.RescheduledTo)
	require.NotNil(t, next.RescheduledFrom)
	assert.Equal(t, "ap1", *next.RescheduledFrom)
	assert.Equal(t, 2, next.RescheduleCount)
	assert.True(t, next.Confirmed)
}

func TestCompleteAndNoShow(t *testing.T) {
	start := time.Date(2026, 11, 10, 10, 0, 0, 0, time.UTC)
	after := start.Add(time.Hour)

	ap := scheduledAt(start)
	assert.True(t, httperr.IsKind(Complete(ap, guard(customer, after)), httperr.KindUnauthorized))
	require.NoError(t, Complete(ap, guard(staff, after)))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.NotNil(t, ap.CompletedAt)

	ap = scheduledAt(start)
	assert.True(t, httperr.IsKind(MarkNoShow(ap, guard(staff, after)), httperr.KindUnauthorized))
	require.NoError(t, MarkNoShow(ap, guard(admin, after)))
	assert.Equal(t, string(StatusNoShow), ap.Status)

	other := Actor{ID: "adm2", Role: RoleAdmin, BusinessID: "b2"}
	ap = scheduledAt(start)
	assert.True(t, httperr.IsKind(MarkNoShow(ap, guard(other, after)), httperr.KindUnauthorized))
}

func TestPendingApproval(t *testing.T) {
	now := time.Date(2026, 11, 1, 8, 0, 0, 0, time.UTC)
	in := NewAppointmentInput{
		ID:         "ap1",
		BusinessID: "b1",
		CustomerID: "c1",
		StaffID:    "s1",
		Date:       calendar.NewDate(2026, 11, 10),
		Start:      calendar.Clock(10, 0),
		Service:    ServiceSpec{DurationMinutes: 45, BufferMinutes: 5},
	}

	p := policy
	p.RequiresApproval = true
	ap := NewScheduled(in, p, now)
	assert.Equal(t, string(StatusScheduled), ap.Status)
	assert.False(t, ap.Confirmed)
	assert.Nil(t, ap.ConfirmedAt)
	assert.Equal(t, calendar.Clock(10, 45), ap.EndMinute)
	assert.Equal(t, 5, ap.BufferMinutes)

	g := guard(staff, now)
	assert.True(t, httperr.IsBusiness(Complete(ap, g), "pending_approval"))
	assert.True(t, httperr.IsBusiness(CanReschedule(ap, guard(customer, now)), "pending_approval"))
	assert.True(t, httperr.IsKind(Confirm(ap, g), httperr.KindUnauthorized))

	require.NoError(t, Confirm(ap, guard(admin, now)))
	assert.True(t, ap.Confirmed)
	assert.True(t, httperr.IsBusiness(Confirm(ap, guard(admin, now)), "already_confirmed"))

	pending := NewScheduled(in, p, now)
	require.NoError(t, Cancel(pending, guard(customer, now), ""), "pending bookings may be cancelled")

	direct := NewScheduled(in, policy, now)
	assert.True(t, direct.Confirmed)
	assert.NotNil(t, direct.ConfirmedAt)
}

func TestAuthorizeCreate(t *testing.T) {
	assert.NoError(t, AuthorizeCreate(customer, "b1", "c1"))
	assert.True(t, httperr.IsBusiness(AuthorizeCreate(customer, "b1", "c2"), "customer_mismatch"))
	assert.NoError(t, AuthorizeCreate(staff, "b1", "c9"))
	assert.True(t, httperr.IsBusiness(AuthorizeCreate(admin, "b2", "c9"), "foreign_business"))
	assert.Error(t, AuthorizeCreate(Actor{ID: "x"}, "b1", "x"))
}

func TestCanTransition(t *testing.T) {
	assert.NoError(t, CanTransition(StatusScheduled, StatusCancelled))
	assert.True(t, httperr.IsBusiness(CanTransition(StatusScheduled, StatusScheduled), "invalid_state"))
	assert.True(t, httperr.IsBusiness(CanTransition(StatusCompleted, StatusCancelled), "terminal_state"))
}
