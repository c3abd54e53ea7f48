package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

var day = calendar.NewDate(2026, 11, 2)

func newAppointment(id string, start calendar.Minute, status domain.Status) *models.Appointment {
	return &models.Appointment{
		ID:          id,
		BusinessID:  "b1",
		CustomerID:  "c1",
		ServiceID:   "svc",
		StaffID:     "s1",
		Date:        day,
		StartMinute: start,
		EndMinute:   start.Add(30),
		Status:      string(status),
		Confirmed:   true,
	}
}

func TestAppointmentStore_CreateAndGet(t *testing.T) {
	s := NewAppointmentStore()
	ctx := context.Background()

	require.NoError(t, s.CreateAppointment(ctx, newAppointment("a1", calendar.Clock(9, 0), domain.StatusScheduled)))

	got, err := s.GetAppointment(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, calendar.Clock(9, 30), got.EndMinute)

	_, err = s.GetAppointment(ctx, "missing")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestAppointmentStore_UniqueScheduledSlot(t *testing.T) {
	s := NewAppointmentStore()
	ctx := context.Background()

	require.NoError(t, s.CreateAppointment(ctx, newAppointment("a1", calendar.Clock(9, 0), domain.StatusScheduled)))
	err := s.CreateAppointment(ctx, newAppointment("a2", calendar.Clock(9, 0), domain.StatusScheduled))
	assert.True(t, httperr.IsKind(err, httperr.KindSlotTaken))

	cancelled, err := s.GetAppointment(ctx, "a1")
	require.NoError(t, err)
	cancelled.Status = string(domain.StatusCancelled)
	require.NoError(t, s.UpdateAppointment(ctx, cancelled))

	assert.NoError(t, s.CreateAppointment(ctx, newAppointment("a2", calendar.Clock(9, 0), domain.StatusScheduled)))
}

func TestAppointmentStore_TransactionRollsBack(t *testing.T) {
	s := NewAppointmentStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Transaction(ctx, func(tx domain.Store) error {
		if err := tx.CreateAppointment(ctx, newAppointment("a1", calendar.Clock(9, 0), domain.StatusScheduled)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.GetAppointment(ctx, "a1")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	require.NoError(t, s.Transaction(ctx, func(tx domain.Store) error {
		return tx.CreateAppointment(ctx, newAppointment("a1", calendar.Clock(9, 0), domain.StatusScheduled))
	}))
	_, err = s.GetAppointment(ctx, "a1")
	assert.NoError(t, err)
}

func TestAppointmentStore_Lists(t *testing.T) {
	s := NewAppointmentStore()
	ctx := context.Background()

	require.NoError(t, s.CreateAppointment(ctx, newAppointment("late", calendar.Clock(11, 0), domain.StatusScheduled)))
	require.NoError(t, s.CreateAppointment(ctx, newAppointment("early", calendar.Clock(9, 0), domain.StatusCompleted)))
	require.NoError(t, s.CreateAppointment(ctx, newAppointment("gone", calendar.Clock(10, 0), domain.StatusCancelled)))
	next := newAppointment("next", calendar.Clock(9, 0), domain.StatusScheduled)
	next.Date = day.AddDays(1)
	require.NoError(t, s.CreateAppointment(ctx, next))

	dayList, err := s.ListForStaffDay(ctx, "b1", "s1", day)
	require.NoError(t, err)
	require.Len(t, dayList, 2)
	assert.Equal(t, "early", dayList[0].ID)
	assert.Equal(t, "late", dayList[1].ID)

	period, err := s.ListForStaffPeriod(ctx, "s1", day, day.AddDays(2))
	require.NoError(t, err)
	assert.Len(t, period, 4)
	assert.Equal(t, "next", period[3].ID)
}

func TestAppointmentStore_ContextDone(t *testing.T) {
	s := NewAppointmentStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.CreateAppointment(ctx, newAppointment("a1", calendar.Clock(9, 0), domain.StatusScheduled))
	assert.ErrorIs(t, err, context.Canceled)
}
