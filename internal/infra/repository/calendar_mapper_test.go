package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

func TestBuildCalendar(t *testing.T) {
	rows := []models.WorkingHours{
		{Weekday: 1, Kind: models.IntervalWork, StartMinute: 14 * 60, EndMinute: 18 * 60, Active: true},
		{Weekday: 1, Kind: models.IntervalWork, StartMinute: 9 * 60, EndMinute: 12 * 60, Active: true},
		{Weekday: 1, Kind: models.IntervalBreak, StartMinute: 10 * 60, EndMinute: 10*60 + 15, Active: true},
		{Weekday: 2, Kind: models.IntervalWork, StartMinute: 9 * 60, EndMinute: 17 * 60, Active: false},
		{Weekday: 9, Kind: models.IntervalWork, StartMinute: 9 * 60, EndMinute: 17 * 60, Active: true},
	}
	holiday := calendar.NewDate(2026, 12, 25)

	c := buildCalendar(rows, []models.Holiday{{Date: holiday}}, "America/Sao_Paulo")

	mon := c.Day(time.Monday)
	assert.True(t, mon.IsOpen)
	assert.Equal(t, []calendar.Interval{
		{Start: calendar.Clock(9, 0), End: calendar.Clock(12, 0)},
		{Start: calendar.Clock(14, 0), End: calendar.Clock(18, 0)},
	}, mon.WorkSlots)
	assert.Len(t, mon.Breaks, 1)

	assert.False(t, c.Day(time.Tuesday).IsOpen, "inactive rows ignored")
	assert.True(t, c.IsHoliday(holiday))
	assert.Equal(t, "America/Sao_Paulo", c.TimeZone)
	assert.NoError(t, c.Validate())
}

func TestMapError(t *testing.T) {
	assert.Nil(t, mapError(nil, "x"))
	assert.True(t, httperr.IsBusiness(mapError(gorm.ErrRecordNotFound, "appointment_not_found"), "appointment_not_found"))
	assert.True(t, httperr.IsKind(mapError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), ""), httperr.KindSlotTaken))

	other := errors.New("conn reset")
	assert.Equal(t, other, mapError(other, ""))
}
