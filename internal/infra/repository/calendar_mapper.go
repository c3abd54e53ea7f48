package repository

import (
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// buildCalendar folds working-hours rows into a weekly calendar. A weekday
// is open when it has at least one active work row.
func buildCalendar(rows []models.WorkingHours, holidays []models.Holiday, tz string) calendar.Calendar {
	c := calendar.Calendar{TimeZone: tz}

	for _, wh := range rows {
		if !wh.Active || wh.Weekday < int(time.Sunday) || wh.Weekday > int(time.Saturday) {
			continue
		}
		iv := calendar.Interval{
			Start: calendar.Minute(wh.StartMinute),
			End:   calendar.Minute(wh.EndMinute),
		}
		day := &c.Days[wh.Weekday]
		switch wh.Kind {
		case models.IntervalBreak:
			day.Breaks = append(day.Breaks, iv)
		default:
			day.WorkSlots = append(day.WorkSlots, iv)
			day.IsOpen = true
		}
	}

	for _, h := range holidays {
		c.AddHoliday(h.Date)
	}

	c.Normalize()
	return c
}
