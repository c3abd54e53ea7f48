package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

// Dates and times are civil values in the business time zone; the engine
// resolves them, so handlers only parse.

func parseDate(c *gin.Context, s string) (calendar.Date, bool) {
	if s == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return calendar.Date{}, false
	}
	d, err := calendar.ParseDate(s)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return calendar.Date{}, false
	}
	return d, true
}

func parseStartTime(c *gin.Context, s string) (calendar.Minute, bool) {
	m, err := calendar.ParseClock(s)
	if err != nil {
		httperr.BadRequest(c, "invalid_time", "Time must be HH:MM.")
		return 0, false
	}
	return m, true
}
