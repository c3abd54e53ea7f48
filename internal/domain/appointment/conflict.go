package appointment

import (
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// Overlap is the single half-open overlap predicate used for breaks,
// bookings and commit-time checks. It covers a starting inside b, a ending
// inside b and a containing b.
func Overlap(a, b calendar.Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// IsAvailable reports whether [start, start+durationMinutes) on date clears
// every occupying (scheduled or completed) appointment of staffID in
// existing, the same set slot generation blocks on. Each existing window is
// extended by its own buffer. Appointments listed in exclude are ignored.
func IsAvailable(
	existing []models.Appointment,
	staffID string,
	date calendar.Date,
	start calendar.Minute,
	durationMinutes int,
	exclude ...string,
) bool {
	candidate := calendar.Interval{Start: start, End: start.Add(durationMinutes)}

	for i := range existing {
		ap := &existing[i]
		if !Status(ap.Status).Occupies() || ap.StaffID != staffID || ap.Date != date {
			continue
		}
		if excluded(ap.ID, exclude) {
			continue
		}
		b := Booking{Window: ap.Window(), BufferMinutes: ap.BufferMinutes}
		if Overlap(candidate, b.Blocked()) {
			return false
		}
	}
	return true
}

func excluded(id string, exclude []string) bool {
	for _, e := range exclude {
		if e == id {
			return true
		}
	}
	return false
}
