package appointment

import (
	"errors"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

// BookingPolicy holds the business-level time-window rules.
type BookingPolicy struct {
	MinAdvanceHours              int
	MaxAdvanceDays               int
	CancellationWindowHours      int
	RescheduleWindowHours        int
	MaxReschedulesPerAppointment int
	RequiresApproval             bool
}

func (p BookingPolicy) Validate() error {
	if p.MinAdvanceHours < 0 || p.MaxAdvanceDays < 0 || p.CancellationWindowHours < 0 ||
		p.RescheduleWindowHours < 0 || p.MaxReschedulesPerAppointment < 0 {
		return errors.New("booking policy values must be non-negative")
	}
	return nil
}

type ServiceSpec struct {
	ID               string
	BusinessID       string
	Active           bool
	DurationMinutes  int
	BufferMinutes    int
	EligibleStaffIDs map[string]bool
}

func (s ServiceSpec) Validate() error {
	if s.DurationMinutes <= 0 {
		return errors.New("service duration must be positive")
	}
	if s.BufferMinutes < 0 {
		return errors.New("service buffer must be non-negative")
	}
	return nil
}

// IsEligible reports whether staffID may perform the service. An empty
// eligibility set admits every staff member of the business.
func (s ServiceSpec) IsEligible(staffID string) bool {
	if len(s.EligibleStaffIDs) == 0 {
		return true
	}
	return s.EligibleStaffIDs[staffID]
}

func HoursUntil(start, now time.Time) float64 {
	return start.Sub(now).Hours()
}

// CheckBookingDate applies the date-level part of the advance window.
func CheckBookingDate(p BookingPolicy, date calendar.Date, now time.Time, loc *time.Location) error {
	today := calendar.DateOf(now.In(loc))
	if date.Before(today) {
		return httperr.WindowViolationErr("date_in_past")
	}
	if today.DaysUntil(date) > p.MaxAdvanceDays {
		return httperr.WindowViolationErr("too_far_ahead")
	}
	return nil
}

// CheckBookingWindow applies the full advance-booking window to a start instant.
func CheckBookingWindow(p BookingPolicy, date calendar.Date, start, now time.Time, loc *time.Location) error {
	if err := CheckBookingDate(p, date, now, loc); err != nil {
		return err
	}
	if start.Before(now) {
		return httperr.WindowViolationErr("start_in_past")
	}
	if HoursUntil(start, now) < float64(p.MinAdvanceHours) {
		return httperr.WindowViolationErr("too_soon")
	}
	return nil
}
