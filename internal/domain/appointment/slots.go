package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// ScanStep is the granularity of candidate start times, in minutes.
const ScanStep = 15

type Slot struct {
	StaffID string          `json:"staff_id,omitempty"`
	Start   calendar.Minute `json:"start_time"`
	End     calendar.Minute `json:"end_time"`
}

// Booking is an occupied window plus the trailing buffer of its service.
type Booking struct {
	StaffID       string
	Window        calendar.Interval
	BufferMinutes int
}

// Blocked is the window extended by the trailing buffer.
func (b Booking) Blocked() calendar.Interval {
	return calendar.Interval{Start: b.Window.Start, End: b.Window.End.Add(b.BufferMinutes)}
}

// BookingsOf keeps the scheduled and completed appointments of aps.
func BookingsOf(aps []models.Appointment) []Booking {
	out := make([]Booking, 0, len(aps))
	for _, ap := range aps {
		if !Status(ap.Status).Occupies() {
			continue
		}
		out = append(out, Booking{
			StaffID:       ap.StaffID,
			Window:        ap.Window(),
			BufferMinutes: ap.BufferMinutes,
		})
	}
	return out
}

// StaffSchedule is one staff member's input to slot generation.
type StaffSchedule struct {
	StaffID  string
	Calendar *calendar.StaffCalendar
	Bookings []Booking
}

type SlotQuery struct {
	Business *calendar.Calendar
	Policy   BookingPolicy
	Service  ServiceSpec
	Staff    []StaffSchedule
	Date     calendar.Date

	// Now enables the advance-booking window; the zero value disables it.
	Now      time.Time
	Location *time.Location

	// MergeStaff collapses identical windows of different staff into one
	// entry carrying the lowest staff id.
	MergeStaff bool
}

// GenerateSlots enumerates bookable windows for q.Date, ordered by start
// time and then staff id.
func GenerateSlots(q SlotQuery) []Slot {
	slots := []Slot{}
	if q.Service.DurationMinutes <= 0 {
		return slots
	}

	loc := q.Location
	if loc == nil {
		loc = time.UTC
	}

	var earliest time.Time
	if !q.Now.IsZero() {
		if err := CheckBookingDate(q.Policy, q.Date, q.Now, loc); err != nil {
			return slots
		}
		earliest = q.Now.Add(time.Duration(q.Policy.MinAdvanceHours) * time.Hour)
	}

	for _, st := range q.Staff {
		day, ok := calendar.EffectiveDay(q.Business, st.Calendar, q.Date)
		if !ok {
			continue
		}
		for _, w := range dayWindows(day, q.Service.DurationMinutes) {
			if blockedByAny(w, st.Bookings) {
				continue
			}
			if !earliest.IsZero() && q.Date.At(w.Start, loc).Before(earliest) {
				continue
			}
			slots = append(slots, Slot{StaffID: st.StaffID, Start: w.Start, End: w.End})
		}
	}

	sortSlots(slots)
	if q.MergeStaff {
		slots = mergeSlots(slots)
	}
	return slots
}

// dayWindows walks every work interval in ScanStep increments and keeps the
// windows that fit the interval and clear every break. A remainder shorter
// than the duration at the end of an interval yields nothing.
func dayWindows(day calendar.Day, duration int) []calendar.Interval {
	var out []calendar.Interval
	for _, ws := range day.WorkSlots {
		for start := ws.Start; start.Add(duration) <= ws.End; start = start.Add(ScanStep) {
			w := calendar.Interval{Start: start, End: start.Add(duration)}
			if overlapsAny(w, day.Breaks) {
				continue
			}
			out = append(out, w)
		}
	}
	return out
}

func overlapsAny(w calendar.Interval, in []calendar.Interval) bool {
	for _, iv := range in {
		if Overlap(w, iv) {
			return true
		}
	}
	return false
}

func blockedByAny(w calendar.Interval, bookings []Booking) bool {
	for _, b := range bookings {
		if Overlap(w, b.Blocked()) {
			return true
		}
	}
	return false
}

func sortSlots(slots []Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Start != slots[j].Start {
			return slots[i].Start < slots[j].Start
		}
		if slots[i].End != slots[j].End {
			return slots[i].End < slots[j].End
		}
		return slots[i].StaffID < slots[j].StaffID
	})
}

// mergeSlots expects sorted input.
func mergeSlots(slots []Slot) []Slot {
	out := slots[:0]
	for i, s := range slots {
		if i > 0 && s.Start == slots[i-1].Start && s.End == slots[i-1].End {
			continue
		}
		out = append(out, s)
	}
	return out
}
