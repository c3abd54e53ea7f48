package calendar

import (
	"fmt"
	"sort"
	"time"
)

// Interval is the half-open window [Start, End).
type Interval struct {
	Start Minute `json:"start"`
	End   Minute `json:"end"`
}

func (i Interval) Length() int {
	return int(i.End - i.Start)
}

// Overlaps reports whether [a.Start,a.End) and [b.Start,b.End) intersect.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// Contains reports whether o lies entirely inside i.
func (i Interval) Contains(o Interval) bool {
	return o.Start >= i.Start && o.End <= i.End
}

// Day is the rule set of one weekday.
type Day struct {
	IsOpen    bool       `json:"is_open"`
	WorkSlots []Interval `json:"work_slots"`
	Breaks    []Interval `json:"breaks"`
}

// Calendar is the weekly rule set of a business or a staff override.
type Calendar struct {
	Days     [7]Day        `json:"days"`
	Holidays map[Date]bool `json:"-"`
	TimeZone string        `json:"time_zone"`
}

func (c *Calendar) Day(wd time.Weekday) Day {
	return c.Days[int(wd)]
}

func (c *Calendar) IsHoliday(d Date) bool {
	return c != nil && c.Holidays[d]
}

func (c *Calendar) AddHoliday(d Date) {
	if c.Holidays == nil {
		c.Holidays = make(map[Date]bool)
	}
	c.Holidays[d] = true
}

// Normalize sorts work slots and breaks of every day.
func (c *Calendar) Normalize() {
	for i := range c.Days {
		sortIntervals(c.Days[i].WorkSlots)
		sortIntervals(c.Days[i].Breaks)
	}
}

// Validate checks start < end and that intervals of one kind do not overlap.
// It expects a normalized calendar.
func (c *Calendar) Validate() error {
	for wd, day := range c.Days {
		if err := validateIntervals(day.WorkSlots); err != nil {
			return fmt.Errorf("%s work slots: %w", time.Weekday(wd), err)
		}
		if err := validateIntervals(day.Breaks); err != nil {
			return fmt.Errorf("%s breaks: %w", time.Weekday(wd), err)
		}
	}
	return nil
}

// StaffCalendar is a staff member's personal override plus dates off.
type StaffCalendar struct {
	Override         *Calendar
	UnavailableDates map[Date]bool
}

func (s *StaffCalendar) IsUnavailable(d Date) bool {
	return s != nil && s.UnavailableDates[d]
}

// EffectiveDay resolves the rules for date d. A staff override day wins only
// when it is marked open; otherwise the business day applies. ok is false when
// the date is a holiday, a staff day off, or a closed weekday.
func EffectiveDay(business *Calendar, staff *StaffCalendar, d Date) (Day, bool) {
	if business == nil {
		return Day{}, false
	}
	if business.IsHoliday(d) {
		return Day{}, false
	}
	if staff != nil {
		if staff.IsUnavailable(d) || staff.Override.IsHoliday(d) {
			return Day{}, false
		}
		if staff.Override != nil {
			if day := staff.Override.Day(d.Weekday()); day.IsOpen && len(day.WorkSlots) > 0 {
				return day, true
			}
		}
	}
	day := business.Day(d.Weekday())
	if !day.IsOpen || len(day.WorkSlots) == 0 {
		return Day{}, false
	}
	return day, true
}

// Fits reports whether w lies inside one work slot of day and clear of every break.
func (d Day) Fits(w Interval) bool {
	inside := false
	for _, ws := range d.WorkSlots {
		if ws.Contains(w) {
			inside = true
			break
		}
	}
	if !inside {
		return false
	}
	for _, br := range d.Breaks {
		if br.Overlaps(w) {
			return false
		}
	}
	return true
}

func sortIntervals(in []Interval) {
	sort.Slice(in, func(i, j int) bool {
		if in[i].Start == in[j].Start {
			return in[i].End < in[j].End
		}
		return in[i].Start < in[j].Start
	})
}

func validateIntervals(in []Interval) error {
	for i, iv := range in {
		if iv.Start >= iv.End {
			return fmt.Errorf("interval %s-%s: start must be before end", iv.Start, iv.End)
		}
		if iv.Start < 0 || iv.End > MinutesPerDay {
			return fmt.Errorf("interval %s-%s: outside the day", iv.Start, iv.End)
		}
		if i > 0 && in[i-1].End > iv.Start {
			return fmt.Errorf("interval %s-%s overlaps %s-%s", in[i-1].Start, in[i-1].End, iv.Start, iv.End)
		}
	}
	return nil
}
