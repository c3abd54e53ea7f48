package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
)

var fixtureDate = calendar.NewDate(2026, 11, 2) // Monday

func morningCalendar() *calendar.Calendar {
	c := &calendar.Calendar{}
	c.Days[time.Monday] = calendar.Day{
		IsOpen:    true,
		WorkSlots: []calendar.Interval{{Start: calendar.Clock(9, 0), End: calendar.Clock(12, 0)}},
		Breaks:    []calendar.Interval{{Start: calendar.Clock(10, 0), End: calendar.Clock(10, 15)}},
	}
	return c
}

func starts(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start.String())
	}
	return out
}

func TestGenerateSlots_BreakBoundaryFixture(t *testing.T) {
	slots := GenerateSlots(SlotQuery{
		Business: morningCalendar(),
		Service:  ServiceSpec{DurationMinutes: 30},
		Staff:    []StaffSchedule{{StaffID: "s1"}},
		Date:     fixtureDate,
	})

	got := starts(slots)
	assert.Equal(t,
		[]string{"09:00", "09:15", "09:30", "10:15", "10:30", "10:45", "11:00", "11:15", "11:30"},
		got,
	)

	// 09:30-10:00 touches the break start and is kept; 09:45-10:15 and
	// 10:00-10:30 intersect [10:00,10:15) and are dropped.
	assert.Contains(t, got, "09:30")
	assert.NotContains(t, got, "09:45")
	assert.NotContains(t, got, "10:00")
	assert.Contains(t, got, "10:15")
	// 11:45-12:15 runs past the work interval.
	assert.NotContains(t, got, "11:45")

	for _, s := range slots {
		assert.Equal(t, 30, int(s.End-s.Start))
		assert.Equal(t, "s1", s.StaffID)
	}
}

func TestGenerateSlots_BufferBlocksUntilBufferEnds(t *testing.T) {
	existing := Booking{
		StaffID:       "s1",
		Window:        calendar.Interval{Start: calendar.Clock(9, 0), End: calendar.Clock(9, 30)},
		BufferMinutes: 10,
	}
	c := &calendar.Calendar{}
	c.Days[time.Monday] = calendar.Day{
		IsOpen:    true,
		WorkSlots: []calendar.Interval{{Start: calendar.Clock(9, 0), End: calendar.Clock(11, 0)}},
	}

	slots := GenerateSlots(SlotQuery{
		Business: c,
		Service:  ServiceSpec{DurationMinutes: 20, BufferMinutes: 10},
		Staff:    []StaffSchedule{{StaffID: "s1", Bookings: []Booking{existing}}},
		Date:     fixtureDate,
	})

	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.GreaterOrEqual(t, int(s.Start), int(calendar.Clock(9, 40)), "slot %s starts inside the buffer", s.Start)
	}
	assert.Equal(t, "09:45", slots[0].Start.String())
}

func TestGenerateSlots_TrailingRemainderAndLongService(t *testing.T) {
	c := &calendar.Calendar{}
	c.Days[time.Monday] = calendar.Day{
		IsOpen:    true,
		WorkSlots: []calendar.Interval{{Start: calendar.Clock(9, 0), End: calendar.Clock(10, 10)}},
	}

	slots := GenerateSlots(SlotQuery{
		Business: c,
		Service:  ServiceSpec{DurationMinutes: 45},
		Staff:    []StaffSchedule{{StaffID: "s1"}},
		Date:     fixtureDate,
	})
	assert.Equal(t, []string{"09:00", "09:15"}, starts(slots))

	slots = GenerateSlots(SlotQuery{
		Business: c,
		Service:  ServiceSpec{DurationMinutes: 180},
		Staff:    []StaffSchedule{{StaffID: "s1"}},
		Date:     fixtureDate,
	})
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGenerateSlots_ClosedDays(t *testing.T) {
	c := morningCalendar()
	q := SlotQuery{
		Business: c,
		Service:  ServiceSpec{DurationMinutes: 30},
		Staff:    []StaffSchedule{{StaffID: "s1"}},
		Date:     fixtureDate.AddDays(1),
	}
	assert.Empty(t, GenerateSlots(q), "tuesday is closed")

	c.AddHoliday(fixtureDate)
	q.Date = fixtureDate
	assert.Empty(t, GenerateSlots(q), "holiday")
}

func TestGenerateSlots_StaffOverride(t *testing.T) {
	override := &calendar.Calendar{}
	override.Days[time.Monday] = calendar.Day{
		IsOpen:    true,
		WorkSlots: []calendar.Interval{{Start: calendar.Clock(14, 0), End: calendar.Clock(15, 0)}},
	}

	slots := GenerateSlots(SlotQuery{
		Business: morningCalendar(),
		Service:  ServiceSpec{DurationMinutes: 30},
		Staff: []StaffSchedule{{
			StaffID:  "s1",
			Calendar: &calendar.StaffCalendar{Override: override},
		}},
		Date: fixtureDate,
	})
	assert.Equal(t, []string{"14:00", "14:15", "14:30"}, starts(slots))
}

func TestGenerateSlots_MultipleStaff(t *testing.T) {
	c := &calendar.Calendar{}
	c.Days[time.Monday] = calendar.Day{
		IsOpen:    true,
		WorkSlots: []calendar.Interval{{Start: calendar.Clock(9, 0), End: calendar.Clock(10, 0)}},
	}
	busy := Booking{Window: calendar.Interval{Start: calendar.Clock(9, 0), End: calendar.Clock(9, 30)}}
	q := SlotQuery{
		Business: c,
		Service:  ServiceSpec{DurationMinutes: 30},
		Staff: []StaffSchedule{
			{StaffID: "b", Bookings: []Booking{busy}},
			{StaffID: "a"},
		},
		Date: fixtureDate,
	}

	slots := GenerateSlots(q)
	assert.Equal(t, []Slot{
		{StaffID: "a", Start: calendar.Clock(9, 0), End: calendar.Clock(9, 30)},
		{StaffID: "a", Start: calendar.Clock(9, 15), End: calendar.Clock(9, 45)},
		{StaffID: "a", Start: calendar.Clock(9, 30), End: calendar.Clock(10, 0)},
		{StaffID: "b", Start: calendar.Clock(9, 30), End: calendar.Clock(10, 0)},
	}, slots)

	q.MergeStaff = true
	merged := GenerateSlots(q)
	assert.Equal(t, []string{"09:00", "09:15", "09:30"}, starts(merged))
	assert.Equal(t, "a", merged[2].StaffID)
}

func TestGenerateSlots_AdvanceWindow(t *testing.T) {
	loc := time.UTC
	now := fixtureDate.At(calendar.Clock(8, 0), loc)
	q := SlotQuery{
		Business: morningCalendar(),
		Policy:   BookingPolicy{MinAdvanceHours: 2, MaxAdvanceDays: 30},
		Service:  ServiceSpec{DurationMinutes: 30},
		Staff:    []StaffSchedule{{StaffID: "s1"}},
		Date:     fixtureDate,
		Now:      now,
		Location: loc,
	}
	assert.Equal(t, []string{"10:15", "10:30", "10:45", "11:00", "11:15", "11:30"}, starts(GenerateSlots(q)))

	q.Date = fixtureDate.AddDays(-7)
	assert.Empty(t, GenerateSlots(q), "past date")

	q.Date = fixtureDate.AddDays(35)
	assert.Empty(t, GenerateSlots(q), "beyond max advance")
}
