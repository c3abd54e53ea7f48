package memory

import (
	"time"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
)

const (
	DemoBusinessID = "demo-business"
	DemoServiceID  = "demo-haircut"
	DemoStaffA     = "demo-staff-a"
	DemoStaffB     = "demo-staff-b"
)

// SeedDemo fills d with one business open Monday to Friday 09:00-18:00
// (lunch 12:00-13:00) and Saturday mornings, two staff members and a
// 30 minute service with a 10 minute buffer.
func SeedDemo(d *Directory) {
	var c calendar.Calendar
	for wd := time.Monday; wd <= time.Friday; wd++ {
		c.Days[wd] = calendar.Day{
			IsOpen:    true,
			WorkSlots: []calendar.Interval{{Start: calendar.Clock(9, 0), End: calendar.Clock(18, 0)}},
			Breaks:    []calendar.Interval{{Start: calendar.Clock(12, 0), End: calendar.Clock(13, 0)}},
		}
	}
	c.Days[time.Saturday] = calendar.Day{
		IsOpen:    true,
		WorkSlots: []calendar.Interval{{Start: calendar.Clock(9, 0), End: calendar.Clock(13, 0)}},
	}

	d.PutBusiness(domain.Business{
		ID:       DemoBusinessID,
		Active:   true,
		Calendar: c,
		Policy: domain.BookingPolicy{
			MinAdvanceHours:              1,
			MaxAdvanceDays:               30,
			CancellationWindowHours:      12,
			RescheduleWindowHours:        12,
			MaxReschedulesPerAppointment: 2,
		},
		Location: time.UTC,
	})
	d.PutService(domain.ServiceSpec{
		ID:              DemoServiceID,
		BusinessID:      DemoBusinessID,
		Active:          true,
		DurationMinutes: 30,
		BufferMinutes:   10,
	})
	d.PutStaff(domain.Staff{ID: DemoStaffA, BusinessID: DemoBusinessID, Active: true})
	d.PutStaff(domain.Staff{ID: DemoStaffB, BusinessID: DemoBusinessID, Active: true})
}
