package lock

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
)

// Locker serializes work on a key across callers. Release is safe to call
// more than once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// StaffDayKey names the critical section guarding one staff member's day.
func StaffDayKey(businessID, staffID string, date calendar.Date) string {
	return fmt.Sprintf("scheduler:lock:%s:%s:%s", businessID, staffID, date)
}
