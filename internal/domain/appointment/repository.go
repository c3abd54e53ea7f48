package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// Business is the per-request snapshot of a business's rules.
type Business struct {
	ID       string
	Active   bool
	Calendar calendar.Calendar
	Policy   BookingPolicy
	Location *time.Location
}

type Staff struct {
	ID         string
	BusinessID string
	Active     bool
	Calendar   calendar.StaffCalendar
}

// Directory is the read-only source of business, staff and service records.
type Directory interface {
	// -------- Business --------
	GetBusiness(
		ctx context.Context,
		businessID string,
	) (*Business, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		businessID string,
		serviceID string,
	) (*ServiceSpec, error)

	// -------- Staff --------
	GetStaff(
		ctx context.Context,
		businessID string,
		staffID string,
	) (*Staff, error)

	ListStaff(
		ctx context.Context,
		businessID string,
	) ([]Staff, error)
}

// Store persists appointments. Implementations must reject a second
// scheduled record for the same (business, staff, date, start) with a
// slot_taken error.
type Store interface {
	// -------- Read --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	// GetAppointmentForUpdate locks the row for the enclosing transaction.
	GetAppointmentForUpdate(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	// ListForStaffDay returns scheduled and completed appointments.
	ListForStaffDay(
		ctx context.Context,
		businessID string,
		staffID string,
		date calendar.Date,
	) ([]models.Appointment, error)

	// ListForStaffPeriod returns every appointment in [from, to).
	ListForStaffPeriod(
		ctx context.Context,
		staffID string,
		from calendar.Date,
		to calendar.Date,
	) ([]models.Appointment, error)

	// -------- Write --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// LockStaffDay serializes check-then-write for one staff day until the
	// enclosing transaction ends.
	LockStaffDay(
		ctx context.Context,
		businessID string,
		staffID string,
		date calendar.Date,
	) error

	// Transaction runs fn all-or-nothing.
	Transaction(
		ctx context.Context,
		fn func(tx Store) error,
	) error
}
