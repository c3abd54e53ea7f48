package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

// ListByDate returns every appointment of a staff member on one day, in any
// status.
func (e *Engine) ListByDate(
	ctx context.Context,
	actor domain.Actor,
	staffID string,
	date calendar.Date,
) ([]dto.AppointmentListDTO, error) {
	if date.IsZero() {
		return nil, httperr.InvalidErr("invalid_date")
	}
	return e.listPeriod(ctx, actor, staffID, date, date.AddDays(1))
}

func (e *Engine) ListByMonth(
	ctx context.Context,
	actor domain.Actor,
	staffID string,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, httperr.InvalidErr("invalid_month")
	}
	start := calendar.NewDate(year, time.Month(month), 1)
	end := calendar.DateOf(start.In(time.UTC).AddDate(0, 1, 0))
	return e.listPeriod(ctx, actor, staffID, start, end)
}

// listPeriod lets staff read their own agenda and admins read any agenda of
// their business.
func (e *Engine) listPeriod(
	ctx context.Context,
	actor domain.Actor,
	staffID string,
	from calendar.Date,
	to calendar.Date,
) ([]dto.AppointmentListDTO, error) {

	ctx, cancel := e.bounded(ctx)
	defer cancel()

	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleStaff:
		if actor.ID != staffID {
			return nil, httperr.UnauthorizedErr("foreign_agenda")
		}
	default:
		return nil, httperr.UnauthorizedErr("foreign_agenda")
	}

	if _, err := e.directory.GetStaff(ctx, actor.BusinessID, staffID); err != nil {
		return nil, classify(err)
	}

	aps, err := e.store.ListForStaffPeriod(ctx, staffID, from, to)
	if err != nil {
		return nil, classify(err)
	}
	return dto.FromAppointments(aps), nil
}
