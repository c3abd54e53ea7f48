package appointment

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

type AvailabilityInput struct {
	BusinessID string
	ServiceID  string
	Date       calendar.Date
	// StaffID is optional. Without it every eligible staff member is
	// considered and identical windows are merged.
	StaffID string
}

// ListAvailability computes a point-in-time snapshot of bookable slots.
// Results are never cached; a commit re-validates everything.
func (e *Engine) ListAvailability(
	ctx context.Context,
	in AvailabilityInput,
) (slots []domain.Slot, err error) {

	ctx, span := tracer.Start(ctx, "engine.list_availability")
	span.SetAttributes(
		attribute.String("scheduler.business_id", in.BusinessID),
		attribute.String("scheduler.service_id", in.ServiceID),
		attribute.String("scheduler.date", in.Date.String()),
	)
	started := time.Now()
	defer func() {
		e.metrics.ObserveAvailability(time.Since(started).Seconds())
		endSpan(span, err)
	}()

	ctx, cancel := e.bounded(ctx)
	defer cancel()

	if in.Date.IsZero() {
		return nil, httperr.InvalidErr("invalid_date")
	}

	// --------------------------------------------------
	// Business / service
	// --------------------------------------------------
	biz, err := e.activeBusiness(ctx, in.BusinessID)
	if err != nil {
		return nil, classify(err)
	}

	svc, err := e.activeService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, classify(err)
	}

	// --------------------------------------------------
	// Staff candidates
	// --------------------------------------------------
	var candidates []domain.Staff
	if in.StaffID != "" {
		st, err := e.eligibleStaff(ctx, in.BusinessID, in.StaffID, svc)
		if err != nil {
			return nil, classify(err)
		}
		candidates = []domain.Staff{*st}
	} else {
		all, err := e.directory.ListStaff(ctx, in.BusinessID)
		if err != nil {
			return nil, classify(err)
		}
		for i := range all {
			st := &all[i]
			if !st.Active || !svc.IsEligible(st.ID) {
				continue
			}
			if err := e.checkStaffCalendar(st); err != nil {
				return nil, err
			}
			candidates = append(candidates, *st)
		}
	}

	// --------------------------------------------------
	// Bookings per staff
	// --------------------------------------------------
	schedules := make([]domain.StaffSchedule, 0, len(candidates))
	for i := range candidates {
		st := &candidates[i]
		existing, err := e.store.ListForStaffDay(ctx, in.BusinessID, st.ID, in.Date)
		if err != nil {
			return nil, classify(err)
		}
		schedules = append(schedules, domain.StaffSchedule{
			StaffID:  st.ID,
			Calendar: &st.Calendar,
			Bookings: domain.BookingsOf(existing),
		})
	}

	return domain.GenerateSlots(domain.SlotQuery{
		Business:   &biz.Calendar,
		Policy:     biz.Policy,
		Service:    *svc,
		Staff:      schedules,
		Date:       in.Date,
		Now:        e.now(),
		Location:   biz.Location,
		MergeStaff: in.StaffID == "",
	}), nil
}

// ======================================================
// DIRECTORY HELPERS
// ======================================================

// Missing and inactive records are both reported as not found.

func (e *Engine) activeBusiness(ctx context.Context, businessID string) (*domain.Business, error) {
	biz, err := e.directory.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !biz.Active {
		return nil, httperr.NotFoundErr("business_not_found")
	}
	if err := biz.Policy.Validate(); err != nil {
		return nil, httperr.InvalidErr("invalid_policy")
	}
	if err := biz.Calendar.Validate(); err != nil {
		e.logger.Warn("rejecting business calendar", "business_id", biz.ID, "err", err)
		return nil, httperr.InvalidErr("invalid_calendar")
	}
	biz.Location = timezone.Resolve(biz.Location)
	return biz, nil
}

func (e *Engine) activeService(ctx context.Context, businessID, serviceID string) (*domain.ServiceSpec, error) {
	svc, err := e.directory.GetService(ctx, businessID, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, httperr.NotFoundErr("service_not_found")
	}
	if err := svc.Validate(); err != nil {
		return nil, httperr.InvalidErr("invalid_service")
	}
	return svc, nil
}

func (e *Engine) eligibleStaff(
	ctx context.Context,
	businessID string,
	staffID string,
	svc *domain.ServiceSpec,
) (*domain.Staff, error) {
	st, err := e.directory.GetStaff(ctx, businessID, staffID)
	if err != nil {
		return nil, err
	}
	if !st.Active {
		return nil, httperr.NotFoundErr("staff_not_found")
	}
	if !svc.IsEligible(st.ID) {
		return nil, httperr.InvalidErr("staff_not_eligible")
	}
	if err := e.checkStaffCalendar(st); err != nil {
		return nil, err
	}
	return st, nil
}

func (e *Engine) checkStaffCalendar(st *domain.Staff) error {
	if st.Calendar.Override == nil {
		return nil
	}
	if err := st.Calendar.Override.Validate(); err != nil {
		e.logger.Warn("rejecting staff calendar", "staff_id", st.ID, "err", err)
		return httperr.InvalidErr("invalid_calendar")
	}
	return nil
}
