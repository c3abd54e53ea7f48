package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// maxChain bounds the reschedule walk in case of corrupted pointers.
const maxChain = 1000

// canView: the customer, any staff member of the business, or its admin.
func canView(a domain.Actor, ap *models.Appointment) bool {
	if a.IsCustomerOf(ap) {
		return true
	}
	return (a.Role == domain.RoleStaff || a.Role == domain.RoleAdmin) && a.BusinessID == ap.BusinessID
}

func (e *Engine) GetAppointment(
	ctx context.Context,
	actor domain.Actor,
	id string,
) (*models.Appointment, error) {

	ctx, cancel := e.bounded(ctx)
	defer cancel()

	ap, err := e.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	if !canView(actor, ap) {
		return nil, httperr.UnauthorizedErr("cannot_view")
	}
	return ap, nil
}

// Chain returns the full reschedule history containing id, oldest first.
func (e *Engine) Chain(
	ctx context.Context,
	actor domain.Actor,
	id string,
) ([]models.Appointment, error) {

	ctx, cancel := e.bounded(ctx)
	defer cancel()

	ap, err := e.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	if !canView(actor, ap) {
		return nil, httperr.UnauthorizedErr("cannot_view")
	}

	seen := map[string]bool{ap.ID: true}

	// walk back to the root
	root := ap
	for root.RescheduledFrom != nil && len(seen) < maxChain {
		prev, err := e.store.GetAppointment(ctx, *root.RescheduledFrom)
		if err != nil {
			return nil, classify(err)
		}
		if seen[prev.ID] {
			break
		}
		seen[prev.ID] = true
		root = prev
	}

	chain := []models.Appointment{*root}
	visited := map[string]bool{root.ID: true}
	cur := root
	for cur.RescheduledTo != nil && len(chain) < maxChain {
		next, err := e.store.GetAppointment(ctx, *cur.RescheduledTo)
		if err != nil {
			return nil, classify(err)
		}
		if visited[next.ID] {
			break
		}
		visited[next.ID] = true
		chain = append(chain, *next)
		cur = next
	}
	return chain, nil
}
