package appointment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/notify"
	"github.com/BruksfildServices01/appointment-scheduler/internal/observability/metrics"
)

var tracer = otel.Tracer("scheduler/engine")

const DefaultStoreTimeout = 3 * time.Second

// ======================================================
// ENGINE
// ======================================================

// Engine is the scheduling orchestrator. It is safe for concurrent use;
// all shared state lives in the store.
type Engine struct {
	directory domain.Directory
	store     domain.Store
	locker    lock.Locker
	notifier  notify.Notifier
	audit     *audit.Dispatcher
	metrics   *metrics.EngineMetrics
	logger    *slog.Logger

	now          func() time.Time
	newID        func() string
	storeTimeout time.Duration
}

type Deps struct {
	Directory domain.Directory
	Store     domain.Store
	Locker    lock.Locker
	Notifier  notify.Notifier
	Audit     *audit.Dispatcher
	Metrics   *metrics.EngineMetrics
	Logger    *slog.Logger

	// Now and NewID default to the wall clock and random UUIDs.
	Now          func() time.Time
	NewID        func() string
	StoreTimeout time.Duration
}

func NewEngine(d Deps) *Engine {
	e := &Engine{
		directory:    d.Directory,
		store:        d.Store,
		locker:       d.Locker,
		notifier:     d.Notifier,
		audit:        d.Audit,
		metrics:      d.Metrics,
		logger:       d.Logger,
		now:          d.Now,
		newID:        d.NewID,
		storeTimeout: d.StoreTimeout,
	}
	if e.locker == nil {
		e.locker = lock.NewLocal()
	}
	if e.notifier == nil {
		e.notifier = notify.Nop{}
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	if e.storeTimeout <= 0 {
		e.storeTimeout = DefaultStoreTimeout
	}
	return e
}

// bounded applies the store timeout to one engine call.
func (e *Engine) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.storeTimeout)
}

// classify keeps taxonomy errors and turns an expired deadline into a
// timeout. Anything else is an infrastructure failure and passes through.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var be httperr.BusinessError
	if errors.As(err, &be) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return httperr.TimeoutErr("store_timeout")
	}
	return err
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if k := httperr.KindOf(err); k != "" {
		return string(k)
	}
	return "error"
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome(err))
	}
	span.End()
}

// ======================================================
// SIDE EFFECTS (after commit)
// ======================================================

// emit sends one event per affected party. Failures are logged only; the
// transition is already durable.
func (e *Engine) emit(ctx context.Context, typ notify.EventType, ap *models.Appointment, extraStaff ...string) {
	now := e.now()
	recipients := []struct{ id, role string }{
		{ap.CustomerID, string(domain.RoleCustomer)},
		{ap.StaffID, string(domain.RoleStaff)},
	}
	for _, s := range extraStaff {
		if s != "" && s != ap.StaffID {
			recipients = append(recipients, struct{ id, role string }{s, string(domain.RoleStaff)})
		}
	}

	for _, r := range recipients {
		if r.id == "" {
			continue
		}
		ev := notify.Event{
			ID:            e.newID(),
			Type:          typ,
			AppointmentID: ap.ID,
			RecipientID:   r.id,
			RecipientRole: r.role,
			BusinessID:    ap.BusinessID,
			OccurredAt:    now,
		}
		if err := e.notifier.Notify(ctx, ev); err != nil {
			e.logger.Warn("notify failed after commit",
				"event_type", typ,
				"appointment_id", ap.ID,
				"recipient_id", r.id,
				"err", err,
			)
		}
	}
}

func (e *Engine) record(actor domain.Actor, action string, ap *models.Appointment, metadata any) {
	e.audit.Dispatch(audit.Event{
		BusinessID: ap.BusinessID,
		ActorID:    actor.ID,
		Action:     action,
		Entity:     "appointment",
		EntityID:   ap.ID,
		Metadata:   metadata,
	})
}

func spanAttrs(t Transition) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("scheduler.transition", string(t.Kind)),
		attribute.String("scheduler.appointment_id", t.AppointmentID),
		attribute.String("scheduler.business_id", t.BusinessID),
		attribute.String("scheduler.actor_role", string(t.Actor.Role)),
	}
}
