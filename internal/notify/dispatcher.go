package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/observability/metrics"
)

var (
	ErrQueueFull = errors.New("notify: queue full")
	ErrClosed    = errors.New("notify: dispatcher closed")
)

// Dispatcher queues events and fans them out to every sink from a single
// worker. A full queue drops the event; the scheduling commit never waits on
// delivery.
type Dispatcher struct {
	sinks       []Sink
	logger      *slog.Logger
	metrics     *metrics.NotifyMetrics
	sendTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan Event
	done   chan struct{}
}

type DispatcherConfig struct {
	QueueSize   int
	SendTimeout time.Duration
}

func NewDispatcher(
	cfg DispatcherConfig,
	logger *slog.Logger,
	m *metrics.NotifyMetrics,
	sinks ...Sink,
) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		sinks:       sinks,
		logger:      logger,
		metrics:     m,
		sendTimeout: cfg.SendTimeout,
		queue:       make(chan Event, cfg.QueueSize),
		done:        make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
			err := s.Send(ctx, ev)
			cancel()

			d.metrics.ObserveDelivery(s.Name(), err)
			if err != nil {
				d.logger.Error("notify delivery failed",
					"sink", s.Name(),
					"event_type", ev.Type,
					"appointment_id", ev.AppointmentID,
					"err", err,
				)
			}
		}
	}
}

func (d *Dispatcher) Notify(_ context.Context, ev Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrClosed
	}

	select {
	case d.queue <- ev:
		return nil
	default:
		d.metrics.ObserveDropped()
		d.logger.Warn("notify queue full, dropping event",
			"event_type", ev.Type,
			"appointment_id", ev.AppointmentID,
		)
		return ErrQueueFull
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}

var _ Notifier = (*Dispatcher)(nil)
