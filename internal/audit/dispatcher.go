package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Event struct {
	BusinessID string
	ActorID    string
	Action     string
	Entity     string
	EntityID   string
	Metadata   any
}

// Dispatcher writes audit entries off the request path. A full queue drops
// the entry; auditing never fails an API call.
type Dispatcher struct {
	writer Writer
	logger *slog.Logger
	queue  chan Event
	done   chan struct{}
	once   sync.Once
}

func NewDispatcher(writer Writer, logger *slog.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		writer: writer,
		logger: logger,
		queue:  make(chan Event, size),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.writer.Write(ctx, ev); err != nil {
			d.logger.Error("audit write failed", "action", ev.Action, "entity_id", ev.EntityID, "err", err)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close drains the queue. Dispatch must not be called afterwards.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.queue) })
	<-d.done
}
