package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	ActionAppointmentCreated       = "appointment_created"
	ActionAppointmentConflict      = "appointment_conflict"
	ActionAppointmentStatusChanged = "appointment_status_changed"
	ActionAppointmentRescheduled   = "appointment_rescheduled"
	ActionAppointmentUpdated       = "appointment_updated"
	ActionProfessionalUpdated      = "professional_updated"
)

// Event is an operational fact about the scheduler. Days lists the salon
// calendar dates (YYYY-MM-DD) whose availability the event may have changed.
type Event struct {
	Action         string
	Entity         string
	EntityID       *uint
	ProfessionalID uint
	Days           []string
	Actor          string
	Metadata       any
}

// Sink consumes dispatched events.
type Sink interface {
	Handle(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	log   *slog.Logger
	sinks []Sink
	queue chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(log *slog.Logger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		log:   log,
		sinks: sinks,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, sink := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := sink.Handle(ctx, ev); err != nil {
				d.log.Warn("audit sink failed",
					slog.String("action", ev.Action),
					slog.Any("error", err),
				)
			}
			cancel()
		}
	}
}

// Dispatch never blocks the caller. Events are dropped when the queue is
// full or the dispatcher is closed. A nil dispatcher discards everything.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", slog.String("action", ev.Action))
	}
}

// Close stops intake and waits until queued events reach every sink.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
