package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	ActionAppointmentCreated   = "appointment_created"
	ActionAppointmentConflict  = "appointment_conflict"
	ActionAppointmentCancelled = "appointment_cancelled"
	ActionAppointmentsExpired  = "appointments_expired"
	ActionBarberCreated        = "barber_created"
	ActionBarberDeleted        = "barber_deleted"
	ActionSlotsReplaced        = "slots_replaced"
	ActionServiceCreated       = "service_created"
	ActionServiceUpdated       = "service_updated"
	ActionServiceDeleted       = "service_deleted"
	ActionShopCreated          = "shop_created"
	ActionShopDeleted          = "shop_deleted"
	ActionOwnerCreated         = "owner_created"
	ActionOwnerRoleChanged     = "owner_role_changed"
	ActionUserConverted        = "user_converted_to_barber"
)

type Event struct {
	ShopID   uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Sink stores one event.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

// Dispatcher writes audit events off the request path. A full queue drops
// events; auditing never fails an operation.
type Dispatcher struct {
	sink   Sink
	logger zerolog.Logger
	queue  chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sink Sink, logger zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:   sink,
		logger: logger.With().Str("component", "audit").Logger(),
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sink.Log(ctx, ev); err != nil {
			d.logger.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
		cancel()
	}
}

// Dispatch is safe to call on a nil Dispatcher and after Close.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn().Str("action", ev.Action).Msg("audit dispatcher closed, dropping event")
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.logger.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for queued ones to be written
// or for ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
