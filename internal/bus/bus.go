// Package bus implements the synchronous publish/subscribe channel through
// which producers feed observations and panels receive them. Dispatch is
// ordered by emission order; each subscriber invocation is isolated so a
// panicking subscriber cannot prevent delivery to the others. There is no
// queuing or backpressure: an event that arrives too late for a panel's
// recency window is rejected at validation time, not buffered.
package bus

import (
	"sync"

	"go.uber.org/zap"

	"github.com/devhud/devhud/internal/models"
)

// Event names the channel an observation travels on. Each name has a fixed
// payload shape; subscribers drop payloads of the wrong type.
type Event string

const (
	EventMetric          Event = "metric"
	EventSnapshotRequest Event = "snapshot-request"
	EventShapeAdd        Event = "debug-add"
	EventShapeRemove     Event = "debug-remove"
	EventShapeClear      Event = "debug-clear"
	EventShapeToggle     Event = "debug-toggle"
	EventPacket          Event = "packet"
	EventPacketClear     Event = "packet-clear"
)

// MetricPayload is the payload for EventMetric.
type MetricPayload struct {
	Value    float64
	Category string
}

// ShapeAddPayload is the payload for EventShapeAdd.
type ShapeAddPayload struct {
	Shape models.DebugShape
}

// ShapeRemovePayload is the payload for EventShapeRemove.
type ShapeRemovePayload struct {
	ID string
}

// PacketPayload is the payload for EventPacket.
type PacketPayload struct {
	Packet models.NetworkPacket
}

// Handler receives an event payload. Handlers run synchronously on the
// emitter's goroutine.
type Handler func(payload interface{})

// Bus is a typed publish/subscribe dispatcher. A Bus handle is passed
// explicitly to every component at construction; there is no process-wide
// singleton, so isolated tests can run independent instances.
type Bus struct {
	mu     sync.RWMutex
	subs   map[Event][]Handler
	logger *zap.Logger
}

// New creates an empty bus with the given logger.
func New(logger *zap.Logger) *Bus {
	return &Bus{
		subs:   make(map[Event][]Handler),
		logger: logger,
	}
}

// Subscribe registers a handler for an event name. Handlers for the same
// event are invoked in subscription order.
func (b *Bus) Subscribe(ev Event, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[ev] = append(b.subs[ev], h)
}

// Emit dispatches the payload to every subscriber of ev, in order, on the
// calling goroutine. A subscriber that panics is recovered and logged; the
// remaining subscribers still receive the event.
func (b *Bus) Emit(ev Event, payload interface{}) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.subs[ev]))
	copy(handlers, b.subs[ev])
	b.mu.RUnlock()

	for _, h := range handlers {
		b.dispatch(ev, h, payload)
	}
}

// dispatch invokes one handler with panic isolation.
func (b *Bus) dispatch(ev Event, h Handler, payload interface{}) {
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Error("Subscriber panicked",
				zap.String("event", string(ev)),
				zap.Any("panic", rec))
		}
	}()
	h(payload)
}
