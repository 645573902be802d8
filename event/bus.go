package event

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/backrooms/logger"
)

// Sink receives emitted events
// World and collision feedback depend only on this interface
type Sink interface {
	Emit(ev Event)
}

// Handler consumes one event, a returned error is logged and does not stop delivery
type Handler func(ev Event) error

// SubscriptionID identifies a handler for Unsubscribe
type SubscriptionID uint64

// Mode selects delivery timing
type Mode int

const (
	// Immediate dispatches inside Emit
	Immediate Mode = iota
	// Deferred queues in Emit and dispatches on Flush
	Deferred
)

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus is a synchronous publish/subscribe Sink
// Not safe for concurrent Subscribe/Emit, the frame loop owns it
type Bus struct {
	mode     Mode
	handlers map[EventType][]subscription
	all      []subscription
	nextID   SubscriptionID
	pending  *pendingRing
	batch    []Event
	flushing bool
	frame    int64
	failures uint64
}

func NewBus(mode Mode) *Bus {
	return &Bus{
		mode:     mode,
		handlers: make(map[EventType][]subscription),
		pending:  &pendingRing{},
	}
}

func (b *Bus) Mode() Mode { return b.mode }

// SetMode switches delivery timing, pending events stay queued until Flush
func (b *Bus) SetMode(m Mode) { b.mode = m }

// SetFrame stamps subsequently emitted events
func (b *Bus) SetFrame(frame int64) { b.frame = frame }

// Subscribe registers h for one event type
func (b *Bus) Subscribe(t EventType, h Handler) SubscriptionID {
	b.nextID++
	b.handlers[t] = append(b.handlers[t], subscription{id: b.nextID, handler: h})
	return b.nextID
}

// SubscribeAll registers h for every event type
func (b *Bus) SubscribeAll(h Handler) SubscriptionID {
	b.nextID++
	b.all = append(b.all, subscription{id: b.nextID, handler: h})
	return b.nextID
}

// Unsubscribe removes a handler, unknown ids are ignored
func (b *Bus) Unsubscribe(id SubscriptionID) {
	for t, subs := range b.handlers {
		b.handlers[t] = removeSub(subs, id)
	}
	b.all = removeSub(b.all, id)
}

func removeSub(subs []subscription, id SubscriptionID) []subscription {
	for i, s := range subs {
		if s.id == id {
			out := make([]subscription, 0, len(subs)-1)
			out = append(out, subs[:i]...)
			return append(out, subs[i+1:]...)
		}
	}
	return subs
}

// Emit delivers now in Immediate mode or queues in Deferred mode
func (b *Bus) Emit(ev Event) {
	if ev.Frame == 0 {
		ev.Frame = b.frame
	}
	if b.mode == Deferred {
		b.pending.push(ev)
		return
	}
	b.dispatch(ev)
}

// Flush dispatches queued events in emission order
// Events emitted by handlers during Flush are delivered in the same Flush
// Re-entrant calls from handlers are no-ops
func (b *Bus) Flush() int {
	if b.flushing {
		return 0
	}
	b.flushing = true
	defer func() { b.flushing = false }()

	n := 0
	for {
		b.batch = b.pending.drainInto(b.batch[:0])
		if len(b.batch) == 0 {
			return n
		}
		for _, ev := range b.batch {
			b.dispatch(ev)
			n++
		}
		clear(b.batch)
	}
}

// Pending returns the number of queued events
func (b *Bus) Pending() int { return b.pending.len() }

// Dropped returns the count of deferred events evicted before a Flush
func (b *Bus) Dropped() uint64 { return b.pending.dropped() }

// Failures returns the count of handler errors and panics
func (b *Bus) Failures() uint64 { return b.failures }

func (b *Bus) dispatch(ev Event) {
	// Snapshot so handlers may subscribe or unsubscribe while running
	typed := b.handlers[ev.Type]
	subs := make([]subscription, 0, len(typed)+len(b.all))
	subs = append(subs, typed...)
	subs = append(subs, b.all...)

	for _, s := range subs {
		if err := b.invoke(s, ev); err != nil {
			b.failures++
			logger.Log.WithFields(logrus.Fields{
				"event":        ev.Type.String(),
				"subscription": s.id,
			}).WithError(err).Warn("event handler failed")
		}
	}
}

func (b *Bus) invoke(s subscription, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return s.handler(ev)
}

// Discard is a Sink that drops every event
type Discard struct{}

func (Discard) Emit(Event) {}

// Recorder is a Sink keeping every event in order
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(ev Event) { r.Events = append(r.Events, ev) }

// Count returns how many recorded events have type t
func (r *Recorder) Count(t EventType) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() { r.Events = r.Events[:0] }
