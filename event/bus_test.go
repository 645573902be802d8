package event

import (
	"errors"
	"testing"

	"github.com/lixenwraith/backrooms/parameter"
)

// TestImmediateDelivery verifies handlers run inside Emit
func TestImmediateDelivery(t *testing.T) {
	b := NewBus(Immediate)
	got := 0
	b.Subscribe(EventWallCracked, func(ev Event) error {
		got++
		return nil
	})

	b.Emit(Event{Type: EventWallCracked})
	b.Emit(Event{Type: EventWallHit})

	if got != 1 {
		t.Errorf("Expected 1 delivery, got %d", got)
	}
}

// TestDeferredFlushOrder verifies queued events flush in emission order
func TestDeferredFlushOrder(t *testing.T) {
	b := NewBus(Deferred)
	var order []EventType
	b.SubscribeAll(func(ev Event) error {
		order = append(order, ev.Type)
		return nil
	})

	seq := []EventType{EventWallHit, EventWallCracked, EventWallFractured, EventWallDestroyed, EventPillarDestroyed}
	for _, et := range seq {
		b.Emit(Event{Type: et})
	}

	if len(order) != 0 {
		t.Fatalf("Expected no delivery before Flush, got %d", len(order))
	}
	if b.Pending() != len(seq) {
		t.Errorf("Expected %d pending, got %d", len(seq), b.Pending())
	}

	if n := b.Flush(); n != len(seq) {
		t.Errorf("Expected Flush to deliver %d, got %d", len(seq), n)
	}
	for i, et := range seq {
		if order[i] != et {
			t.Errorf("Position %d: expected %s, got %s", i, et, order[i])
		}
	}
	if b.Pending() != 0 {
		t.Errorf("Expected empty queue after Flush, got %d", b.Pending())
	}
}

// TestFlushReentrant verifies nested Flush is a no-op and nested emits still drain
func TestFlushReentrant(t *testing.T) {
	b := NewBus(Deferred)
	var order []EventType
	nested := -1
	b.Subscribe(EventWallDestroyed, func(ev Event) error {
		b.Emit(Event{Type: EventPillarDestroyed})
		nested = b.Flush()
		return nil
	})
	b.SubscribeAll(func(ev Event) error {
		order = append(order, ev.Type)
		return nil
	})

	b.Emit(Event{Type: EventWallDestroyed})
	b.Flush()

	if nested != 0 {
		t.Errorf("Expected nested Flush to return 0, got %d", nested)
	}
	if len(order) != 2 || order[0] != EventWallDestroyed || order[1] != EventPillarDestroyed {
		t.Errorf("Unexpected delivery order: %v", order)
	}
}

// TestHandlerIsolation verifies failing handlers do not block later subscribers
func TestHandlerIsolation(t *testing.T) {
	b := NewBus(Immediate)
	delivered := false
	b.Subscribe(EventWallHit, func(ev Event) error { panic("boom") })
	b.Subscribe(EventWallHit, func(ev Event) error { return errors.New("failed") })
	b.Subscribe(EventWallHit, func(ev Event) error {
		delivered = true
		return nil
	})

	b.Emit(Event{Type: EventWallHit})

	if !delivered {
		t.Error("Expected third handler to run")
	}
	if b.Failures() != 2 {
		t.Errorf("Expected 2 failures, got %d", b.Failures())
	}
}

// TestUnsubscribe verifies removed handlers stop receiving
func TestUnsubscribe(t *testing.T) {
	b := NewBus(Immediate)
	count := 0
	id := b.Subscribe(EventFlicker, func(ev Event) error {
		count++
		return nil
	})
	b.Emit(Event{Type: EventFlicker})
	b.Unsubscribe(id)
	b.Emit(Event{Type: EventFlicker})
	b.Unsubscribe(id)

	if count != 1 {
		t.Errorf("Expected 1 delivery, got %d", count)
	}
}

// TestDeferredOverflow verifies a full ring evicts the oldest events
func TestDeferredOverflow(t *testing.T) {
	b := NewBus(Deferred)
	capacity := parameter.DeferredEventCapacity
	total := capacity + 10
	for i := 0; i < total; i++ {
		b.Emit(Event{Type: EventWallHit, Frame: int64(i + 1)})
	}
	if b.Pending() != capacity {
		t.Errorf("Expected %d pending, got %d", capacity, b.Pending())
	}
	if b.Dropped() != 10 {
		t.Errorf("Expected 10 dropped, got %d", b.Dropped())
	}

	var frames []int64
	b.Subscribe(EventWallHit, func(ev Event) error {
		frames = append(frames, ev.Frame)
		return nil
	})
	if n := b.Flush(); n != capacity {
		t.Fatalf("Expected %d delivered, got %d", capacity, n)
	}
	if frames[0] != 11 || frames[len(frames)-1] != int64(total) {
		t.Errorf("Expected frames 11..%d, got %d..%d", total, frames[0], frames[len(frames)-1])
	}
}

// TestDrainStopsAtUnpublished verifies the reader never passes a slot still being written
func TestDrainStopsAtUnpublished(t *testing.T) {
	var r pendingRing
	r.push(Event{Type: EventWallHit})
	// Cursor claimed without publishing
	r.write.Add(1)
	r.push(Event{Type: EventFlicker})

	got := r.drainInto(nil)
	if len(got) != 1 || got[0].Type != EventWallHit {
		t.Fatalf("Expected only the first event, got %+v", got)
	}
	if r.len() != 2 {
		t.Errorf("Expected 2 events still pending, got %d", r.len())
	}
}

// TestEventNames verifies registry round trip
func TestEventNames(t *testing.T) {
	for et := EventWallHit; et <= EventFlicker; et++ {
		back, ok := GetEventType(et.String())
		if !ok || back != et {
			t.Errorf("Round trip failed for %s", et)
		}
	}
	if !EventWallDestroyed.Structural() || EventCollision.Structural() {
		t.Error("Structural classification wrong")
	}
}
