package event

import (
	"sync/atomic"

	"github.com/lixenwraith/backrooms/parameter"
)

// pendingSlot holds one deferred event, ready flips after the write completes
type pendingSlot struct {
	ev    Event
	ready atomic.Bool
}

// pendingRing holds world events emitted between flushes
// Emitters may run on any goroutine, the frame loop is the only reader
// A full ring evicts its oldest event and counts it as lost
type pendingRing struct {
	slots [parameter.DeferredEventCapacity]pendingSlot
	read  atomic.Uint64
	write atomic.Uint64
	lost  atomic.Uint64
}

// push claims the next write cursor and publishes ev into its slot
func (r *pendingRing) push(ev Event) {
	var at uint64
	for {
		at = r.write.Load()
		if r.write.CompareAndSwap(at, at+1) {
			break
		}
	}

	s := &r.slots[at&parameter.DeferredEventMask]
	s.ev = ev
	s.ready.Store(true)

	// Evict when the writer laps the reader
	if rd := r.read.Load(); at+1-rd > parameter.DeferredEventCapacity {
		if r.read.CompareAndSwap(rd, at+1-parameter.DeferredEventCapacity) {
			r.lost.Add(1)
		}
	}
}

// drainInto appends every published event in emission order to dst
// Stops at the first slot whose writer has not finished
func (r *pendingRing) drainInto(dst []Event) []Event {
	from, to := r.read.Load(), r.write.Load()
	if to-from > parameter.DeferredEventCapacity {
		from = to - parameter.DeferredEventCapacity
	}

	at := from
	for ; at < to; at++ {
		s := &r.slots[at&parameter.DeferredEventMask]
		if !s.ready.Load() {
			break
		}
		dst = append(dst, s.ev)
		s.ev = Event{}
		s.ready.Store(false)
	}
	r.read.Store(at)
	return dst
}

func (r *pendingRing) len() int {
	n := r.write.Load() - r.read.Load()
	return int(min(n, parameter.DeferredEventCapacity))
}

func (r *pendingRing) dropped() uint64 { return r.lost.Load() }
