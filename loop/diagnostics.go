// SPDX-License-Identifier: EPL-2.0

package loop

import "sync/atomic"

// EventKind classifies a diagnostic raised on the fill path.
type EventKind uint8

const (
	// Clipped counts samples clamped to [-1, 1] during encoding.
	Clipped EventKind = iota + 1
	// Unaligned counts bytes requested that did not make up a whole frame.
	Unaligned
)

func (k EventKind) String() string {
	switch k {
	case Clipped:
		return "clipped"
	case Unaligned:
		return "unaligned"
	}

	return "unknown"
}

// Event is one diagnostic from a single device pull.
type Event struct {
	Kind  EventKind
	Count int
}

// Diagnostics carries events from the real-time path to a reader that may
// log. Report never blocks; events beyond the capacity are dropped and
// counted.
type Diagnostics struct {
	events  chan Event
	dropped atomic.Uint64
}

func NewDiagnostics(capacity int) *Diagnostics {
	return &Diagnostics{
		events: make(chan Event, max(capacity, 1)),
	}
}

// Report queues e without blocking.
func (d *Diagnostics) Report(e Event) {
	if d == nil {
		return
	}

	select {
	case d.events <- e:
	default:
		d.dropped.Add(1)
	}
}

// Drain hands every queued event to fn and returns how many events were
// dropped since the previous Drain.
func (d *Diagnostics) Drain(fn func(Event)) uint64 {
	for {
		select {
		case e := <-d.events:
			fn(e)
		default:
			return d.dropped.Swap(0)
		}
	}
}
