// SPDX-License-Identifier: EPL-2.0

package loop

import (
	"sync"
	"testing"
)

func TestDiagnostics_DropsWhenFull(t *testing.T) {
	t.Parallel()

	d := NewDiagnostics(2)
	for i := range 5 {
		d.Report(Event{Kind: Clipped, Count: i})
	}

	var got []int
	if dropped := d.Drain(func(e Event) { got = append(got, e.Count) }); dropped != 3 {
		t.Errorf("Drain() dropped = %d, want 3", dropped)
	}
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("drained %v, want [0 1]", got)
	}

	if dropped := d.Drain(func(Event) { t.Error("unexpected event") }); dropped != 0 {
		t.Errorf("second Drain() dropped = %d, want 0", dropped)
	}
}

func TestDiagnostics_NilReport(t *testing.T) {
	t.Parallel()

	var d *Diagnostics
	d.Report(Event{Kind: Unaligned, Count: 1})
}

func TestDiagnostics_Concurrent(t *testing.T) {
	t.Parallel()

	d := NewDiagnostics(16)

	var wg sync.WaitGroup
	for range 4 {
		wg.Go(func() {
			for range 100 {
				d.Report(Event{Kind: Clipped, Count: 1})
			}
		})
	}
	wg.Wait()

	var seen uint64
	dropped := d.Drain(func(Event) { seen++ })
	if seen+dropped != 400 {
		t.Errorf("seen %d + dropped %d, want 400", seen, dropped)
	}
}

func TestEventKind_String(t *testing.T) {
	t.Parallel()

	for kind, want := range map[EventKind]string{Clipped: "clipped", Unaligned: "unaligned", 0: "unknown"} {
		if got := kind.String(); got != want {
			t.Errorf("EventKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
