package app

import (
	"sync"
	"testing"

	gioapp "gioui.org/app"
)

func TestPostDrainRunsInOrder(t *testing.T) {
	o := &Orchestrator{window: new(gioapp.Window)}

	var got []int
	for i := 0; i < 3; i++ {
		i := i
		o.post(func() { got = append(got, i) })
	}
	o.drainPending()

	if len(got) != 3 {
		t.Fatalf("expected 3 closures to run, got %v", got)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("expected arrival order, got %v", got)
		}
	}

	// A second drain has nothing left.
	o.drainPending()
	if len(got) != 3 {
		t.Errorf("expected drained queue to stay empty, got %v", got)
	}
}

func TestPostIsSafeAcrossGoroutines(t *testing.T) {
	o := &Orchestrator{window: new(gioapp.Window)}

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.post(func() {})
		}()
	}
	wg.Wait()

	o.pendingMu.Lock()
	queued := len(o.pending)
	o.pendingMu.Unlock()
	if queued != n {
		t.Errorf("expected %d queued closures, got %d", n, queued)
	}
}
