package strobe

import "testing"

func TestLoop_DeferOutsideWindowRunsImmediately(t *testing.T) {
	loop := NewLoop()
	ran := false

	loop.Defer(func() { ran = true })

	if !ran {
		t.Error("expected immediate execution outside a window")
	}
}

func TestLoop_DeferredWorkDrainsAtWindowExit(t *testing.T) {
	loop := NewLoop()
	var order []string

	loop.Run(func() {
		loop.Defer(func() { order = append(order, "deferred") })
		order = append(order, "window")
	})

	if len(order) != 2 || order[0] != "window" || order[1] != "deferred" {
		t.Errorf("expected [window deferred], got %v", order)
	}
}

func TestLoop_NestedWindowsDrainOnce(t *testing.T) {
	loop := NewLoop()
	var drained int

	loop.Run(func() {
		loop.Defer(func() { drained++ })
		loop.Run(func() {
			loop.Defer(func() { drained++ })
		})
		// Inner window exited, but the outermost is still open.
		if drained != 0 {
			t.Errorf("expected no drain before outermost exit, got %d", drained)
		}
	})

	if drained != 2 {
		t.Errorf("expected both deferrals drained, got %d", drained)
	}
}

func TestLoop_DrainsInFIFOOrder(t *testing.T) {
	loop := NewLoop()
	var order []int

	loop.Run(func() {
		for i := 0; i < 4; i++ {
			loop.Defer(func() { order = append(order, i) })
		}
	})

	for i, v := range order {
		if v != i {
			t.Fatalf("expected FIFO order, got %v", order)
		}
	}
	if len(order) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(order))
	}
}

func TestLoop_DeferDuringDrainRunsInSamePass(t *testing.T) {
	loop := NewLoop()
	var order []string

	loop.Run(func() {
		loop.Defer(func() {
			order = append(order, "first")
			loop.Defer(func() { order = append(order, "chained") })
		})
	})

	if len(order) != 2 || order[1] != "chained" {
		t.Errorf("expected chained work to run in the drain pass, got %v", order)
	}
}
