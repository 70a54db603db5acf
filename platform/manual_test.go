package platform

import (
	"testing"
	"time"
)

// TestManualScheduler_FireOrder verifies due timers run in fire-time order
// with insertion order breaking ties.
func TestManualScheduler_FireOrder(t *testing.T) {
	s := NewManualScheduler()
	var order []string

	s.SetTimeout(func() { order = append(order, "b") }, 20*time.Millisecond)
	s.SetTimeout(func() { order = append(order, "a") }, 10*time.Millisecond)
	s.SetTimeout(func() { order = append(order, "c") }, 20*time.Millisecond)

	s.Advance(50 * time.Millisecond)

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("fired %d callbacks, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("fire order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

// TestManualScheduler_NestedTimers verifies a callback's own timeouts run
// when they fall inside the advanced window.
func TestManualScheduler_NestedTimers(t *testing.T) {
	s := NewManualScheduler()
	fired := 0

	var chain func()
	chain = func() {
		fired++
		if fired < 3 {
			s.SetTimeout(chain, 10*time.Millisecond)
		}
	}
	s.SetTimeout(chain, 10*time.Millisecond)

	s.Advance(35 * time.Millisecond)
	if fired != 3 {
		t.Errorf("fired = %d, want 3", fired)
	}
}

// TestManualScheduler_ClearTimeout verifies a cancelled timer never fires.
func TestManualScheduler_ClearTimeout(t *testing.T) {
	s := NewManualScheduler()
	fired := false
	id := s.SetTimeout(func() { fired = true }, 10*time.Millisecond)
	s.ClearTimeout(id)
	s.Advance(time.Second)
	if fired {
		t.Error("cancelled timer fired")
	}
	if s.PendingTimers() != 0 {
		t.Errorf("PendingTimers = %d, want 0", s.PendingTimers())
	}
}

// TestManualScheduler_ClearUnknown verifies clearing an unknown or zero ID
// is a no-op.
func TestManualScheduler_ClearUnknown(t *testing.T) {
	s := NewManualScheduler()
	s.ClearTimeout(0)
	s.ClearTimeout(42)
	s.CancelFrame(0)
}

// TestManualScheduler_Frames verifies frame callbacks run once per pump and
// re-registration works like requestAnimationFrame chains.
func TestManualScheduler_Frames(t *testing.T) {
	s := NewManualScheduler()
	frames := 0

	var loop func(now float64)
	loop = func(now float64) {
		frames++
		if frames < 3 {
			s.RequestFrame(loop)
		}
	}
	s.RequestFrame(loop)

	s.Frame(16 * time.Millisecond)
	s.Frame(16 * time.Millisecond)
	s.Frame(16 * time.Millisecond)
	s.Frame(16 * time.Millisecond)

	if frames != 3 {
		t.Errorf("frames = %d, want 3", frames)
	}
}

// TestManualScheduler_CancelFrame verifies a cancelled frame request never
// runs.
func TestManualScheduler_CancelFrame(t *testing.T) {
	s := NewManualScheduler()
	fired := false
	id := s.RequestFrame(func(now float64) { fired = true })
	s.CancelFrame(id)
	s.Frame(16 * time.Millisecond)
	if fired {
		t.Error("cancelled frame fired")
	}
}

// TestManualScheduler_TimeAdvances verifies Now reflects Advance and Frame.
func TestManualScheduler_TimeAdvances(t *testing.T) {
	s := NewManualScheduler()
	s.Advance(100 * time.Millisecond)
	if s.Now() != 100 {
		t.Errorf("Now = %v, want 100", s.Now())
	}
	s.Frame(16 * time.Millisecond)
	if s.Now() != 116 {
		t.Errorf("Now = %v, want 116", s.Now())
	}
}
