package platform

import (
	"sort"
	"time"
)

// ManualScheduler is a deterministic, single-threaded Scheduler. Time only
// moves when Advance is called; due callbacks run in fire-time order, with
// insertion order breaking ties. Native hosts and tests use it to pump the
// same cooperative timer model the browser provides.
type ManualScheduler struct {
	now    float64 // ms
	nextID int
	timers []*manualTimer
	frames []*manualFrame
}

type manualTimer struct {
	id   TimerID
	at   float64
	seq  int
	fn   func()
	dead bool
}

type manualFrame struct {
	id   FrameID
	fn   func(now float64)
	dead bool
}

// NewManualScheduler creates a scheduler starting at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{nextID: 1}
}

// Now returns the current virtual time in milliseconds.
func (s *ManualScheduler) Now() float64 { return s.now }

// SetTimeout schedules fn to run after delay of virtual time.
func (s *ManualScheduler) SetTimeout(fn func(), delay time.Duration) TimerID {
	id := TimerID(s.nextID)
	s.nextID++
	s.timers = append(s.timers, &manualTimer{
		id:  id,
		at:  s.now + float64(delay)/float64(time.Millisecond),
		seq: s.nextID,
		fn:  fn,
	})
	return id
}

// ClearTimeout cancels a pending timeout. Unknown IDs are ignored.
func (s *ManualScheduler) ClearTimeout(id TimerID) {
	for _, t := range s.timers {
		if t.id == id {
			t.dead = true
			return
		}
	}
}

// RequestFrame registers fn to run on the next Frame call.
func (s *ManualScheduler) RequestFrame(fn func(now float64)) FrameID {
	id := FrameID(s.nextID)
	s.nextID++
	s.frames = append(s.frames, &manualFrame{id: id, fn: fn})
	return id
}

// CancelFrame cancels a pending frame request.
func (s *ManualScheduler) CancelFrame(id FrameID) {
	for _, f := range s.frames {
		if f.id == id {
			f.dead = true
			return
		}
	}
}

// Advance moves virtual time forward and runs every timeout that comes due,
// in order. Callbacks may schedule further timeouts; those run too if they
// fall within the advanced window.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + float64(d)/float64(time.Millisecond)
	for {
		next := s.dueBefore(target)
		if next == nil {
			break
		}
		if next.at > s.now {
			s.now = next.at
		}
		next.dead = true
		next.fn()
	}
	s.now = target
	s.compactTimers()
}

// Frame advances time to now and runs all pending frame callbacks once, the
// way a single requestAnimationFrame tick would.
func (s *ManualScheduler) Frame(step time.Duration) {
	s.now += float64(step) / float64(time.Millisecond)
	pending := s.frames
	s.frames = nil
	for _, f := range pending {
		if !f.dead {
			f.fn(s.now)
		}
	}
}

// PendingTimers reports how many live timeouts are queued.
func (s *ManualScheduler) PendingTimers() int {
	n := 0
	for _, t := range s.timers {
		if !t.dead {
			n++
		}
	}
	return n
}

// PendingFrames reports how many live frame requests are queued.
func (s *ManualScheduler) PendingFrames() int {
	n := 0
	for _, f := range s.frames {
		if !f.dead {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) dueBefore(target float64) *manualTimer {
	live := s.timers[:0:0]
	for _, t := range s.timers {
		if !t.dead && t.at <= target {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.SliceStable(live, func(i, j int) bool {
		if live[i].at != live[j].at {
			return live[i].at < live[j].at
		}
		return live[i].seq < live[j].seq
	})
	return live[0]
}

func (s *ManualScheduler) compactTimers() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.dead {
			live = append(live, t)
		}
	}
	s.timers = live
}
