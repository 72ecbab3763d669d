// Package clock provides the cooperative timer abstraction used by the
// gesture engine. Production code schedules against the wall clock;
// tests drive a manual clock so timing windows resolve deterministically.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending delayed callback. Stop cancels the callback if it
// has not fired yet and reports whether it was still pending.
type Timer interface {
	Stop() bool
}

// Scheduler schedules delayed callbacks.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time
	// AfterFunc runs fn after d has elapsed, unless the returned Timer
	// is stopped first.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Wall is a Scheduler backed by the runtime timer heap.
type Wall struct{}

// NewWall creates a wall-clock scheduler.
func NewWall() *Wall {
	return &Wall{}
}

// Now returns the current wall-clock time.
func (*Wall) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn via time.AfterFunc.
func (*Wall) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Manual is a Scheduler whose time only moves when Advance is called.
// Due callbacks fire synchronously, in deadline order, on the goroutine
// calling Advance.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	pending []*manualTimer
	seq     int
}

type manualTimer struct {
	owner    *Manual
	deadline time.Time
	seq      int
	fn       func()
	stopped  bool
	fired    bool
}

// NewManual creates a manual scheduler starting at the given time.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the manual clock's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc registers fn to fire once the clock has advanced past d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{
		owner:    m,
		deadline: m.now.Add(d),
		seq:      m.seq,
		fn:       fn,
	}
	m.pending = append(m.pending, t)
	return t
}

// Advance moves the clock forward by d, firing every pending callback
// whose deadline is reached. Callbacks may schedule further timers;
// those fire too if they fall within the advanced window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()
	m.AdvanceTo(target)
}

// AdvanceTo moves the clock forward to the given instant.
func (m *Manual) AdvanceTo(target time.Time) {
	for {
		m.mu.Lock()
		if target.Before(m.now) {
			m.mu.Unlock()
			return
		}

		next := m.nextDueLocked(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}

		if next.deadline.After(m.now) {
			m.now = next.deadline
		}
		next.fired = true
		m.mu.Unlock()

		// Fire outside the lock so the callback can schedule or stop
		// other timers without deadlocking.
		next.fn()
	}
}

// nextDueLocked returns the earliest unfired, unstopped timer with a
// deadline at or before target, or nil.
func (m *Manual) nextDueLocked(target time.Time) *manualTimer {
	live := m.pending[:0]
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	m.pending = live

	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].deadline.Equal(m.pending[j].deadline) {
			return m.pending[i].seq < m.pending[j].seq
		}
		return m.pending[i].deadline.Before(m.pending[j].deadline)
	})

	if len(m.pending) == 0 || m.pending[0].deadline.After(target) {
		return nil
	}
	return m.pending[0]
}

// Stop cancels the timer if it has not fired.
func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
