package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/sparsh/internal/clock"
	"github.com/ayusman/sparsh/internal/gesture"
	"github.com/ayusman/sparsh/internal/store"
	"github.com/google/uuid"
)

// tapThrough drives a complete tap and advances the clock past the
// double-tap window so the primary decision settles.
func tapThrough(a *App, sched *clock.Manual) {
	a.Press(1, gesture.ButtonPrimary, 10, 20, sched.Now())
	sched.Advance(50 * time.Millisecond)
	a.Release(1, 10, 20, sched.Now())
	sched.Advance(time.Second)
}

func TestApp_NewWithoutSchedulerUsesWallClock(t *testing.T) {
	a := New(Config{})

	if a.sched == nil {
		t.Fatal("nil scheduler after construction")
	}
	if _, ok := a.sched.(*clock.Wall); !ok {
		t.Fatalf("default scheduler = %T, want *clock.Wall", a.sched)
	}
	if !a.IsEnabled() {
		t.Error("new app not enabled")
	}

	// The wall clock is live; real timestamps must classify normally.
	a.Press(1, gesture.ButtonPrimary, 10, 20, time.Now())
	a.Release(1, 10, 20, time.Now())
	if _, ok := a.LastGesture(); ok {
		t.Error("tap decided before the double-tap window elapsed")
	}
}

func TestApp_TapNotifiesAndRecordsLast(t *testing.T) {
	sched := clock.NewManual(time.Unix(1000, 0))
	a := New(Config{Scheduler: sched})

	var got []gesture.Decision
	a.OnDecision(func(d gesture.Decision) { got = append(got, d) })

	tapThrough(a, sched)

	if len(got) != 1 || got[0].Kind != gesture.KindPrimary {
		t.Fatalf("notified decisions = %v, want one primary", got)
	}

	last, ok := a.LastGesture()
	if !ok || last.Kind != gesture.KindPrimary || last.X != 10 {
		t.Errorf("last gesture = %v (%v), want the primary at x=10", last, ok)
	}
}

func TestApp_DisabledIgnoresInput(t *testing.T) {
	sched := clock.NewManual(time.Unix(1000, 0))
	a := New(Config{Scheduler: sched})

	a.SetEnabled(false)
	if a.IsEnabled() {
		t.Fatal("IsEnabled() = true after SetEnabled(false)")
	}

	tapThrough(a, sched)

	if _, ok := a.LastGesture(); ok {
		t.Error("gesture decided while disabled")
	}

	// Re-enabling classifies fresh input normally.
	a.SetEnabled(true)
	tapThrough(a, sched)
	if _, ok := a.LastGesture(); !ok {
		t.Error("no gesture decided after re-enabling")
	}
}

func TestApp_ReloadProfileAppliesActiveThresholds(t *testing.T) {
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	p := &store.Profile{
		ID:         uuid.New().String(),
		Name:       "slow",
		Thresholds: store.Thresholds{LongPressMs: 900},
	}
	if err := s.Profiles().Create(p); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	if err := s.Profiles().Activate(p.ID); err != nil {
		t.Fatalf("failed to activate profile: %v", err)
	}

	sched := clock.NewManual(time.Unix(1000, 0))
	a := New(Config{Store: s, Scheduler: sched})

	if err := a.ReloadProfile(); err != nil {
		t.Fatalf("failed to reload profile: %v", err)
	}

	if got := a.Thresholds().LongPress; got != 900*time.Millisecond {
		t.Errorf("long press = %v, want the profile's 900ms", got)
	}
	// Unset thresholds keep the engine defaults.
	if got := a.Thresholds().TapWindow; got != gesture.DefaultTapWindow {
		t.Errorf("tap window = %v, want default %v", got, gesture.DefaultTapWindow)
	}
}

func TestApp_ReloadProfileWithoutActiveFallsBack(t *testing.T) {
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	sched := clock.NewManual(time.Unix(1000, 0))
	a := New(Config{
		Store:      s,
		Scheduler:  sched,
		Thresholds: gesture.Config{MoveTolerance: 33},
	})

	if err := a.ReloadProfile(); err != nil {
		t.Fatalf("failed to reload profile: %v", err)
	}
	if got := a.Thresholds().MoveTolerance; got != 33 {
		t.Errorf("move tolerance = %v, want the config-file fallback 33", got)
	}
}

func TestApp_StartStopIdempotent(t *testing.T) {
	a := New(Config{Scheduler: clock.NewManual(time.Unix(1000, 0))})

	if err := a.Start(); err != nil {
		t.Fatalf("failed to start: %v", err)
	}
	if err := a.Start(); err != nil {
		t.Fatalf("second start failed: %v", err)
	}

	a.Stop()
	a.Stop()
}
