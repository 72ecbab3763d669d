package gesture

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/sparsh/internal/clock"
)

// Recognizer is the public surface of the engine. The host feeds it raw
// press/move/release/wheel events with timestamps; decided gestures come
// back through the Handlers, at most one callback per decision.
//
// Classification state is guarded by a mutex so cooperative timer
// callbacks may fire from the scheduler, but all decisions are computed
// synchronously from event timestamps. Callbacks are invoked outside the
// lock, so a handler may feed new input reentrantly.
type Recognizer struct {
	cfg      Config
	sched    clock.Scheduler
	handlers Handlers

	mu      sync.Mutex
	tracker *tracker
	tap     *pendingTap
}

// pendingTap is a resolved tap waiting out the double-tap window. If the
// window elapses it becomes a primary event; a second press nearby
// consumes it into a double-tap select.
type pendingTap struct {
	id    ContactID
	pos   Point
	at    time.Time // release time of the first tap
	timer clock.Timer
}

// NewRecognizer creates an engine with the given thresholds (zero fields
// default), scheduler and callbacks.
func NewRecognizer(cfg Config, sched clock.Scheduler, handlers Handlers) *Recognizer {
	return &Recognizer{
		cfg:      cfg.withDefaults(),
		sched:    sched,
		handlers: handlers,
		tracker:  newTracker(),
	}
}

// Config returns the effective thresholds after defaulting.
func (r *Recognizer) Config() Config {
	return r.cfg
}

// Press reports a new primary-button contact at (x, y).
func (r *Recognizer) Press(id ContactID, x, y float64, t time.Time) {
	r.PressButton(id, ButtonPrimary, x, y, t)
}

// PressButton reports a new contact with an explicit button, so mouse
// right clicks normalize to the secondary event.
func (r *Recognizer) PressButton(id ContactID, button Button, x, y float64, t time.Time) {
	r.mu.Lock()
	ds := r.press(id, button, Point{X: x, Y: y}, t)
	r.mu.Unlock()
	r.dispatchAll(ds)
}

// Move reports motion of a live contact.
func (r *Recognizer) Move(id ContactID, x, y float64, t time.Time) {
	r.mu.Lock()
	ds := r.move(id, Point{X: x, Y: y}, t)
	r.mu.Unlock()
	r.dispatchAll(ds)
}

// Release reports the end of a live contact.
func (r *Recognizer) Release(id ContactID, x, y float64, t time.Time) {
	r.mu.Lock()
	ds := r.release(id, Point{X: x, Y: y}, t)
	r.mu.Unlock()
	r.dispatchAll(ds)
}

// Wheel reports one vertical wheel tick at the pointer position. step is
// signed tick magnitude; held modifiers select the mapped gesture.
func (r *Recognizer) Wheel(x, y, step float64, mods Modifiers) {
	r.dispatchAll(r.wheel(Point{X: x, Y: y}, step, mods))
}

// WheelHorizontal reports one horizontal wheel tick, which maps to pan.
func (r *Recognizer) WheelHorizontal(x, y, step float64) {
	r.dispatchAll(r.wheelPan(Point{X: x, Y: y}, step))
}

// CancelAll discards all in-progress classification, e.g. when the host
// widget loses focus. Tracked contacts stay live but emit nothing until
// released.
func (r *Recognizer) CancelAll() {
	r.mu.Lock()
	r.clearPendingTap()
	r.tracker.cancelAll()
	r.mu.Unlock()
}

// dispatchAll invokes the single callback for each decision, outside the
// state lock.
func (r *Recognizer) dispatchAll(ds []Decision) {
	for _, d := range ds {
		r.handlers.dispatch(d)
	}
}

// press creates and classifies a new contact. Caller holds r.mu.
func (r *Recognizer) press(id ContactID, button Button, p Point, t time.Time) []Decision {
	if r.tracker.get(id) != nil {
		// Duplicate press for a live contact is host noise; keep the
		// original classification.
		return nil
	}

	c, count := r.tracker.add(id, button, p, t, r.cfg.VelocityWindow)

	switch {
	case count >= 3:
		// Ambiguous multi-finger input: discard classification for
		// everything, emit nothing.
		r.clearPendingTap()
		r.tracker.cancelAll()
		return nil

	case count == 2:
		return r.pairPress(c, t)

	default:
		return r.singlePress(c, t)
	}
}

// move routes motion to whichever classifier owns the contact. Caller
// holds r.mu.
func (r *Recognizer) move(id ContactID, p Point, t time.Time) []Decision {
	c := r.tracker.get(id)
	if c == nil {
		log.Printf("gesture: move for untracked contact %d", id)
		return nil
	}

	c.pos = p
	c.window.add(t, p)

	switch c.phase {
	case phasePaired:
		return r.pairMove(t)
	case phaseCancelled, phaseSecondary:
		return nil
	case phasePairEnded:
		// Motion after the partner released disqualifies the remaining
		// two-finger tap candidacy.
		if c.secondaryTap && distance(c.origin, p) > r.cfg.MoveTolerance {
			c.secondaryTap = false
		}
		return nil
	default:
		return r.singleMove(c, p, t)
	}
}

// release resolves the terminal decision for a contact. Caller holds r.mu.
func (r *Recognizer) release(id ContactID, p Point, t time.Time) []Decision {
	c := r.tracker.get(id)
	if c == nil {
		log.Printf("gesture: release for untracked contact %d", id)
		return nil
	}

	c.pos = p
	c.window.add(t, p)
	c.stopLongPress()

	pr := r.tracker.pair
	survivor := r.tracker.remove(id)

	switch c.phase {
	case phasePaired:
		return r.pairRelease(c, pr, survivor, t)
	case phaseCancelled:
		return nil
	default:
		return r.singleRelease(c, p, t)
	}
}
