package gesture

import (
	"time"

	"github.com/ayusman/sparsh/internal/clock"
)

// phase is the classification state tag of a tracked contact.
type phase int

const (
	// phasePressed: down, under movement tolerance, branch undecided.
	phasePressed phase = iota
	// phaseSecondary: a secondary-button press awaiting release.
	phaseSecondary
	// phaseLongPressed: the long-press timer fired; a move turns this
	// into a long-press drag, a release emits long_press_end.
	phaseLongPressed
	// phaseDragging: committed to the drag branch until release.
	phaseDragging
	// phasePaging: committed to the page branch; axis and direction are
	// resolved at release.
	phasePaging
	// phasePaired: owned by the dual-touch classifier.
	phasePaired
	// phasePairEnded: the other contact of a pair released; this one is
	// inert except for a possible two-finger tap resolution.
	phasePairEnded
	// phaseCancelled: a third simultaneous contact (or an explicit
	// cancel) discarded classification; the contact is tracked but emits
	// nothing until release.
	phaseCancelled
)

// contact is one live press-to-release sequence. Contacts are owned
// exclusively by the tracker; classifiers update only the classification
// tag and its flags.
type contact struct {
	id     ContactID
	button Button
	origin Point
	pos    Point
	start  time.Time
	window sampleWindow
	phase  phase

	// longPress marks that the long-press transition already fired, so
	// a following drag continues the long press.
	longPress bool
	// secondTap marks a press that consumed a pending tap and resolves
	// as a double-tap select on release.
	secondTap bool
	// secondaryTap carries the two-finger-tap candidacy and focus after
	// the contact's pair partner released first.
	secondaryTap bool
	secondaryAt  Point

	longPressTimer clock.Timer
}

// stopLongPress cancels a pending long-press timer, if any.
func (c *contact) stopLongPress() {
	if c.longPressTimer != nil {
		c.longPressTimer.Stop()
		c.longPressTimer = nil
	}
}

// pair is the transient association of exactly two live contacts. The
// baseline distance, angle and midpoint are fixed once at formation and
// never re-based, so reported deltas are cumulative from gesture start.
type pair struct {
	a, b *contact

	baseDist  float64
	baseAngle float64
	baseMid   Point
	centroid  sampleWindow

	// degenerate suppresses zoom and rotate when the contacts started
	// too close together for stable ratios and angles.
	degenerate bool
	// moved records that some deadzone was exceeded, disqualifying the
	// two-finger tap.
	moved bool
}

// tracker maintains the live contact set and the current pair. At most
// two contacts are relevant; a third concurrent press cancels in-progress
// classification for all of them.
type tracker struct {
	contacts map[ContactID]*contact
	order    []ContactID // press order
	pair     *pair
}

func newTracker() *tracker {
	return &tracker{contacts: make(map[ContactID]*contact)}
}

// get returns the tracked contact for id, or nil.
func (tr *tracker) get(id ContactID) *contact {
	return tr.contacts[id]
}

// count returns the number of live contacts.
func (tr *tracker) count() int {
	return len(tr.order)
}

// add registers a new contact and returns it along with the resulting
// live count. The caller must have checked that id is not yet tracked.
func (tr *tracker) add(id ContactID, button Button, p Point, t time.Time, velocitySpan time.Duration) (*contact, int) {
	c := &contact{
		id:     id,
		button: button,
		origin: p,
		pos:    p,
		start:  t,
		window: newSampleWindow(velocitySpan),
		phase:  phasePressed,
	}
	c.window.add(t, p)

	tr.contacts[id] = c
	tr.order = append(tr.order, id)
	return c, len(tr.order)
}

// remove drops a contact from tracking. If the contact was half of the
// current pair, the pair dissolves and the surviving contact is returned
// so the caller can decide its fate; otherwise the survivor is nil.
func (tr *tracker) remove(id ContactID) (survivor *contact) {
	delete(tr.contacts, id)
	for i, o := range tr.order {
		if o == id {
			tr.order = append(tr.order[:i], tr.order[i+1:]...)
			break
		}
	}

	if p := tr.pair; p != nil && (p.a.id == id || p.b.id == id) {
		tr.pair = nil
		if p.a.id == id {
			return p.b
		}
		return p.a
	}
	return nil
}

// other returns the single live contact that is not c, or nil.
func (tr *tracker) other(c *contact) *contact {
	for _, id := range tr.order {
		if id != c.id {
			return tr.contacts[id]
		}
	}
	return nil
}

// formPair associates the two contacts, capturing the baseline used for
// cumulative scale and angle deltas. A baseline closer than minSeparation
// is degenerate: zoom and rotate stay suppressed for the pair's life.
func (tr *tracker) formPair(a, b *contact, minSeparation float64, velocitySpan time.Duration, t time.Time) *pair {
	d := distance(a.pos, b.pos)
	p := &pair{
		a:          a,
		b:          b,
		baseDist:   d,
		baseAngle:  angleBetween(a.pos, b.pos),
		baseMid:    midpoint(a.pos, b.pos),
		centroid:   newSampleWindow(velocitySpan),
		degenerate: d < minSeparation,
	}
	p.centroid.add(t, p.baseMid)

	a.phase = phasePaired
	b.phase = phasePaired
	tr.pair = p
	return p
}

// cancelAll discards classification state for every live contact. The
// contacts remain tracked so input stays coherent, but none of them can
// produce a gesture until released; new presses classify normally once
// the live count is back under control.
func (tr *tracker) cancelAll() {
	tr.pair = nil
	for _, c := range tr.contacts {
		c.stopLongPress()
		c.phase = phaseCancelled
		c.longPress = false
		c.secondTap = false
		c.secondaryTap = false
	}
}
