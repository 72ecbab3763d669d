package gesture

import (
	"math"
	"time"
)

// sample is one timestamped position in a contact's history.
type sample struct {
	t time.Time
	p Point
}

// sampleWindow keeps the trailing span of a contact's (or a pair
// centroid's) position samples and estimates velocity from it. It is a
// pure function of its samples; adding prunes everything older than span
// before the newest sample.
type sampleWindow struct {
	span    time.Duration
	samples []sample
}

func newSampleWindow(span time.Duration) sampleWindow {
	return sampleWindow{span: span}
}

// add appends a sample and drops samples that fall out of the trailing
// window. Samples must arrive in non-decreasing time order.
func (w *sampleWindow) add(t time.Time, p Point) {
	w.samples = append(w.samples, sample{t: t, p: p})

	cutoff := t.Add(-w.span)
	drop := 0
	for drop < len(w.samples)-1 && w.samples[drop].t.Before(cutoff) {
		drop++
	}
	if drop > 0 {
		w.samples = append(w.samples[:0], w.samples[drop:]...)
	}
}

// velocity returns the displacement between the oldest and newest sample
// in the window divided by their time delta, in units per second. It is
// the zero vector until the window holds at least two samples.
func (w *sampleWindow) velocity() (vx, vy float64) {
	n := len(w.samples)
	if n < 2 {
		return 0, 0
	}

	oldest, newest := w.samples[0], w.samples[n-1]
	dt := newest.t.Sub(oldest.t).Seconds()
	if dt <= 0 {
		return 0, 0
	}

	return (newest.p.X - oldest.p.X) / dt, (newest.p.Y - oldest.p.Y) / dt
}

// speed returns the magnitude of velocity in units per second.
func (w *sampleWindow) speed() float64 {
	vx, vy := w.velocity()
	return math.Hypot(vx, vy)
}

// distance is the Euclidean distance between two points.
func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// midpoint is the point halfway between a and b.
func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// angleBetween is the angle of the segment a->b in radians.
func angleBetween(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// normalizeAngle folds an angle delta into (-pi, pi] so cumulative
// rotation deltas stay continuous around the wrap point.
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
