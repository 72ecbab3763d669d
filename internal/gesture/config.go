package gesture

import (
	"math"
	"time"
)

// Default thresholds. Durations follow desktop conventions; distances are
// in the host's pixel units.
const (
	// DefaultTapWindow is the longest press-to-release that still counts
	// as a tap.
	DefaultTapWindow = 300 * time.Millisecond
	// DefaultDoubleTapWindow is how long after a tap a second tap may
	// arrive to form a double tap. The plain primary event is only
	// emitted once this window has elapsed with no second tap.
	DefaultDoubleTapWindow = 250 * time.Millisecond
	// DefaultDoubleTapDistance is the farthest a second tap may land
	// from the first and still pair with it.
	DefaultDoubleTapDistance = 20.0
	// DefaultLongPress is the hold time before a press becomes a
	// long-press select.
	DefaultLongPress = 400 * time.Millisecond
	// DefaultMoveTolerance is the movement slop below which a contact is
	// treated as stationary.
	DefaultMoveTolerance = 20.0
	// DefaultVelocityWindow is the trailing sample span used for
	// velocity estimation.
	DefaultVelocityWindow = 200 * time.Millisecond
	// DefaultPageWindow is the longest press age at which a fast move
	// may resolve as a page flick instead of a drag.
	DefaultPageWindow = 300 * time.Millisecond
	// DefaultPageVelocity is the minimum flick speed, in inches per
	// second, for a page decision.
	DefaultPageVelocity = 5.0
	// DefaultPixelsPerInch converts pixel speeds to the inch-based page
	// velocity threshold.
	DefaultPixelsPerInch = 96.0
	// DefaultZoomDeadzone is the fractional distance-ratio change below
	// which two contacts are not zooming.
	DefaultZoomDeadzone = 0.05
	// DefaultRotateDeadzone is the angle change, in radians, below which
	// two contacts are not rotating.
	DefaultRotateDeadzone = 0.10
	// DefaultPairSeparation is the minimum inter-contact distance for
	// zoom/rotate classification; closer baselines are degenerate and
	// suppress both.
	DefaultPairSeparation = 8.0
	// DefaultWheelScale is the zoom ratio applied per ctrl-wheel tick.
	DefaultWheelScale = 1.1
	// DefaultWheelScrollStep is the scroll/pan distance, in pixels, per
	// wheel tick.
	DefaultWheelScrollStep = 40.0
)

// DefaultWheelAngleStep is the rotation, in radians, per alt-wheel tick.
var DefaultWheelAngleStep = math.Pi / 36

// Config holds the named sensitivity thresholds of the engine. It is
// supplied at construction and immutable afterward; zero fields take the
// documented defaults, so any subset may be overridden.
type Config struct {
	TapWindow         time.Duration
	DoubleTapWindow   time.Duration
	DoubleTapDistance float64
	LongPress         time.Duration
	MoveTolerance     float64
	VelocityWindow    time.Duration
	PageWindow        time.Duration
	PageVelocity      float64 // inches per second
	PixelsPerInch     float64
	ZoomDeadzone      float64
	RotateDeadzone    float64 // radians
	PairSeparation    float64
	WheelScale        float64
	WheelScrollStep   float64
	WheelAngleStep    float64 // radians
}

// withDefaults returns c with every zero field replaced by its default.
func (c Config) withDefaults() Config {
	if c.TapWindow <= 0 {
		c.TapWindow = DefaultTapWindow
	}
	if c.DoubleTapWindow <= 0 {
		c.DoubleTapWindow = DefaultDoubleTapWindow
	}
	if c.DoubleTapDistance <= 0 {
		c.DoubleTapDistance = DefaultDoubleTapDistance
	}
	if c.LongPress <= 0 {
		c.LongPress = DefaultLongPress
	}
	if c.MoveTolerance <= 0 {
		c.MoveTolerance = DefaultMoveTolerance
	}
	if c.VelocityWindow <= 0 {
		c.VelocityWindow = DefaultVelocityWindow
	}
	if c.PageWindow <= 0 {
		c.PageWindow = DefaultPageWindow
	}
	if c.PageVelocity <= 0 {
		c.PageVelocity = DefaultPageVelocity
	}
	if c.PixelsPerInch <= 0 {
		c.PixelsPerInch = DefaultPixelsPerInch
	}
	if c.ZoomDeadzone <= 0 {
		c.ZoomDeadzone = DefaultZoomDeadzone
	}
	if c.RotateDeadzone <= 0 {
		c.RotateDeadzone = DefaultRotateDeadzone
	}
	if c.PairSeparation <= 0 {
		c.PairSeparation = DefaultPairSeparation
	}
	if c.WheelScale <= 0 {
		c.WheelScale = DefaultWheelScale
	}
	if c.WheelScrollStep <= 0 {
		c.WheelScrollStep = DefaultWheelScrollStep
	}
	if c.WheelAngleStep <= 0 {
		c.WheelAngleStep = DefaultWheelAngleStep
	}
	return c
}

// pageVelocityPx is the page threshold converted to pixels per second.
func (c Config) pageVelocityPx() float64 {
	return c.PageVelocity * c.PixelsPerInch
}
