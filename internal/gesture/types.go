// Package gesture classifies low-level pointer/touch events into a small,
// device-independent vocabulary of semantic gestures. The Recognizer is
// driven synchronously by the host's input delivery loop and reports each
// decided gesture through at most one handler callback.
package gesture

import "fmt"

// ContactID identifies one continuous press-to-release input point.
// IDs are assigned by the host and must be stable for the life of the
// press-to-release sequence.
type ContactID int

// NoContact marks the absent second touch of wheel-driven zoom, rotate,
// scroll and pan decisions.
const NoContact ContactID = -1

// Button identifies which pointer button began a contact.
type Button int

const (
	// ButtonPrimary is the default contact button (left mouse button or
	// a touch contact).
	ButtonPrimary Button = iota
	// ButtonSecondary is the right mouse button; its release normalizes
	// to the secondary event, matching a two-finger tap on touch.
	ButtonSecondary
)

// Modifiers is the set of modifier keys held during a wheel event.
type Modifiers uint8

const (
	// ModShift maps wheel rotation to pan.
	ModShift Modifiers = 1 << iota
	// ModCtrl maps wheel rotation to zoom. Hosts should report the
	// command key as ModCtrl on macOS.
	ModCtrl
	// ModAlt maps wheel rotation to rotate.
	ModAlt
)

// Has reports whether m contains all modifiers in mask.
func (m Modifiers) Has(mask Modifiers) bool {
	return m&mask == mask
}

// Point is a position in the host's local widget space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Kind names a classified gesture.
type Kind string

const (
	// KindPrimary is a plain tap or left click.
	KindPrimary Kind = "primary"
	// KindSecondary is a two-finger tap or right click.
	KindSecondary Kind = "secondary"
	// KindSelect is a double tap or a long press (LongPress flag set).
	KindSelect Kind = "select"
	// KindLongPressEnd closes a long press.
	KindLongPressEnd Kind = "long_press_end"
	// KindDragStart, KindDrag and KindDragEnd report a single-contact
	// drag; cumulative deltas are relative to the press origin.
	KindDragStart Kind = "drag_start"
	KindDrag      Kind = "drag"
	KindDragEnd   Kind = "drag_end"
	// KindScroll is a dominant-vertical two-finger translate or an
	// unmodified wheel tick.
	KindScroll Kind = "scroll"
	// KindPan is a dominant-horizontal two-finger translate, a shifted
	// wheel tick or a horizontal wheel tick.
	KindPan Kind = "pan"
	// KindZoom reports the inter-contact distance ratio relative to the
	// pair baseline, or a ctrl-wheel tick.
	KindZoom Kind = "zoom"
	// KindRotate reports the inter-contact angle delta in radians
	// relative to the pair baseline, or an alt-wheel tick.
	KindRotate Kind = "rotate"
	// KindHorizontalPage and KindVerticalPage are fast, short
	// directional flicks distinguished from drag by velocity and
	// duration.
	KindHorizontalPage Kind = "horizontal_page"
	KindVerticalPage   Kind = "vertical_page"
)

// Decision is one classified gesture with its parameters. Decisions are
// produced and consumed synchronously; they are never persisted by the
// engine.
type Decision struct {
	Kind   Kind      `json:"kind"`
	Touch  ContactID `json:"touch"`
	Touch2 ContactID `json:"touch2"` // NoContact unless a two-contact gesture

	// Focus point: cursor position, the contact position, or the pair
	// midpoint.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Cumulative deltas relative to gesture start.
	DX float64 `json:"dx,omitempty"`
	DY float64 `json:"dy,omitempty"`

	// Scale is the distance ratio current/baseline for zoom.
	Scale float64 `json:"scale,omitempty"`
	// Angle is the rotation delta in radians for rotate.
	Angle float64 `json:"angle,omitempty"`
	// Velocity is the smoothed speed in pixels per second over the
	// trailing velocity window; zero when fewer than two samples exist.
	Velocity float64 `json:"velocity,omitempty"`

	// LongPress marks a select produced by the long-press timer, or a
	// drag that continues a long press.
	LongPress bool `json:"long_press,omitempty"`
	// LeftToRight is the horizontal page direction.
	LeftToRight bool `json:"left_to_right,omitempty"`
	// BottomToTop is the vertical page direction, in the host's
	// y-increases-up convention.
	BottomToTop bool `json:"bottom_to_top,omitempty"`
}

// String returns a compact description for logs.
func (d Decision) String() string {
	return fmt.Sprintf("%s(touch=%d at %.1f,%.1f)", d.Kind, d.Touch, d.X, d.Y)
}
