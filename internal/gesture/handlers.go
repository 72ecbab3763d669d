package gesture

// Handlers is the capability set of gesture callbacks. Set only the
// handlers you need; nil handlers are no-ops. The dispatcher invokes
// exactly one callback per decided gesture.
//
// When Decision is set it receives every decision instead of the
// per-gesture handlers; this is how embedding layers (the event bridge,
// plugin dispatch) observe the raw stream.
type Handlers struct {
	// Primary is a plain tap or left click.
	Primary func(touch ContactID, x, y float64)
	// Secondary is a two-finger tap or right click.
	Secondary func(touch ContactID, x, y float64)
	// Select is a double tap (longPress false) or a long press hitting
	// its hold time (longPress true, fired before release).
	Select func(touch ContactID, x, y float64, longPress bool)
	// LongPressEnd closes a long press that did not turn into a drag.
	LongPressEnd func(touch ContactID, x, y float64)
	// DragStart begins a drag at the press origin; longPress marks a
	// drag continuing a long press rather than starting a new gesture.
	DragStart func(touch ContactID, x, y float64, longPress bool)
	// Drag reports drag progress with deltas cumulative from the
	// origin and the smoothed speed in pixels per second.
	Drag func(touch ContactID, x, y, dx, dy, velocity float64)
	// DragEnd closes a drag.
	DragEnd func(touch ContactID, x, y float64)
	// Scroll is a dominant-vertical two-finger translate or an
	// unmodified wheel tick.
	Scroll func(touch ContactID, x, y, dy, velocity float64)
	// Pan is a dominant-horizontal two-finger translate or a
	// shifted/horizontal wheel tick.
	Pan func(touch ContactID, x, y, dx, velocity float64)
	// Zoom reports the cumulative distance ratio relative to the pair
	// baseline; touch2 is NoContact for wheel zoom.
	Zoom func(touch, touch2 ContactID, x, y, scale float64)
	// Rotate reports the cumulative angle delta in radians relative to
	// the pair baseline; touch2 is NoContact for wheel rotate.
	Rotate func(touch, touch2 ContactID, x, y, angle float64)
	// HorizontalPage and VerticalPage report fast directional flicks.
	HorizontalPage func(touch ContactID, leftToRight bool)
	VerticalPage   func(touch ContactID, bottomToTop bool)

	// Decision, when set, receives every decision in place of the
	// per-gesture handlers above.
	Decision func(Decision)
}

// dispatch routes one decision to its single callback.
func (h *Handlers) dispatch(d Decision) {
	if h.Decision != nil {
		h.Decision(d)
		return
	}

	switch d.Kind {
	case KindPrimary:
		if h.Primary != nil {
			h.Primary(d.Touch, d.X, d.Y)
		}
	case KindSecondary:
		if h.Secondary != nil {
			h.Secondary(d.Touch, d.X, d.Y)
		}
	case KindSelect:
		if h.Select != nil {
			h.Select(d.Touch, d.X, d.Y, d.LongPress)
		}
	case KindLongPressEnd:
		if h.LongPressEnd != nil {
			h.LongPressEnd(d.Touch, d.X, d.Y)
		}
	case KindDragStart:
		if h.DragStart != nil {
			h.DragStart(d.Touch, d.X, d.Y, d.LongPress)
		}
	case KindDrag:
		if h.Drag != nil {
			h.Drag(d.Touch, d.X, d.Y, d.DX, d.DY, d.Velocity)
		}
	case KindDragEnd:
		if h.DragEnd != nil {
			h.DragEnd(d.Touch, d.X, d.Y)
		}
	case KindScroll:
		if h.Scroll != nil {
			h.Scroll(d.Touch, d.X, d.Y, d.DY, d.Velocity)
		}
	case KindPan:
		if h.Pan != nil {
			h.Pan(d.Touch, d.X, d.Y, d.DX, d.Velocity)
		}
	case KindZoom:
		if h.Zoom != nil {
			h.Zoom(d.Touch, d.Touch2, d.X, d.Y, d.Scale)
		}
	case KindRotate:
		if h.Rotate != nil {
			h.Rotate(d.Touch, d.Touch2, d.X, d.Y, d.Angle)
		}
	case KindHorizontalPage:
		if h.HorizontalPage != nil {
			h.HorizontalPage(d.Touch, d.LeftToRight)
		}
	case KindVerticalPage:
		if h.VerticalPage != nil {
			h.VerticalPage(d.Touch, d.BottomToTop)
		}
	}
}
