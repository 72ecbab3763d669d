// Package testdata provides canned input event sequences for end-to-end
// tests. Events use the wire shape of the /api/events websocket bridge.
package testdata

// InputEvent is one raw input event in the bridge's JSON shape.
type InputEvent struct {
	Type   string   `json:"type"`
	ID     int      `json:"id,omitempty"`
	Button string   `json:"button,omitempty"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Step   float64  `json:"step,omitempty"`
	Mods   []string `json:"mods,omitempty"`
	TimeMs int64    `json:"t_ms,omitempty"`
}

// Tap is a quick press and release at (x, y) starting at baseMs.
func Tap(x, y float64, baseMs int64) []InputEvent {
	return []InputEvent{
		{Type: "press", ID: 1, X: x, Y: y, TimeMs: baseMs},
		{Type: "release", ID: 1, X: x, Y: y, TimeMs: baseMs + 50},
	}
}

// DoubleTap is two quick taps at (x, y); the second release resolves the
// pair into a select.
func DoubleTap(x, y float64, baseMs int64) []InputEvent {
	first := Tap(x, y, baseMs)
	second := Tap(x, y, baseMs+150)
	return append(first, second...)
}

// Drag is a slow press-move-release from (x, y) moving by (dx, dy).
// The first move comes late enough to miss the page window.
func Drag(x, y, dx, dy float64, baseMs int64) []InputEvent {
	return []InputEvent{
		{Type: "press", ID: 1, X: x, Y: y, TimeMs: baseMs},
		{Type: "move", ID: 1, X: x + dx/2, Y: y + dy/2, TimeMs: baseMs + 350},
		{Type: "move", ID: 1, X: x + dx, Y: y + dy, TimeMs: baseMs + 450},
		{Type: "release", ID: 1, X: x + dx, Y: y + dy, TimeMs: baseMs + 500},
	}
}

// HorizontalFlick is a fast left-to-right swipe that classifies as a
// horizontal page turn.
func HorizontalFlick(x, y float64, baseMs int64) []InputEvent {
	return []InputEvent{
		{Type: "press", ID: 1, X: x, Y: y, TimeMs: baseMs},
		{Type: "move", ID: 1, X: x + 60, Y: y, TimeMs: baseMs + 40},
		{Type: "move", ID: 1, X: x + 120, Y: y, TimeMs: baseMs + 80},
		{Type: "release", ID: 1, X: x + 120, Y: y, TimeMs: baseMs + 100},
	}
}

// Pinch is a two-contact spread doubling the inter-contact distance,
// classifying as cumulative zoom.
func Pinch(cx, cy float64, baseMs int64) []InputEvent {
	return []InputEvent{
		{Type: "press", ID: 1, X: cx - 5, Y: cy, TimeMs: baseMs},
		{Type: "press", ID: 2, X: cx + 5, Y: cy, TimeMs: baseMs + 10},
		{Type: "move", ID: 1, X: cx - 10, Y: cy, TimeMs: baseMs + 60},
		{Type: "move", ID: 2, X: cx + 10, Y: cy, TimeMs: baseMs + 110},
		{Type: "release", ID: 1, X: cx - 10, Y: cy, TimeMs: baseMs + 160},
		{Type: "release", ID: 2, X: cx + 10, Y: cy, TimeMs: baseMs + 170},
	}
}

// Twist is a two-contact quarter turn around the first contact at a
// constant inter-contact distance, classifying as cumulative rotate.
func Twist(x, y float64, baseMs int64) []InputEvent {
	return []InputEvent{
		{Type: "press", ID: 1, X: x, Y: y, TimeMs: baseMs},
		{Type: "press", ID: 2, X: x + 20, Y: y, TimeMs: baseMs + 10},
		{Type: "move", ID: 2, X: x, Y: y + 20, TimeMs: baseMs + 60},
		{Type: "release", ID: 2, X: x, Y: y + 20, TimeMs: baseMs + 500},
		{Type: "release", ID: 1, X: x, Y: y, TimeMs: baseMs + 520},
	}
}

// TwoFingerScroll translates a wide pair downward in small alternating
// steps so the skew stays inside the zoom and rotate deadzones.
func TwoFingerScroll(x, y float64, baseMs int64) []InputEvent {
	events := []InputEvent{
		{Type: "press", ID: 1, X: x, Y: y, TimeMs: baseMs},
		{Type: "press", ID: 2, X: x + 100, Y: y, TimeMs: baseMs + 10},
	}
	dy := 0.0
	ts := baseMs + 20
	for i := 0; i < 4; i++ {
		dy += 5
		events = append(events,
			InputEvent{Type: "move", ID: 1, X: x, Y: y + dy, TimeMs: ts},
			InputEvent{Type: "move", ID: 2, X: x + 100, Y: y + dy, TimeMs: ts + 10},
		)
		ts += 20
	}
	events = append(events,
		InputEvent{Type: "release", ID: 1, X: x, Y: y + dy, TimeMs: ts},
		InputEvent{Type: "release", ID: 2, X: x + 100, Y: y + dy, TimeMs: ts + 10},
	)
	return events
}

// WheelScroll is n unmodified wheel ticks at (x, y).
func WheelScroll(x, y float64, n int) []InputEvent {
	events := make([]InputEvent, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, InputEvent{Type: "wheel", X: x, Y: y, Step: 1})
	}
	return events
}

// WheelZoom is one ctrl-modified wheel tick at (x, y).
func WheelZoom(x, y float64) []InputEvent {
	return []InputEvent{{Type: "wheel", X: x, Y: y, Step: 1, Mods: []string{"ctrl"}}}
}
