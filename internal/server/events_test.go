package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/sparsh/internal/app"
	"github.com/ayusman/sparsh/internal/clock"
	"github.com/ayusman/sparsh/internal/gesture"
)

// dialEvents starts a test server around the events bridge and connects a
// websocket client to it.
func dialEvents(t *testing.T, a *app.App) (*websocket.Conn, func()) {
	t.Helper()

	srv := httptest.NewServer(New(Config{App: a}))
	wsURL := strings.Replace(srv.URL, "http://", "ws://", 1) + "/api/events"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("failed to dial websocket: %v", err)
	}

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func readDecision(t *testing.T, conn *websocket.Conn) gesture.Decision {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var d gesture.Decision
	if err := conn.ReadJSON(&d); err != nil {
		t.Fatalf("failed to read decision: %v", err)
	}
	return d
}

func TestEvents_WheelScrollRoundTrip(t *testing.T) {
	a := app.New(app.Config{Scheduler: clock.NewManual(time.Unix(1000, 0))})
	conn, cleanup := dialEvents(t, a)
	defer cleanup()

	ev := Event{Type: "wheel", X: 10, Y: 20, Step: 1}
	if err := conn.WriteJSON(ev); err != nil {
		t.Fatalf("failed to write event: %v", err)
	}

	d := readDecision(t, conn)
	if d.Kind != gesture.KindScroll {
		t.Errorf("kind = %q, want %q", d.Kind, gesture.KindScroll)
	}
	if d.X != 10 || d.Y != 20 {
		t.Errorf("position = (%v, %v), want (10, 20)", d.X, d.Y)
	}
}

func TestEvents_WheelModifierZoom(t *testing.T) {
	a := app.New(app.Config{Scheduler: clock.NewManual(time.Unix(1000, 0))})
	conn, cleanup := dialEvents(t, a)
	defer cleanup()

	ev := Event{Type: "wheel", X: 5, Y: 5, Step: 1, Mods: []string{"ctrl"}}
	if err := conn.WriteJSON(ev); err != nil {
		t.Fatalf("failed to write event: %v", err)
	}

	d := readDecision(t, conn)
	if d.Kind != gesture.KindZoom {
		t.Errorf("kind = %q, want %q", d.Kind, gesture.KindZoom)
	}
	if d.Scale <= 1 {
		t.Errorf("scale = %v, want > 1", d.Scale)
	}
}

func TestEvents_DoubleTapRoundTrip(t *testing.T) {
	a := app.New(app.Config{Scheduler: clock.NewManual(time.Unix(1000, 0))})
	conn, cleanup := dialEvents(t, a)
	defer cleanup()

	// Two quick taps at the same spot resolve into a select on the
	// second release, so the decision arrives without advancing time.
	base := time.Unix(1000, 0).UnixMilli()
	events := []Event{
		{Type: "press", ID: 1, X: 50, Y: 50, TimeMs: base},
		{Type: "release", ID: 1, X: 50, Y: 50, TimeMs: base + 50},
		{Type: "press", ID: 1, X: 51, Y: 50, TimeMs: base + 150},
		{Type: "release", ID: 1, X: 51, Y: 50, TimeMs: base + 200},
	}
	for _, ev := range events {
		if err := conn.WriteJSON(ev); err != nil {
			t.Fatalf("failed to write %s event: %v", ev.Type, err)
		}
	}

	d := readDecision(t, conn)
	if d.Kind != gesture.KindSelect {
		t.Errorf("kind = %q, want %q", d.Kind, gesture.KindSelect)
	}
	if d.LongPress {
		t.Error("select from a double tap should not be marked long press")
	}
}

func TestEvents_UnknownTypeIsIgnored(t *testing.T) {
	a := app.New(app.Config{Scheduler: clock.NewManual(time.Unix(1000, 0))})
	conn, cleanup := dialEvents(t, a)
	defer cleanup()

	if err := conn.WriteJSON(Event{Type: "hover", X: 1, Y: 1}); err != nil {
		t.Fatalf("failed to write event: %v", err)
	}
	// A scroll after the bad event proves the connection survived it.
	if err := conn.WriteJSON(Event{Type: "wheel", X: 1, Y: 1, Step: 1}); err != nil {
		t.Fatalf("failed to write event: %v", err)
	}

	d := readDecision(t, conn)
	if d.Kind != gesture.KindScroll {
		t.Errorf("kind = %q, want %q", d.Kind, gesture.KindScroll)
	}
}
