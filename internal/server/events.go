package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/sparsh/internal/app"
	"github.com/ayusman/sparsh/internal/gesture"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Event is one raw input event received over the websocket bridge.
// TimeMs is the host timestamp in Unix milliseconds; zero means now.
type Event struct {
	Type   string   `json:"type"` // press, move, release, wheel, wheel_horizontal
	ID     int      `json:"id,omitempty"`
	Button string   `json:"button,omitempty"` // "" or "primary", "secondary"
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Step   float64  `json:"step,omitempty"`
	Mods   []string `json:"mods,omitempty"` // shift, ctrl, alt
	TimeMs int64    `json:"t_ms,omitempty"`
}

// EventsHandler bridges the engine over a websocket: clients send raw
// input events and receive every decided gesture as JSON.
type EventsHandler struct {
	app     *app.App
	clients map[*websocket.Conn]*sync.Mutex
	mu      sync.RWMutex
}

// NewEventsHandler creates a new EventsHandler bound to the app. It
// registers itself as the app's decision subscriber.
func NewEventsHandler(a *app.App) *EventsHandler {
	h := &EventsHandler{
		app:     a,
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
	a.OnDecision(h.broadcast)
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = &sync.Mutex{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			break
		}
		h.apply(ev)
	}
}

// apply feeds one event into the engine. Unknown event types are logged
// and skipped so one bad client message cannot kill the stream.
func (h *EventsHandler) apply(ev Event) {
	t := time.Now()
	if ev.TimeMs != 0 {
		t = time.UnixMilli(ev.TimeMs)
	}

	switch ev.Type {
	case "press":
		button := gesture.ButtonPrimary
		if ev.Button == "secondary" {
			button = gesture.ButtonSecondary
		}
		h.app.Press(gesture.ContactID(ev.ID), button, ev.X, ev.Y, t)
	case "move":
		h.app.Move(gesture.ContactID(ev.ID), ev.X, ev.Y, t)
	case "release":
		h.app.Release(gesture.ContactID(ev.ID), ev.X, ev.Y, t)
	case "wheel":
		h.app.Wheel(ev.X, ev.Y, ev.Step, parseMods(ev.Mods))
	case "wheel_horizontal":
		h.app.WheelHorizontal(ev.X, ev.Y, ev.Step)
	default:
		log.Printf("events: unknown event type %q", ev.Type)
	}
}

// broadcast sends a decided gesture to every connected client. Writes are
// serialized per connection; a failed write leaves the connection for the
// read loop to reap.
func (h *EventsHandler) broadcast(d gesture.Decision) {
	msg, err := json.Marshal(d)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn, wmu := range h.clients {
		wmu.Lock()
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("events: write failed: %v", err)
		}
		wmu.Unlock()
	}
}

// parseMods converts modifier names into the engine's modifier mask.
func parseMods(mods []string) gesture.Modifiers {
	var m gesture.Modifiers
	for _, s := range mods {
		switch s {
		case "shift":
			m |= gesture.ModShift
		case "ctrl", "control":
			m |= gesture.ModCtrl
		case "alt", "option":
			m |= gesture.ModAlt
		}
	}
	return m
}
