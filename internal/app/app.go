// Package app provides the main application logic for the Sparsh gesture
// daemon: it feeds input events to the classification engine, fans decided
// gestures out to subscribers, and executes bound plugin actions.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/sparsh/internal/clock"
	"github.com/ayusman/sparsh/internal/gesture"
	"github.com/ayusman/sparsh/internal/plugin"
	"github.com/ayusman/sparsh/internal/store"
)

// DispatchQueueSize bounds the decision queue feeding plugin execution;
// decisions past this are dropped, never blocked on.
const DispatchQueueSize = 64

// Config holds configuration options for the application.
type Config struct {
	Store         *store.Store
	PluginDir     string
	PluginTimeout time.Duration   // zero means plugin.DefaultTimeout
	Thresholds    gesture.Config  // fallback when no profile is active
	Scheduler     clock.Scheduler // nil means the wall clock
}

// App is the main application that orchestrates gesture classification
// and action execution.
type App struct {
	config     Config
	sched      clock.Scheduler
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor

	mu          sync.RWMutex
	rec         *gesture.Recognizer
	enabled     bool
	lastGesture gesture.Decision
	hasLast     bool
	subs        []func(gesture.Decision)
	dispatchCh  chan gesture.Decision
	stopCh      chan struct{}

	wg sync.WaitGroup
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	sched := config.Scheduler
	if sched == nil {
		sched = clock.NewWall()
	}

	a := &App{
		config:     config,
		sched:      sched,
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(config.PluginTimeout),
		enabled:    true,
	}
	a.rec = a.newRecognizer(config.Thresholds)
	return a
}

// newRecognizer builds an engine wired to the app's decision fan-out.
func (a *App) newRecognizer(cfg gesture.Config) *gesture.Recognizer {
	return gesture.NewRecognizer(cfg, a.sched, gesture.Handlers{
		Decision: a.handleDecision,
	})
}

// ReloadProfile rebuilds the engine from the active profile's thresholds.
// With no active profile the configuration-file thresholds apply.
// In-flight classification state is discarded.
func (a *App) ReloadProfile() error {
	cfg := a.config.Thresholds

	if a.config.Store != nil {
		p, err := a.config.Store.Profiles().GetActive()
		if err != nil {
			return err
		}
		if p != nil {
			cfg = p.Thresholds.GestureConfig()
			log.Printf("Loaded profile %q", p.Name)
		}
	}

	a.mu.Lock()
	a.rec.CancelAll()
	a.rec = a.newRecognizer(cfg)
	a.mu.Unlock()
	return nil
}

// SetEnabled enables or disables gesture classification. Disabling
// discards in-flight state so a later enable starts clean.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	rec := a.rec
	a.enabled = enabled
	a.mu.Unlock()

	if !enabled {
		rec.CancelAll()
	}
}

// IsEnabled returns whether gesture classification is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// OnDecision registers a callback receiving every decided gesture, e.g.
// the websocket bridge or the tray display. Callbacks run synchronously
// on the input delivery path and must not block.
func (a *App) OnDecision(fn func(gesture.Decision)) {
	a.mu.Lock()
	a.subs = append(a.subs, fn)
	a.mu.Unlock()
}

// LastGesture returns the most recently decided gesture, if any.
func (a *App) LastGesture() (gesture.Decision, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastGesture, a.hasLast
}

// Thresholds returns the engine's effective thresholds.
func (a *App) Thresholds() gesture.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.rec.Config()
}

// Press feeds a contact press into the engine.
func (a *App) Press(id gesture.ContactID, button gesture.Button, x, y float64, t time.Time) {
	if rec := a.recognizer(); rec != nil {
		rec.PressButton(id, button, x, y, t)
	}
}

// Move feeds contact motion into the engine.
func (a *App) Move(id gesture.ContactID, x, y float64, t time.Time) {
	if rec := a.recognizer(); rec != nil {
		rec.Move(id, x, y, t)
	}
}

// Release feeds a contact release into the engine.
func (a *App) Release(id gesture.ContactID, x, y float64, t time.Time) {
	if rec := a.recognizer(); rec != nil {
		rec.Release(id, x, y, t)
	}
}

// Wheel feeds a vertical wheel tick into the engine.
func (a *App) Wheel(x, y, step float64, mods gesture.Modifiers) {
	if rec := a.recognizer(); rec != nil {
		rec.Wheel(x, y, step, mods)
	}
}

// WheelHorizontal feeds a horizontal wheel tick into the engine.
func (a *App) WheelHorizontal(x, y, step float64) {
	if rec := a.recognizer(); rec != nil {
		rec.WheelHorizontal(x, y, step)
	}
}

// recognizer returns the current engine, or nil while disabled.
func (a *App) recognizer() *gesture.Recognizer {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.enabled {
		return nil
	}
	return a.rec
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Start launches the action dispatch worker.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	a.dispatchCh = make(chan gesture.Decision, DispatchQueueSize)
	a.stopCh = make(chan struct{})
	a.wg.Add(1)
	go a.runDispatch(a.dispatchCh, a.stopCh)

	log.Println("Gesture dispatch started")
	return nil
}

// Stop halts the dispatch worker and waits for in-flight actions.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh == nil {
		a.mu.Unlock()
		return
	}
	close(a.stopCh)
	a.stopCh = nil
	a.dispatchCh = nil
	a.mu.Unlock()

	a.wg.Wait()
	log.Println("Gesture dispatch stopped")
}
