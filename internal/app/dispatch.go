package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ayusman/sparsh/internal/gesture"
	"github.com/ayusman/sparsh/internal/plugin"
	"github.com/ayusman/sparsh/internal/store"
)

// handleDecision receives every decision from the engine. It records the
// last gesture, notifies subscribers, and hands the decision to the
// dispatch worker so plugin execution never stalls classification.
func (a *App) handleDecision(d gesture.Decision) {
	a.mu.Lock()
	a.lastGesture = d
	a.hasLast = true
	subs := a.subs
	ch := a.dispatchCh
	a.mu.Unlock()

	for _, fn := range subs {
		fn(d)
	}

	if ch == nil {
		return
	}
	select {
	case ch <- d:
	default:
		log.Printf("Dispatch queue full, dropping %v", d)
	}
}

// runDispatch is the worker loop executing plugin actions for decided
// gestures.
func (a *App) runDispatch(ch chan gesture.Decision, stop chan struct{}) {
	defer a.wg.Done()

	for {
		select {
		case <-stop:
			return
		case d := <-ch:
			a.executeBindings(d)
		}
	}
}

// executeBindings runs every enabled plugin action bound to the decided
// gesture's kind. A gesture with no bindings is silently skipped.
func (a *App) executeBindings(d gesture.Decision) {
	if a.config.Store == nil {
		return
	}

	bindings, err := a.config.Store.Bindings().GetByGesture(string(d.Kind))
	if err != nil {
		log.Printf("Failed to load bindings for %s: %v", d.Kind, err)
		return
	}

	for _, b := range bindings {
		if err := a.executeBinding(b, d); err != nil {
			log.Printf("Binding %s (%s/%s) failed: %v", b.ID, b.PluginName, b.ActionName, err)
		}
	}
}

// executeBinding invokes one plugin action with the decision as params.
func (a *App) executeBinding(b *store.Binding, d gesture.Decision) error {
	p, err := a.pluginMgr.Get(b.PluginName)
	if err != nil {
		return err
	}
	if !p.Manifest.Supports(b.ActionName) {
		return fmt.Errorf("plugin %s has no action %q", b.PluginName, b.ActionName)
	}

	req := &plugin.Request{
		Action:   b.ActionName,
		Gesture:  d.Kind,
		Config:   b.Config,
		Decision: d,
	}

	resp, err := a.pluginExec.Execute(context.Background(), p, req)
	if err != nil {
		return err
	}
	if !resp.Success {
		return errors.New(resp.Error)
	}

	log.Printf("Executed %s/%s for %s", b.PluginName, b.ActionName, d.Kind)
	return nil
}
