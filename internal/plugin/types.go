// Package plugin runs gesture actions as out-of-process executables.
// Each plugin lives in its own directory with a plugin.json manifest;
// an invocation writes one Request to the child's stdin and reads one
// Response from its stdout.
package plugin

import (
	"encoding/json"

	"github.com/ayusman/sparsh/internal/gesture"
)

// Manifest describes a plugin's metadata and the actions it offers.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Actions      []string        `json:"actions"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Supports reports whether the manifest lists the action.
func (m Manifest) Supports(action string) bool {
	for _, a := range m.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// Request is one action invocation delivered to a plugin. Decision is
// the classified gesture verbatim (wire field "params"), so the plugin
// sees the same kind, focus point, deltas and flags the engine decided.
// Gesture mirrors Decision.Kind for plugins that never parse params.
// Config is the binding's opaque per-plugin configuration.
type Request struct {
	Action   string           `json:"action"`
	Gesture  gesture.Kind     `json:"gesture"`
	Config   json.RawMessage  `json:"config,omitempty"`
	Decision gesture.Decision `json:"params"`
}

// Response is a plugin's reply. A run that completes but cannot perform
// the action reports Success=false with Error set; Data is optional
// action-specific output.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin is a discovered plugin rooted at Dir. Exec is the absolute path
// of its executable.
type Plugin struct {
	Manifest Manifest
	Dir      string
	Exec     string
}
