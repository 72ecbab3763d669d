package plugin

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ManifestName is the manifest file every plugin directory must carry.
const ManifestName = "plugin.json"

// ErrPluginNotFound is returned when a requested plugin cannot be found.
var ErrPluginNotFound = errors.New("plugin not found")

// Manager discovers plugins under a root directory. Each subdirectory
// with a plugin.json manifest naming an executable is a plugin; anything
// else is skipped.
type Manager struct {
	root string

	mu      sync.RWMutex
	plugins map[string]*Plugin
}

// NewManager creates a Manager discovering plugins under root.
func NewManager(root string) *Manager {
	return &Manager{
		root:    root,
		plugins: make(map[string]*Plugin),
	}
}

// Discover rescans the root directory, replacing the known plugin set.
// A missing root is a fresh install, not an error. Directories with a
// broken or incomplete manifest are logged and skipped so one bad plugin
// cannot block the rest.
func (m *Manager) Discover() error {
	entries, err := os.ReadDir(m.root)
	if errors.Is(err, os.ErrNotExist) {
		m.replace(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read plugin directory: %w", err)
	}

	var found []*Plugin
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		p, err := loadPlugin(filepath.Join(m.root, entry.Name()))
		if err != nil {
			log.Printf("Skipping plugin %s: %v", entry.Name(), err)
			continue
		}
		if p != nil {
			found = append(found, p)
		}
	}

	m.replace(found)
	return nil
}

// loadPlugin reads one plugin directory. A directory without a manifest
// is not a plugin and yields (nil, nil).
func loadPlugin(dir string) (*Plugin, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	if manifest.Name == "" || manifest.Executable == "" {
		return nil, errors.New("manifest needs a name and an executable")
	}

	return &Plugin{
		Manifest: manifest,
		Dir:      dir,
		Exec:     filepath.Join(dir, manifest.Executable),
	}, nil
}

// replace swaps in a freshly discovered plugin set.
func (m *Manager) replace(found []*Plugin) {
	plugins := make(map[string]*Plugin, len(found))
	for _, p := range found {
		plugins[p.Manifest.Name] = p
	}

	m.mu.Lock()
	m.plugins = plugins
	m.mu.Unlock()
}

// Get returns a plugin by manifest name, or ErrPluginNotFound.
func (m *Manager) Get(name string) (*Plugin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.plugins[name]
	if !ok {
		return nil, ErrPluginNotFound
	}
	return p, nil
}

// List returns all discovered plugins ordered by name.
func (m *Manager) List() []*Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plugins := make([]*Plugin, 0, len(m.plugins))
	for _, p := range m.plugins {
		plugins = append(plugins, p)
	}
	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].Manifest.Name < plugins[j].Manifest.Name
	})
	return plugins
}

// PluginDir returns the discovery root.
func (m *Manager) PluginDir() string {
	return m.root
}
