package plugin

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeManifest creates a plugin directory under root with the given
// manifest and returns its path.
func writeManifest(t *testing.T, root string, manifest Manifest) string {
	t.Helper()

	dir := filepath.Join(root, manifest.Name)
	if manifest.Name == "" {
		dir = filepath.Join(root, "anonymous")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}

	data, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("failed to marshal manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), data, 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return dir
}

func TestManager_DiscoverFindsPlugins(t *testing.T) {
	root := t.TempDir()
	dir := writeManifest(t, root, Manifest{
		Name:        "pager",
		Version:     "1.0.0",
		Description: "Turns pages",
		Executable:  "pager",
		Actions:     []string{"page", "scroll"},
	})

	m := NewManager(root)
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	p, err := m.Get("pager")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.Dir != dir {
		t.Errorf("Dir = %q, want %q", p.Dir, dir)
	}
	if want := filepath.Join(dir, "pager"); p.Exec != want {
		t.Errorf("Exec = %q, want %q", p.Exec, want)
	}
	if !p.Manifest.Supports("page") || !p.Manifest.Supports("scroll") {
		t.Error("manifest does not support its own actions")
	}
	if p.Manifest.Supports("zoom") {
		t.Error("Supports(zoom) = true for an unlisted action")
	}
}

func TestManager_ListIsSortedByName(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"zoomer", "pager", "logger"} {
		writeManifest(t, root, Manifest{Name: name, Executable: name})
	}

	m := NewManager(root)
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	plugins := m.List()
	if len(plugins) != 3 {
		t.Fatalf("len(List()) = %d, want 3", len(plugins))
	}
	for i, want := range []string{"logger", "pager", "zoomer"} {
		if plugins[i].Manifest.Name != want {
			t.Errorf("List()[%d] = %q, want %q", i, plugins[i].Manifest.Name, want)
		}
	}
}

func TestManager_DiscoverReplacesPreviousSet(t *testing.T) {
	root := t.TempDir()
	dir := writeManifest(t, root, Manifest{Name: "stale", Executable: "stale"})

	m := NewManager(root)
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	// Remove the plugin and rescan; it must disappear.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("failed to remove plugin dir: %v", err)
	}
	if err := m.Discover(); err != nil {
		t.Fatalf("second Discover() error = %v", err)
	}
	if _, err := m.Get("stale"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("Get(stale) error = %v, want ErrPluginNotFound", err)
	}
}

func TestManager_DiscoverSkipsBrokenManifests(t *testing.T) {
	root := t.TempDir()

	// Unparseable manifest.
	badDir := filepath.Join(root, "garbled")
	if err := os.MkdirAll(badDir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(badDir, ManifestName), []byte("not json"), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	// Manifest without an executable.
	writeManifest(t, root, Manifest{Name: "incomplete"})

	// Directory without any manifest.
	if err := os.MkdirAll(filepath.Join(root, "not-a-plugin"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	// And one good plugin among them.
	writeManifest(t, root, Manifest{Name: "good", Executable: "good"})

	m := NewManager(root)
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	plugins := m.List()
	if len(plugins) != 1 || plugins[0].Manifest.Name != "good" {
		t.Fatalf("List() = %v, want only the good plugin", plugins)
	}
}

func TestManager_DiscoverMissingRoot(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "does-not-exist"))

	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() error = %v on a missing root", err)
	}
	if got := m.List(); len(got) != 0 {
		t.Fatalf("len(List()) = %d, want 0", len(got))
	}
}

func TestManager_GetUnknown(t *testing.T) {
	m := NewManager(t.TempDir())

	if _, err := m.Get("nope"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("Get() error = %v, want ErrPluginNotFound", err)
	}
}

func TestManager_PluginDir(t *testing.T) {
	root := t.TempDir()
	if got := NewManager(root).PluginDir(); got != root {
		t.Errorf("PluginDir() = %q, want %q", got, root)
	}
}
