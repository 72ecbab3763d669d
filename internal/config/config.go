// Package config loads and writes the daemon's TOML configuration file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ayusman/sparsh/internal/store"
)

// FileName is the configuration file name inside the config directory.
const FileName = "config.toml"

// Config holds the daemon configuration. Threshold overrides from the
// [thresholds] section apply when no profile is active in the database.
type Config struct {
	ListenAddr      string           `toml:"listen_addr"`
	DataDir         string           `toml:"data_dir"`
	PluginDir       string           `toml:"plugin_dir"`
	PluginTimeoutMs int              `toml:"plugin_timeout_ms"`
	Thresholds      store.Thresholds `toml:"thresholds"`
}

// Default returns the configuration used when no file exists yet.
func Default() Config {
	return Config{
		ListenAddr:      "127.0.0.1:8750",
		DataDir:         dataDir(),
		PluginDir:       filepath.Join(dataDir(), "plugins"),
		PluginTimeoutMs: 5000,
	}
}

// PluginTimeout returns the plugin execution bound as a duration.
func (c Config) PluginTimeout() time.Duration {
	return time.Duration(c.PluginTimeoutMs) * time.Millisecond
}

// Dir returns the directory holding the configuration file, honoring
// XDG_CONFIG_HOME.
func Dir() string {
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config")), "sparsh")
}

// Path returns the full path of the configuration file.
func Path() string {
	return filepath.Join(Dir(), FileName)
}

// Load reads the configuration from path. A missing file yields the
// defaults, so a fresh install needs no setup step.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return cfg, nil
}

// Write persists the configuration to path, creating the directory if
// needed.
func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// dataDir returns the default data directory, honoring XDG_DATA_HOME.
func dataDir() string {
	return filepath.Join(xdgOrFallback("XDG_DATA_HOME", filepath.Join(os.Getenv("HOME"), ".local", "share")), "sparsh")
}

func xdgOrFallback(xdg, fallback string) string {
	if dir := os.Getenv(xdg); dir != "" {
		return dir
	}
	return fallback
}
