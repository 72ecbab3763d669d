package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ayusman/sparsh/internal/app"
	"github.com/ayusman/sparsh/internal/config"
	"github.com/ayusman/sparsh/internal/gesture"
	"github.com/ayusman/sparsh/internal/server"
	"github.com/ayusman/sparsh/internal/store"
	"github.com/ayusman/sparsh/internal/tray"
)

func main() {
	fmt.Println("Sparsh - Gesture Classification Engine")

	// Load configuration; a missing file yields defaults
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize the store
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "sparsh.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Build the engine
	a := app.New(app.Config{
		Store:         st,
		PluginDir:     cfg.PluginDir,
		PluginTimeout: cfg.PluginTimeout(),
		Thresholds:    cfg.Thresholds.GestureConfig(),
	})
	if err := a.ReloadProfile(); err != nil {
		log.Printf("Failed to apply active profile: %v", err)
	}
	if err := a.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}
	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}
	defer a.Stop()

	// Configure and start the server
	srv := server.New(server.Config{
		Store: st,
		App:   a,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.ListenAddr)
		if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Run the tray on the main thread; it blocks until Quit
	tr := tray.New()
	tr.OnToggle(a.SetEnabled)
	tr.OnSettings(func() {
		openBrowser("http://" + cfg.ListenAddr + "/api/status")
	})
	a.OnDecision(func(d gesture.Decision) {
		tr.SetLastGesture(string(d.Kind))
	})
	tr.Run()
}

// openBrowser opens url with the platform's default handler.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
