package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/platform/tui"
	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <scene>",
	Short: "Play a scene",
	Long: `Start the specified scene.

Controls:
  A/D, Left/Right  - Push left/right
  W, Up, Space     - Jump (when grounded)
  S, Down          - Dive
  T                - Respawn (records the run)
  P                - Pause
  E                - Wireframe
  I/J/K/L          - Pan camera
  +/-              - Zoom
  0                - Reset camera
  Ctrl+S           - Save a text screenshot
  ?                - Full help
  Q/Ctrl+C         - Quit

Examples:
  sandbox play box
  sandbox play platforms --fps 30
  sandbox play my-level --scenes ./scenes`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

// terminalConfig builds a runtime config from the terminal size.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = int(settings.FPSCap)
	return cfg
}

// openStore opens the run history, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		logger.Warn("could not open run database", "error", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) {
	sceneID := args[0]

	if !registry.Exists(sceneID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", sceneID)
		fmt.Fprintln(os.Stderr, "Run 'sandbox list' to see available scenes.")
		os.Exit(1)
	}

	sc, err := registry.Create(sceneID, registry.Env{Settings: settings, Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	runErr := tui.Run(sc, store, settings, terminalConfig(), logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running scene: %v\n", runErr)
		os.Exit(1)
	}
}
