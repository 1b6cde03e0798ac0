// sandbox is a terminal 2D physics sandbox: a box-shaped body falls,
// jumps and collides with barriers drawn as terminal cells.
//
// Usage:
//
//	sandbox list              - List available scenes
//	sandbox play <scene>      - Play a scene
//	sandbox menu              - Start menu to pick scenes interactively
//	sandbox runs <scene>      - Show recorded runs for a scene
//	sandbox serve             - Start SSH server for remote play
//	sandbox settings show     - Print the effective settings
//	sandbox settings init     - Write the default settings file
//
// Global flags:
//
//	--fps <rate>         - Override the frame cap from the settings
//	--db <path>          - Set database path (default: ~/.sandbox/runs.db)
//	--settings <path>    - Read settings from this YAML file
//	--scenes <dir>       - Load extra scene files from this directory
//	--log <path>         - Log file (default: ~/.sandbox/sandbox.log)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox"
)

var (
	// Global flags
	flagFPS       float64
	flagDBPath    string
	flagSettings  string
	flagScenesDir string
	flagLogPath   string
	flagLogLevel  string
)

var (
	// Set up by the root command before any subcommand runs.
	settings *config.Settings
	logger   *log.Logger
	logFile  io.Closer
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "2D Physics Sandbox - push a box around in your terminal",
	Long: `2D Physics Sandbox is a small rigid-body playground rendered in the
terminal. A body falls under gravity, jumps, walks into detection boxes
and lands on platforms. Every session is recorded in a local run history.

Available commands:
  list      - Show all available scenes
  play      - Play a specific scene directly
  menu      - Interactive scene picker menu
  runs      - View recorded runs
  serve     - Start SSH server for remote play
  settings  - Show or initialize the settings file

Examples:
  sandbox list
  sandbox play box
  sandbox menu --fps 30
  sandbox serve --ssh :2222
  sandbox runs platforms`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&flagFPS, "fps", 0, "Frame cap override (0 = use settings)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sandbox/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagScenesDir, "scenes", "", "Directory with extra scene files")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.sandbox/sandbox.log", "Path to log file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(settingsCmd)
}

// setup loads settings, opens the log file and registers scene files.
func setup(_ *cobra.Command, _ []string) error {
	var err error
	settings, err = config.Load(flagSettings)
	if err != nil {
		return err
	}
	if flagFPS > 0 {
		settings.SetFPSCap(flagFPS)
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(openLog(flagLogPath), log.Options{
		ReportTimestamp: true,
		Level:           level,
	})

	dir := flagScenesDir
	if dir == "" {
		dir = settings.Paths.ScenesDir
	}
	if dir != "" {
		added, regErr := sandbox.RegisterDir(config.ExpandHome(dir))
		if regErr != nil {
			logger.Warn("some scene files were skipped", "dir", dir, "error", regErr)
		}
		logger.Info("scene files loaded", "dir", dir, "count", added)
	}
	return nil
}

// openLog opens path for appending. The TUI owns the terminal, so if the
// file cannot be opened logs are dropped rather than printed.
func openLog(path string) io.Writer {
	path = config.ExpandHome(path)
	if path == "" {
		return io.Discard
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create log directory: %v\n", err)
		return io.Discard
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return io.Discard
	}
	logFile = f
	return f
}

func teardown(_ *cobra.Command, _ []string) error {
	if logFile != nil {
		return logFile.Close()
	}
	return nil
}
