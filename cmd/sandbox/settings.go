package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-sandbox/internal/config"
)

var flagForce bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or initialize sandbox settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings and derived values",
	RunE:  runSettingsShow,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default settings file",
	Long: `Write the default settings to ~/.sandbox/settings.yaml, or to the
given path. Existing files are kept unless --force is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsInit,
}

func init() {
	settingsInitCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsInitCmd)
}

func runSettingsShow(_ *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("cannot encode settings: %w", err)
	}
	fmt.Print(string(data))

	d := settings.Derived
	fmt.Println()
	fmt.Println("# derived")
	fmt.Printf("# window: %dx%d\n", d.WindowWidth, d.WindowHeight)
	fmt.Printf("# aspect ratio: %.4f\n", d.AspectRatio)
	fmt.Printf("# seconds per frame: %.4f\n", d.SPFCap)
	fmt.Printf("# virtual size: %.2f x %.2f\n", d.VirtualWidth, d.VirtualHeight)
	return nil
}

func runSettingsInit(_ *cobra.Command, args []string) error {
	path := config.UserPath(config.SettingsFile)
	if len(args) == 1 {
		path = config.ExpandHome(args[0])
	}
	if path == "" {
		return errors.New("cannot resolve settings path: home directory unavailable")
	}

	if _, err := os.Stat(path); err == nil && !flagForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := config.DefaultSettings().Save(path); err != nil {
		return err
	}
	fmt.Printf("Wrote default settings to %s\n", path)
	return nil
}
