// ledgewalk is a tile platformer with ledge-sensing enemies and a runtime
// terrain editor.
//
// Usage:
//
//	ledgewalk run               - Open the game window
//	ledgewalk check             - Assemble the level headless and report it
//	ledgewalk probe             - Tick the level headless and print sensor results
//
// Global flags:
//
//	--config <path>     - Config YAML (default search: ~/.ledgewalk, ./configs, embedded)
//	--level <path>      - Override the level map path
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"chosenoffset.com/ledgewalk/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagLevel    string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ledgewalk",
	Short: "Ledgewalk - a tile platformer with a terrain editor",
	Long: `Ledgewalk loads a Tiled level, spawns the player and enemies, and lets
you draw new solid terrain with the mouse while the level runs.

Available commands:
  run     - Open the game window
  check   - Validate and summarize a level without a window
  probe   - Run the simulation headless and print ledge sensor results

Examples:
  ledgewalk run
  ledgewalk check --level assets/maps/level_1.json
  ledgewalk probe --ticks 120 --every 10`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "", "Level map path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(probeCmd)
}

// loadConfig loads the config and applies the global flag overrides
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagLevel != "" {
		cfg.Level.Path = flagLevel
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, cfg.Validate()
}

// newLogger creates the stderr logger shared by every component
func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ledgewalk",
	})
	if level == "" {
		level = "info"
	}
	if lvl, err := log.ParseLevel(strings.ToLower(level)); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
