// hardest is a one-button terminal platformer with an online leaderboard.
//
// Usage:
//
//	hardest                  - Play (same as 'hardest play')
//	hardest play             - Play the server's world, or a built-in level offline
//	hardest serve            - Start the leaderboard server (and optional SSH server)
//	hardest scores           - Show the leaderboard
//	hardest levels           - List built-in levels
//	hardest world dump       - Print a level as JSON, YAML or TOML
//	hardest world check      - Validate world documents
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--config <path>       - Config file (default search: ~/.hardest, ./configs, built-in)
//	--log-level <level>   - debug, info, warn or error
//	--server <url>        - Leaderboard server (overrides the config)
//	--level <id>          - Built-in level (overrides the config)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hardest-game/internal/config"
	"github.com/vovakirdan/hardest-game/internal/core"

	// Import game to register the built-in levels
	_ "github.com/vovakirdan/hardest-game/internal/game"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagLogLevel string
	flagServer   string
	flagLevel    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hardest",
	Short: "Hardest Game Ever - a one-button platformer in your terminal",
	Long: `Hardest Game Ever scrolls you through a corridor of walls, ramps and
moving blocks. Space flips the direction you accelerate in; touching anything
sends you back to the start. Your best run goes to a shared leaderboard.

Available commands:
  play     - Play (default)
  serve    - Start the leaderboard server
  scores   - View the leaderboard
  levels   - Show built-in levels
  world    - Dump or validate world documents

Examples:
  hardest
  hardest play --offline --level practice
  hardest serve --addr :3000 --db ./scores.db --ssh :23234
  hardest scores --watch
  hardest world dump --format yaml > level.yaml`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (simulation ticks per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "Leaderboard server URL (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "", "Built-in level to play (default from config)")

	addPlayFlags(rootCmd)
	addPlayFlags(playCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(worldCmd)
}

// loadConfig loads the config and applies the global flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		exitf("Error: %v", err)
	}
	if flagServer != "" {
		cfg.Server.URL = flagServer
	}
	if flagLevel != "" {
		cfg.Level = flagLevel
	}
	return cfg
}

// runtimeConfig returns the runtime config for a screen of the given size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.ScreenW = width
	rc.ScreenH = height
	if flagFPS > 0 {
		rc.TickRate = flagFPS
	}
	return rc
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		exitf("Error: %v", err)
	}
	logger.SetLevel(level)
	return logger
}

// openLogFile opens ~/.hardest/hardest.log for appending, so the TUI keeps
// the terminal to itself. Falls back to discarding output.
func openLogFile() (io.Writer, func()) {
	dir := config.UserDir()
	if dir == "" {
		return io.Discard, func() {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "hardest.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
