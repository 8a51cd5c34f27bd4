package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hardest-game/internal/config"
	"github.com/vovakirdan/hardest-game/internal/leaderboard"
	"github.com/vovakirdan/hardest-game/internal/platform/tui"
	"github.com/vovakirdan/hardest-game/internal/registry"
	"github.com/vovakirdan/hardest-game/internal/storage"
	"github.com/vovakirdan/hardest-game/internal/world"
)

// serverLevel labels runs played on the world fetched from the server.
const serverLevel = "server"

var (
	flagOffline   bool
	flagWorldFile string
	flagPlayer    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start playing.

The world comes from the leaderboard server unless --level, --world or
--offline says otherwise. If the server's world cannot be fetched or is
invalid the game does not start; pass --offline or --level to play a
built-in level instead.

Controls:
  Space/Click  - Flip direction
  Esc/B        - Back to menu (submits your best run)
  Ctrl+S       - Save a screenshot to ~/.hardest/screenshots
  Q/Ctrl+C     - Quit

Examples:
  hardest play
  hardest play --level practice
  hardest play --world ./my-level.yaml --offline
  hardest play --server http://scores.example.com:3000 --player neo`,
	Run: runPlay,
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagOffline, "offline", false, "Do not contact the leaderboard server")
	cmd.Flags().StringVar(&flagWorldFile, "world", "", "Play a world document (.json, .yaml, .toml)")
	cmd.Flags().StringVar(&flagPlayer, "player", "", "Leaderboard name (default from config or $USER)")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(); err != nil {
		exitf("Error: %v", err)
	}
}

// play runs the game until the player quits. Deferred cleanup runs before
// the caller exits on error.
func play() error {
	cfg := loadConfig()
	if flagPlayer != "" {
		cfg.Player.Name = flagPlayer
	}

	logOut, closeLog := openLogFile()
	defer closeLog()
	logger := newLogger(logOut, "hardest")

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	env := tui.Env{
		Config:  cfg,
		Runtime: runtimeConfig(width, height),
		Player:  cfg.PlayerName(),
		Logger:  logger,
	}

	if !flagOffline {
		env.Client = leaderboard.NewClient(cfg.Server.URL, cfg.Server.Timeout)
	}

	// An explicit --level picks a built-in level over the server's world.
	doc, level, err := chooseWorld(cfg, env.Client, flagLevel != "", logger)
	if err != nil {
		logger.Error("no world to play", "error", err)
		return err
	}
	env.World = doc
	env.Level = level

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}
	env.Store = store

	logger.Info("starting", "player", env.Player, "level", env.Level, "server", cfg.Server.URL, "offline", flagOffline)
	if err := tui.Run(env); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// chooseWorld picks the world to play. A --world file wins. Without a
// client (--offline) or with an explicit --level the built-in level is
// used. Otherwise the server's world is required: a fetch or validation
// failure is returned and nothing is substituted for it.
func chooseWorld(cfg config.Config, client *leaderboard.Client, levelChosen bool, logger *log.Logger) (world.Document, string, error) {
	if flagWorldFile != "" {
		doc, err := world.LoadDocument(flagWorldFile)
		if err != nil {
			return world.Document{}, "", err
		}
		name := filepath.Base(flagWorldFile)
		return doc, strings.TrimSuffix(name, filepath.Ext(name)), nil
	}

	if client == nil || levelChosen {
		if !registry.Exists(cfg.Level) {
			return world.Document{}, "", fmt.Errorf("unknown level %q (run 'hardest levels')", cfg.Level)
		}
		doc, err := registry.Document(cfg.Level)
		return doc, cfg.Level, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	doc, err := client.FetchWorld(ctx)
	if err != nil {
		return world.Document{}, "", fmt.Errorf("fetching world from %s: %w (use --offline to play a built-in level)", client.BaseURL(), err)
	}
	if _, err := world.FromDocument(doc); err != nil {
		return world.Document{}, "", fmt.Errorf("world from %s: %w", client.BaseURL(), err)
	}
	logger.Debug("using server world", "server", client.BaseURL())
	return doc, serverLevel, nil
}
