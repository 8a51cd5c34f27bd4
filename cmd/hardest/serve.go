package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hardest-game/internal/leaderboard"
	"github.com/vovakirdan/hardest-game/internal/platform/tui"
	"github.com/vovakirdan/hardest-game/internal/registry"
	"github.com/vovakirdan/hardest-game/internal/storage"
	"github.com/vovakirdan/hardest-game/internal/world"
)

var (
	flagAddr        string
	flagDBPath      string
	flagServeWorld  string
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the leaderboard server",
	Long: `Start the HTTP leaderboard server.

Endpoints:
  GET  /leaderboard   - Board as JSON, best first (?limit=N)
  POST /submit        - Submit {"player": "...", "score": ticks}
  GET  /world         - The world document clients play
  GET  /health        - Liveness check
  GET  /ws            - Websocket feed pushing the board after each submission

Scores live in memory unless --db is given. With --ssh the game itself is
also served over SSH; every SSH user plays under their SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.hardest/host_key

Examples:
  hardest serve                                # :3000, in-memory board
  hardest serve --db ./scores.db               # Persistent board
  hardest serve --world ./level.yaml           # Serve a custom world
  hardest serve --ssh :23234                   # Also serve the game over SSH

Players connect with:
  hardest --server http://<host>:3000
  ssh <host> -p 23234`,
	Run: runServe,
}

func init() {
	sshDefaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":3000", "HTTP listen address")
	serveCmd.Flags().StringVar(&flagDBPath, "db", "", "SQLite database for scores (in-memory if empty)")
	serveCmd.Flags().StringVar(&flagServeWorld, "world", "", "World document to serve (default: --level)")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "Also serve the game over SSH at this address (e.g. "+sshDefaults.Address+")")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(sshDefaults.IdleTimeout/time.Minute), "SSH idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger(os.Stderr, "hardest-server")

	var doc world.Document
	var err error
	if flagServeWorld != "" {
		doc, err = world.LoadDocument(flagServeWorld)
	} else {
		doc, err = registry.Document(cfg.Level)
	}
	if err != nil {
		exitf("Error: %v", err)
	}

	var store leaderboard.Store = leaderboard.NewBoard()
	var db *storage.Store
	if flagDBPath != "" {
		db, err = storage.Open(flagDBPath)
		if err != nil {
			exitf("Error opening scores database: %v", err)
		}
		defer db.Close()
		store = db
	}

	server, err := leaderboard.NewServer(store, doc, logger)
	if err != nil {
		exitf("Error creating server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	running := 1
	go func() { errCh <- server.ListenAndServe(ctx, flagAddr) }()

	if flagSSHAddr != "" {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		env := tui.Env{
			Config:  cfg,
			Runtime: runtimeConfig(width, height),
			Level:   cfg.Level,
			World:   doc,
			Client:  leaderboard.NewClient(localURL(flagAddr), cfg.Server.Timeout),
			Store:   db,
			Logger:  logger.WithPrefix("hardest-ssh"),
		}
		if flagServeWorld != "" {
			env.Level = serverLevel
		}

		sshCfg := tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		}
		sshServer, sshErr := tui.NewSSHServer(sshCfg, env)
		if sshErr != nil {
			exitf("Error creating SSH server: %v", sshErr)
		}
		running++
		go func() { errCh <- sshServer.ListenAndServe(ctx) }()
		fmt.Printf("Serving the game over SSH on %s\n", sshCfg.Address)
	}

	fmt.Printf("Leaderboard listening on %s\n", flagAddr)
	fmt.Println("Press Ctrl+C to stop")

	var firstErr error
	for range running {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			stop() // bring the other server down too
		}
	}
	if firstErr != nil {
		if db != nil {
			db.Close()
		}
		exitf("Server error: %v", firstErr)
	}
}

// localURL turns a listen address into a URL reachable from this host.
func localURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}
