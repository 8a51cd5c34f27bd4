package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hardest-game/internal/config"
	"github.com/vovakirdan/hardest-game/internal/core"
	"github.com/vovakirdan/hardest-game/internal/leaderboard"
	"github.com/vovakirdan/hardest-game/internal/storage"
	"github.com/vovakirdan/hardest-game/internal/world"
)

// submitWait bounds how long Run waits for pending score submissions
// after the program exits.
const submitWait = 2 * time.Second

// Env is everything a play session needs from the outside world.
// Client and Store are optional; without them the game runs offline.
type Env struct {
	Config  config.Config
	Runtime core.RuntimeConfig
	Player  string
	Level   string
	World   world.Document
	Client  *leaderboard.Client
	Store   *storage.Store
	Logger  *log.Logger
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

func (e Env) tickRate() int {
	if e.Runtime.TickRate <= 0 {
		return core.DefaultConfig().TickRate
	}
	return e.Runtime.TickRate
}
