package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hardest-game/internal/config"
	"github.com/vovakirdan/hardest-game/internal/core"
	"github.com/vovakirdan/hardest-game/internal/game"
	"github.com/vovakirdan/hardest-game/internal/leaderboard"
	"github.com/vovakirdan/hardest-game/internal/storage"
	"github.com/vovakirdan/hardest-game/internal/world"
)

// GameModel is the Bubble Tea model for one play session. One TickMsg
// advances the simulation by exactly one tick.
type GameModel struct {
	env        Env
	session    *game.Session
	renderer   *game.Renderer
	flash      *game.Flash
	screen     *core.Screen
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	finished   bool
	pending    <-chan error
}

// NewGameModel starts a session on env.World.
func NewGameModel(env Env) (GameModel, error) {
	w, err := world.FromDocument(env.World)
	if err != nil {
		return GameModel{}, fmt.Errorf("level %s: %w", env.Level, err)
	}

	display := env.Config.Display
	return GameModel{
		env:        env,
		session:    game.NewSession(w, env.Config.PlayerParams()),
		renderer:   game.NewRenderer(display.ViewHeight, display.CameraLead),
		flash:      game.NewFlash(float32(display.FlashDuration)),
		screen:     core.NewScreen(env.Runtime.ScreenW, env.Runtime.ScreenH),
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}, nil
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.env.tickRate())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if action := m.keyMapper.MapMouse(msg); action != core.ActionNone {
			m.inputFrame.Set(action)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.env.Runtime.ScreenW = msg.Width
		m.env.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if m.quitting || m.backToMenu {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.finish()
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.finish()
		m.backToMenu = true
		return m, nil
	case action == core.ActionToggle:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleTick processes one simulation tick.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.session.Step(m.inputFrame)
	if result.Toggled {
		m.flash.Trigger()
	}
	if result.Outcome == world.Died {
		m.env.logger().Debug("attempt ended", "attempt", result.Attempts, "best", result.Best)
	}
	m.flash.Update(1 / float32(m.env.tickRate()))

	m.inputFrame.Clear()
	return m, tickCmd(m.env.tickRate())
}

// finish records the session once: the best attempt goes to the
// leaderboard in the background and the run goes to the local history.
func (m *GameModel) finish() {
	if m.finished {
		return
	}
	m.finished = true

	best := m.session.Best()
	logger := m.env.logger()
	logger.Info("session finished",
		"level", m.env.Level,
		"best", best,
		"attempts", m.session.Attempts(),
		"seconds", core.TicksToSeconds(best),
	)

	if best > 0 && m.env.Client != nil {
		m.pending = m.env.Client.SubmitAsync(leaderboard.Score{
			Player: m.env.Player,
			Score:  uint32(best),
		}, logger)
	}

	if m.env.Store != nil && m.session.Ticks() > 0 {
		_, err := m.env.Store.SaveRun(storage.Run{
			Level:    m.env.Level,
			Player:   m.env.Player,
			Best:     uint32(best),
			Attempts: m.session.Attempts(),
			Ticks:    m.session.Ticks(),
		})
		if err != nil {
			logger.Warn("could not save run", "error", err)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.renderer.Render(m.screen, m.session, m.flash.Level())

	dir := config.UserDir()
	if dir == "" {
		return
	}
	dir = filepath.Join(dir, "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.env.Level, timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.renderer.Render(m.screen, m.session, m.flash.Level())
	return RenderScreen(m.screen)
}

// Session returns the running session.
func (m GameModel) Session() *game.Session {
	return m.session
}

// Best returns the best attempt of this session, in ticks.
func (m GameModel) Best() int {
	return m.session.Best()
}

// Pending returns the background submission, or nil if none was started.
func (m GameModel) Pending() <-chan error {
	return m.pending
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
