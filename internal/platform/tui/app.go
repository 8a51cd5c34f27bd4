package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenStats
	screenBoard
)

// AppModel manages the full client flow: menu -> game/statistics/leaderboard -> menu.
// This is the top-level model for both local play and SSH sessions.
type AppModel struct {
	env      Env
	current  screen
	menu     MenuModel
	game     *GameModel
	stats    StatisticsModel
	board    ScoreboardModel
	best     int // best attempt over every game of this process
	pending  []<-chan error
	quitting bool
}

// NewAppModel creates the app on the title menu.
func NewAppModel(env Env) AppModel {
	m := AppModel{env: env}
	m.menu = m.newMenu()
	return m
}

// newMenu builds the title menu, showing the personal best from the run
// history when there is one.
func (m AppModel) newMenu() MenuModel {
	menu := NewMenuModel(m.env.Player, m.env.Level, m.env.Runtime.ScreenW, m.env.Runtime.ScreenH)
	if m.env.Store == nil {
		return menu
	}
	best, err := m.env.Store.PersonalBest(m.env.Level, m.env.Player)
	if err != nil {
		m.env.logger().Warn("could not load personal best", "error", err)
		return menu
	}
	return menu.WithPersonalBest(best)
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.env.Runtime.ScreenW = wsm.Width
		m.env.Runtime.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenStats:
		return m.updateStats(msg)
	case screenBoard:
		return m.updateBoard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.menu.Update(msg)
	if menuModel, ok := updated.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Selected() {
	case ChoiceNewGame:
		gm, err := NewGameModel(m.env)
		if err != nil {
			m.env.logger().Error("could not start game", "error", err)
			return m.toMenu()
		}
		m.game = &gm
		m.current = screenGame
		return m, m.game.Init()

	case ChoiceStatistics:
		m.stats = NewStatisticsModel(m.env, m.best)
		m.current = screenStats
		return m, m.stats.Init()

	case ChoiceLeaderboard:
		m.board = NewScoreboardModel(m.env)
		m.current = screenBoard
		return m, m.board.Init()
	}

	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() || m.game.IsQuitting() {
		m.best = max(m.best, m.game.Best())
		if p := m.game.Pending(); p != nil {
			m.pending = append(m.pending, p)
		}
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game = nil
		return m.toMenu()
	}

	return m, cmd
}

func (m AppModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.stats.Update(msg)
	if statsModel, ok := newModel.(StatisticsModel); ok {
		m.stats = statsModel
	}

	if m.stats.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.stats.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m AppModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.board.Update(msg)
	if boardModel, ok := newModel.(ScoreboardModel); ok {
		m.board = boardModel
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m AppModel) toMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenStats:
		return m.stats.View()
	case screenBoard:
		return m.board.View()
	default:
		return m.menu.View()
	}
}

// Best returns the best attempt over every game of this app, in ticks.
func (m AppModel) Best() int {
	return m.best
}

// WaitPending waits up to timeout for background score submissions.
// Returns the number of submissions that did not finish in time.
func (m AppModel) WaitPending(timeout time.Duration) int {
	deadline := time.After(timeout)
	left := len(m.pending)
	for _, p := range m.pending {
		select {
		case <-p:
			left--
		case <-deadline:
			return left
		}
	}
	return left
}

// Run starts the Bubble Tea program for a local player and waits briefly
// for pending score submissions once it exits.
func Run(env Env) error {
	p := tea.NewProgram(
		NewAppModel(env),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if app, ok := finalModel.(AppModel); ok {
		if left := app.WaitPending(submitWait); left > 0 {
			env.logger().Warn("score submission still pending at exit", "count", left)
		}
	}
	return nil
}
