package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hardest-game/internal/leaderboard"
	"github.com/vovakirdan/hardest-game/internal/storage"
)

// StatisticsModel shows the player's best time. The best is the larger
// of this process's session best and the player's leaderboard entry.
type StatisticsModel struct {
	env         Env
	sessionBest uint32
	onlineBest  uint32
	loading     bool
	onlineErr   error
	local       *storage.LevelStats
	width       int
	height      int
	keyMapper   *KeyMapper
	quitting    bool
	goingBack   bool
}

// NewStatisticsModel creates the statistics screen.
func NewStatisticsModel(env Env, sessionBest int) StatisticsModel {
	m := StatisticsModel{
		env:         env,
		sessionBest: uint32(sessionBest),
		loading:     env.Client != nil,
		width:       env.Runtime.ScreenW,
		height:      env.Runtime.ScreenH,
		keyMapper:   NewKeyMapper(),
	}

	if env.Store != nil {
		stats, err := env.Store.GetLevelStats(env.Level)
		if err != nil {
			env.logger().Warn("could not load level stats", "error", err)
		} else {
			m.local = stats
		}
	}

	return m
}

// Init fetches the leaderboard when a server is configured.
func (m StatisticsModel) Init() tea.Cmd {
	if m.env.Client == nil {
		return nil
	}
	return fetchScoresCmd(m.env.Client)
}

// Update handles messages for the statistics screen.
func (m StatisticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scoresMsg:
		m.loading = false
		m.onlineErr = msg.err
		if msg.err == nil {
			m.onlineBest = leaderboard.SelfBest(msg.scores, m.env.Player)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionBack, MenuActionSelect:
			m.goingBack = true
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// Best returns the best time known for the player, in ticks.
func (m StatisticsModel) Best() uint32 {
	return max(m.sessionBest, m.onlineBest)
}

// View renders the statistics screen.
func (m StatisticsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var lines []string
	lines = append(lines, menuTitleStyle.Render("Statistics"), "")
	lines = append(lines, "Player: "+m.env.Player)
	lines = append(lines, "Best Score: "+seconds(m.Best()))

	switch {
	case m.loading:
		lines = append(lines, menuHintStyle.Render("fetching leaderboard..."))
	case m.onlineErr != nil:
		lines = append(lines, menuHintStyle.Render("leaderboard unavailable, showing this session only"))
	}

	if m.local != nil && m.local.Runs > 0 {
		lines = append(lines, "",
			fmt.Sprintf("Level %s on this machine", m.local.Level),
			"  Best:     "+seconds(m.local.Best),
			fmt.Sprintf("  Runs:     %d", m.local.Runs),
			fmt.Sprintf("  Attempts: %d", m.local.TotalAttempts),
			"  Played:   "+seconds(uint32(min(m.local.TotalTicks, int64(^uint32(0))))),
		)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3).
		Render(strings.Join(lines, "\n"))

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", max((m.height-lipgloss.Height(box)-2)/2, 1)))
	for _, line := range strings.Split(box, "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Esc/Enter: Back  |  Q: Quit"), m.width))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StatisticsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatisticsModel) IsQuitting() bool {
	return m.quitting
}
