package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hardest-game/internal/leaderboard"
	"github.com/vovakirdan/hardest-game/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show source sidebar
	sidebarWidth       = 20 // Width of source sidebar
	maxRuns            = 100
	staleNote          = "Leaderboard may not be up to date, restart the game to refresh"
)

// Board sources shown in the sidebar.
const (
	sourceOnline = "Online"
	sourceLocal  = "Local"
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextSource key.Binding
	PrevSource key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSource, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSource, k.PrevSource},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextSource: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "switch board"),
		),
		PrevSource: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev board"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the leaderboard screen.
// The online board follows the server's live feed while it is open.
type ScoreboardModel struct {
	env         Env
	sources     []string
	cursor      int
	online      []leaderboard.Score
	onlineErr   error
	loading     bool
	live        bool
	local       []storage.Run
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool

	ctx    context.Context
	cancel context.CancelFunc
	liveCh chan []leaderboard.Score
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(env Env) ScoreboardModel {
	var sources []string
	if env.Client != nil {
		sources = append(sources, sourceOnline)
	}
	if env.Store != nil {
		sources = append(sources, sourceLocal)
	}

	h := help.New()
	h.ShowAll = false

	ctx, cancel := context.WithCancel(context.Background())
	m := ScoreboardModel{
		env:         env,
		sources:     sources,
		loading:     env.Client != nil,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       env.Runtime.ScreenW,
		height:      env.Runtime.ScreenH,
		showSidebar: env.Runtime.ScreenW >= minWidthForSidebar,
		ctx:         ctx,
		cancel:      cancel,
		liveCh:      make(chan []leaderboard.Score, 1),
	}

	if env.Store != nil {
		runs, err := env.Store.RecentRuns(maxRuns)
		if err != nil {
			env.logger().Warn("could not load local runs", "error", err)
		}
		m.local = runs
	}

	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m ScoreboardModel) source() string {
	if len(m.sources) == 0 {
		return ""
	}
	return m.sources[m.cursor]
}

// createTable creates a new table with columns for the current source.
func (m *ScoreboardModel) createTable() table.Model {
	tableWidth := m.width - 8 // Margins and border
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}

	var columns []table.Column
	if m.source() == sourceLocal {
		columns = []table.Column{
			{Title: "Level", Width: 10},
			{Title: "Best", Width: 10},
			{Title: "Attempts", Width: 9},
			{Title: "Date", Width: max(tableWidth-35, 12)},
		}
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Player", Width: max(tableWidth-20, 12)},
			{Title: "Time", Width: 10},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-14, 3)), // Leave room for header, podium, help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the current source.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row
	switch m.source() {
	case sourceOnline:
		rows = make([]table.Row, len(m.online))
		for i, s := range m.online {
			rows[i] = table.Row{fmt.Sprintf("#%d", i+1), s.Player, seconds(s.Score)}
		}
	case sourceLocal:
		rows = make([]table.Row, len(m.local))
		for i, r := range m.local {
			rows[i] = table.Row{
				r.Level,
				seconds(r.Best),
				fmt.Sprintf("%d", r.Attempts),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init fetches the online board and subscribes to the live feed.
func (m ScoreboardModel) Init() tea.Cmd {
	if m.env.Client == nil {
		return nil
	}
	return tea.Batch(
		fetchScoresCmd(m.env.Client),
		watchCmd(m.ctx, m.env.Client, m.liveCh),
		waitLiveCmd(m.ctx, m.liveCh),
	)
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case scoresMsg:
		m.loading = false
		m.onlineErr = msg.err
		if msg.err == nil {
			m.online = msg.scores
			m.updateTableRows()
		}
		return m, nil

	case liveMsg:
		m.loading = false
		m.live = true
		m.onlineErr = nil
		m.online = msg
		m.updateTableRows()
		return m, waitLiveCmd(m.ctx, m.liveCh)

	case liveClosedMsg:
		m.live = false
		if msg.err != nil {
			m.env.logger().Debug("live leaderboard closed", "error", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.close()
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.close()
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextSource):
			if len(m.sources) > 0 {
				m.cursor = (m.cursor + 1) % len(m.sources)
				m.table = m.createTable()
				m.updateTableRows()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevSource):
			if len(m.sources) > 0 {
				m.cursor = (m.cursor - 1 + len(m.sources)) % len(m.sources)
				m.table = m.createTable()
				m.updateTableRows()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// close stops the live feed.
func (m ScoreboardModel) close() {
	if m.cancel != nil {
		m.cancel()
	}
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "LEADERBOARD"
	if src := m.source(); src != "" {
		title = fmt.Sprintf("LEADERBOARD - %s", src)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	content := m.renderContent()
	if m.showSidebar && len(m.sources) > 1 {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content)
	}
	b.WriteString(content)

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if m.source() == sourceOnline && !m.live {
		b.WriteString(helpStyle.Italic(true).Render(staleNote))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar renders the list of boards.
func (m ScoreboardModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Boards\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, src := range m.sources {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + src))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderContent renders the podium and table, or an empty message.
func (m ScoreboardModel) renderContent() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch m.source() {
	case "":
		return boxStyle.Render(emptyStyle.Render("Offline: no server and no local history."))

	case sourceOnline:
		switch {
		case m.loading:
			return boxStyle.Render(emptyStyle.Render("Fetching leaderboard..."))
		case m.onlineErr != nil && len(m.online) == 0:
			return boxStyle.Render(emptyStyle.Render("Leaderboard unavailable.\n" + m.onlineErr.Error()))
		case len(m.online) == 0:
			return boxStyle.Render(emptyStyle.Render("No scores submitted yet.\nBe the first!"))
		}
		return boxStyle.Render(m.renderPodium() + "\n\n" + m.table.View())

	default:
		if len(m.local) == 0 {
			return boxStyle.Render(emptyStyle.Render("No runs recorded yet.\nPlay a game to set a time!"))
		}
		return boxStyle.Render(m.table.View())
	}
}

// renderPodium renders the top three players in medal colours.
func (m ScoreboardModel) renderPodium() string {
	lines := make([]string, 0, 3)
	for i, s := range m.online {
		style, ok := medalStyle(i + 1)
		if !ok {
			break
		}
		lines = append(lines, style.Render(fmt.Sprintf("%d. %-16s %s", i+1, s.Player, seconds(s.Score))))
	}
	return strings.Join(lines, "\n")
}

// Online returns the last online board received.
func (m ScoreboardModel) Online() []leaderboard.Score {
	return m.online
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
