package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuChoice is an entry of the title menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceNewGame
	ChoiceStatistics
	ChoiceLeaderboard
	ChoiceQuit
)

// String returns the label shown in the menu.
func (c MenuChoice) String() string {
	switch c {
	case ChoiceNewGame:
		return "New Game"
	case ChoiceStatistics:
		return "Statistics"
	case ChoiceLeaderboard:
		return "Leaderboard"
	case ChoiceQuit:
		return "Quit"
	default:
		return ""
	}
}

var menuChoices = []MenuChoice{ChoiceNewGame, ChoiceStatistics, ChoiceLeaderboard, ChoiceQuit}

const gameTitle = "Hardest Game Ever"

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the title menu.
type MenuModel struct {
	cursor    int
	width     int
	height    int
	player    string
	level     string
	best      uint32 // personal best on level, 0 if never finished
	keyMapper *KeyMapper
	quitting  bool
	selected  MenuChoice
}

// NewMenuModel creates a new menu model.
func NewMenuModel(player, level string, width, height int) MenuModel {
	return MenuModel{
		width:     width,
		height:    height,
		player:    player,
		level:     level,
		keyMapper: NewKeyMapper(),
	}
}

// WithPersonalBest returns the menu showing best as the player's record.
func (m MenuModel) WithPersonalBest(best uint32) MenuModel {
	m.best = best
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuChoices)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.selected = menuChoices[m.cursor]
		if m.selected == ChoiceQuit {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	top := max((m.height-len(menuChoices)*2-8)/2, 1)
	b.WriteString(strings.Repeat("\n", top))

	b.WriteString(centerText(menuTitleStyle.Render(gameTitle), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuHintStyle.Render("playing as "+m.player+" on "+m.level), m.width))
	b.WriteString("\n")
	if m.best > 0 {
		b.WriteString(centerText(menuHintStyle.Render("personal best "+seconds(m.best)), m.width))
	}
	b.WriteString("\n")

	for i, c := range menuChoices {
		label := "  " + c.String() + "  "
		if i == m.cursor {
			label = menuSelectedStyle.Render(label)
		}
		b.WriteString(centerText(label, m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(centerText(menuHintStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen entry, or ChoiceNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}
