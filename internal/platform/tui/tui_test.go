package tui

import (
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hardest-game/internal/config"
	"github.com/vovakirdan/hardest-game/internal/core"
	"github.com/vovakirdan/hardest-game/internal/leaderboard"
	"github.com/vovakirdan/hardest-game/internal/storage"
	"github.com/vovakirdan/hardest-game/internal/world"
)

func testEnv() Env {
	return Env{
		Config:  config.Default(),
		Runtime: core.DefaultConfig(),
		Player:  "tester",
		Level:   "classic",
		World:   world.DefaultDocument(),
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"space toggles", tea.KeyMsg{Type: tea.KeySpace}, core.ActionToggle, false},
		{"q quits", keyRunes("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"unbound", keyRunes("x"), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()

	click := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if got := km.MapMouse(click); got != core.ActionToggle {
		t.Errorf("left click = %v, want Toggle", got)
	}
	release := tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	if got := km.MapMouse(release); got != core.ActionNone {
		t.Errorf("release = %v, want None", got)
	}
}

func TestGameModelTicksAndToggles(t *testing.T) {
	gm, err := NewGameModel(testEnv())
	if err != nil {
		t.Fatalf("NewGameModel: %v", err)
	}

	var m tea.Model = gm
	m, _ = m.Update(TickMsg(time.Now()))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m, _ = m.Update(TickMsg(time.Now()))

	g := m.(GameModel)
	if g.Session().Ticks() != 2 {
		t.Errorf("ticks = %d, want 2", g.Session().Ticks())
	}
	if g.Session().Player().FacingUp {
		t.Error("space did not flip direction")
	}
	if g.flash.Level() <= 0 {
		t.Error("toggle did not start the flash")
	}
	if !strings.Contains(g.View(), "Score:") {
		t.Error("view has no HUD")
	}
}

func TestGameModelRejectsInvalidWorld(t *testing.T) {
	env := testEnv()
	env.World = world.Document{Objects: []world.RectDoc{{Width: -1, Height: 1}}}
	if _, err := NewGameModel(env); err == nil {
		t.Error("NewGameModel accepted an invalid world")
	}
}

func TestGameModelSavesRunOnBack(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	env := testEnv()
	env.Store = store
	gm, err := NewGameModel(env)
	if err != nil {
		t.Fatal(err)
	}

	var m tea.Model = gm
	for range 10 {
		m, _ = m.Update(TickMsg(time.Now()))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if !m.(GameModel).BackToMenu() {
		t.Fatal("esc did not leave the game")
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	if runs[0].Ticks != 10 || runs[0].Best != 10 || runs[0].Player != "tester" {
		t.Errorf("unexpected run: %+v", runs[0])
	}
}

func TestGameModelSubmitsBestOnQuit(t *testing.T) {
	board := leaderboard.NewBoard()
	srv, err := leaderboard.NewServer(board, world.DefaultDocument(), nil)
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	env := testEnv()
	env.Client = leaderboard.NewClient(ts.URL, time.Second)
	gm, err := NewGameModel(env)
	if err != nil {
		t.Fatal(err)
	}

	var m tea.Model = gm
	for range 5 {
		m, _ = m.Update(TickMsg(time.Now()))
	}
	m, _ = m.Update(keyRunes("q"))

	g := m.(GameModel)
	if !g.IsQuitting() || g.Pending() == nil {
		t.Fatal("quit did not submit")
	}
	select {
	case err := <-g.Pending():
		if err != nil {
			t.Fatalf("submission failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("submission did not finish")
	}

	top, _ := board.Top(0)
	if len(top) != 1 || top[0] != (leaderboard.Score{Player: "tester", Score: 5}) {
		t.Errorf("board = %v", top)
	}
}

func TestAppNavigation(t *testing.T) {
	var m tea.Model = NewAppModel(testEnv())

	// Down to Statistics and open it.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.(AppModel).current != screenStats {
		t.Fatalf("screen = %v, want statistics", m.(AppModel).current)
	}
	if view := m.View(); !strings.Contains(view, "Best Score: 0s") {
		t.Errorf("statistics view missing best score:\n%s", view)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(AppModel).current != screenMenu {
		t.Fatal("esc did not return to the menu")
	}

	// Play a few ticks and come back; the best carries over.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.(AppModel).current != screenGame {
		t.Fatal("enter on New Game did not start a game")
	}
	for range 3 {
		m, _ = m.Update(TickMsg(time.Now()))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	app := m.(AppModel)
	if app.current != screenMenu || app.Best() != 3 {
		t.Errorf("after game: screen %v, best %d", app.current, app.Best())
	}
	if app.WaitPending(time.Millisecond) != 0 {
		t.Error("offline game left a pending submission")
	}
}

func TestStatisticsUsesOnlineBest(t *testing.T) {
	m := NewStatisticsModel(testEnv(), 120)

	next, _ := m.Update(scoresMsg{scores: []leaderboard.Score{
		{Player: "someone", Score: 9000},
		{Player: "tester", Score: 600},
	}})
	if got := next.(StatisticsModel).Best(); got != 600 {
		t.Errorf("Best() = %d, want 600", got)
	}

	next, _ = m.Update(scoresMsg{scores: []leaderboard.Score{{Player: "tester", Score: 60}}})
	if got := next.(StatisticsModel).Best(); got != 120 {
		t.Errorf("Best() = %d, want session best 120", got)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColor(0, 0, "hello", core.ColorRed)
	for x := 0; x < 3; x++ {
		s.SetColor(x, 1, ' ', core.ColorNavy)
	}

	out := RenderScreen(s)
	if !strings.Contains(out, "hello") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("rendered %d lines, want 2", strings.Count(out, "\n")+1)
	}
}

func TestMedalStyles(t *testing.T) {
	for rank := 1; rank <= 3; rank++ {
		if _, ok := medalStyle(rank); !ok {
			t.Errorf("rank %d has no medal", rank)
		}
	}
	if _, ok := medalStyle(4); ok {
		t.Error("rank 4 has a medal")
	}
}
