package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hardest-game/internal/core"
	"github.com/vovakirdan/hardest-game/internal/leaderboard"
)

// scoresMsg carries a leaderboard fetched from the server.
type scoresMsg struct {
	scores []leaderboard.Score
	err    error
}

// liveMsg carries a board snapshot pushed over the live feed.
type liveMsg []leaderboard.Score

// liveClosedMsg reports that the live feed ended.
type liveClosedMsg struct {
	err error
}

func fetchScoresCmd(c *leaderboard.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), leaderboard.DefaultTimeout)
		defer cancel()
		scores, err := c.FetchLeaderboard(ctx)
		return scoresMsg{scores: scores, err: err}
	}
}

// watchCmd blocks on the live feed, forwarding snapshots into ch until
// ctx is cancelled.
func watchCmd(ctx context.Context, c *leaderboard.Client, ch chan<- []leaderboard.Score) tea.Cmd {
	return func() tea.Msg {
		err := c.Watch(ctx, func(scores []leaderboard.Score) {
			select {
			case ch <- scores:
			case <-ctx.Done():
			}
		})
		return liveClosedMsg{err: err}
	}
}

func waitLiveCmd(ctx context.Context, ch <-chan []leaderboard.Score) tea.Cmd {
	return func() tea.Msg {
		select {
		case scores := <-ch:
			return liveMsg(scores)
		case <-ctx.Done():
			return nil
		}
	}
}

// seconds formats a tick count the way the HUD does.
func seconds(ticks uint32) string {
	return fmt.Sprintf("%gs", core.TicksToSeconds(int(ticks)))
}
