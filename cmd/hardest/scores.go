package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hardest-game/internal/core"
	"github.com/vovakirdan/hardest-game/internal/leaderboard"
	"github.com/vovakirdan/hardest-game/internal/storage"
)

var (
	flagScoresLimit int
	flagWatch       bool
	flagLocal       bool
	flagClear       string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the leaderboard of the configured server, or your local run
history with --local.

Examples:
  hardest scores
  hardest scores --limit 3
  hardest scores --watch          # Reprint on every new submission
  hardest scores --local
  hardest scores --local --clear practice   # Forget local runs of a level`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show (0 = all)")
	scoresCmd.Flags().BoolVar(&flagWatch, "watch", false, "Follow the live feed")
	scoresCmd.Flags().BoolVar(&flagLocal, "local", false, "Show local run history instead")
	scoresCmd.Flags().StringVar(&flagClear, "clear", "", "With --local, delete the run history of a level")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	if flagLocal {
		store, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			exitf("Error opening run history: %v", err)
		}
		defer store.Close()

		if flagClear != "" {
			if err := store.ClearRuns(flagClear); err != nil {
				store.Close()
				exitf("Error: %v", err)
			}
			fmt.Printf("Cleared local runs of %s\n", flagClear)
			return
		}

		runs, err := store.RecentRuns(flagScoresLimit)
		if err != nil {
			store.Close()
			exitf("Error retrieving runs: %v", err)
		}
		stats, err := store.GetAllLevelStats()
		if err != nil {
			store.Close()
			exitf("Error retrieving level stats: %v", err)
		}
		printLevelStats(os.Stdout, stats)
		printRuns(os.Stdout, runs)
		return
	}

	client := leaderboard.NewClient(cfg.Server.URL, cfg.Server.Timeout)

	if flagWatch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Watching %s (Ctrl+C to stop)\n\n", client.BaseURL())
		err := client.Watch(ctx, func(scores []leaderboard.Score) {
			printScores(os.Stdout, client.BaseURL(), limitScores(scores, flagScoresLimit))
			fmt.Println()
		})
		if err != nil {
			stop()
			exitf("Error: %v", err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	scores, err := client.FetchLeaderboard(ctx)
	if err != nil {
		cancel()
		exitf("Error retrieving scores: %v", err)
	}
	printScores(os.Stdout, client.BaseURL(), limitScores(scores, flagScoresLimit))
}

func limitScores(scores []leaderboard.Score, limit int) []leaderboard.Score {
	if limit > 0 && len(scores) > limit {
		return scores[:limit]
	}
	return scores
}

func printScores(w io.Writer, source string, scores []leaderboard.Score) {
	fmt.Fprintf(w, "Leaderboard - %s\n\n", source)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores submitted yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'hardest' to set the first time!")
		return
	}

	maxName := len("Player")
	for _, s := range scores {
		maxName = max(maxName, len(s.Player))
	}

	fmt.Fprintf(w, "  %-4s  %-*s  %s\n", "Rank", maxName, "Player", "Time")
	fmt.Fprintf(w, "  %-4s  %-*s  %s\n", "----", maxName, "------", "----")
	for i, s := range scores {
		fmt.Fprintf(w, "  %-4d  %-*s  %gs\n", i+1, maxName, s.Player, s.Seconds())
	}
}

func printLevelStats(w io.Writer, stats map[string]*storage.LevelStats) {
	if len(stats) == 0 {
		return
	}

	levels := make([]string, 0, len(stats))
	for level := range stats {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	fmt.Fprintln(w, "Levels")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-16s  %-10s  %-5s  %-8s  %s\n", "Level", "Best", "Runs", "Attempts", "Last played")
	fmt.Fprintf(w, "  %-16s  %-10s  %-5s  %-8s  %s\n", "-----", "----", "----", "--------", "-----------")
	for _, level := range levels {
		ls := stats[level]
		best := fmt.Sprintf("%gs", core.TicksToSeconds(int(ls.Best)))
		fmt.Fprintf(w, "  %-16s  %-10s  %-5d  %-8d  %s\n",
			ls.Level, best, ls.Runs, ls.TotalAttempts, ls.LastPlayed.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(w)
}

func printRuns(w io.Writer, runs []storage.Run) {
	fmt.Fprintln(w, "Recent runs")
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return
	}

	fmt.Fprintf(w, "  %-16s  %-10s  %-8s  %s\n", "Level", "Best", "Attempts", "Date")
	fmt.Fprintf(w, "  %-16s  %-10s  %-8s  %s\n", "-----", "----", "--------", "----")
	for _, r := range runs {
		best := fmt.Sprintf("%gs", core.TicksToSeconds(int(r.Best)))
		fmt.Fprintf(w, "  %-16s  %-10s  %-8d  %s\n", r.Level, best, r.Attempts, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
