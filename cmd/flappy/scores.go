package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/accounts"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/history"
)

var (
	flagUser  string
	flagLimit int
	flagReset bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history leaderboard",
	Long: `Display the best runs across all players, or the latest runs of one
player together with their stored high score.

Examples:
  flappy scores
  flappy scores --limit 20
  flappy scores --user alice
  flappy scores --user alice --reset`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagUser, "user", "", "Only show runs of this player")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete the run history of --user (the stored high score is kept)")
}

func runScores(cmd *cobra.Command, args []string) error {
	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := history.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagReset {
		if flagUser == "" {
			return fmt.Errorf("--reset needs --user")
		}
		if err := store.ClearUser(flagUser); err != nil {
			return err
		}
		logger.Info("run history cleared", "user", flagUser)
		fmt.Fprintf(out, "Cleared run history of %s\n", flagUser)
		return nil
	}

	if flagUser == "" {
		runs, err := store.TopRuns(flagLimit)
		if err != nil {
			return fmt.Errorf("retrieving runs: %w", err)
		}
		fmt.Fprintln(out, "Top Runs")
		fmt.Fprintln(out)
		printRuns(cmd, runs)
		return nil
	}

	runs, err := store.RecentRuns(flagUser, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	fmt.Fprintf(out, "Recent Runs - %s\n\n", flagUser)
	printRuns(cmd, runs)

	stats, err := store.Stats(flagUser)
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Runs: %d  Best run: %d  Average: %.1f\n", stats.Runs, int(stats.Best), stats.Average)

	accts := accounts.New(config.ExpandPath(flagAccountsPath), logger)
	acc, err := accts.Lookup(flagUser)
	if err != nil {
		logger.Warn("no stored high score", "user", flagUser, "accounts", accts.Path(), "error", err)
		return nil
	}
	fmt.Fprintf(out, "High score: %s\n", accounts.FormatScore(acc.HighScore))
	return nil
}

func printRuns(cmd *cobra.Command, runs []history.Run) {
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'flappy' to set the first high score!")
		return
	}

	fmt.Fprintf(out, "  %-4s  %-14s  %-6s  %-5s  %s\n", "Rank", "Player", "Score", "Stage", "Date")
	fmt.Fprintf(out, "  %-4s  %-14s  %-6s  %-5s  %s\n", "----", "------", "-----", "-----", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-14s  %-6d  %-5d  %s\n",
			i+1, r.Username, int(r.Score), r.Stage, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
