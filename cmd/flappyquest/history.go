package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit int
	flagHistoryBest  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent rounds",
	Long: `Display the profile's recorded rounds with a summary.

Examples:
  flappyquest history
  flappyquest history --best --limit 5`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of rounds to show")
	historyCmd.Flags().BoolVar(&flagHistoryBest, "best", false, "Order by score instead of recency")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, profile, _, err := openProfile(newLogger())
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()

	bucket := store.Namespace(profile.Name)
	games, err := bucket.RecentGames(flagHistoryLimit)
	if flagHistoryBest {
		games, err = bucket.TopGames(flagHistoryLimit)
	}
	if err != nil {
		fail("retrieving history: %v", err)
	}

	if len(games) == 0 {
		fmt.Println("No rounds recorded yet.")
		return
	}

	fmt.Printf("  %-5s  %-6s  %-5s  %-5s  %s\n", "Game", "Score", "XP", "Level", "Played")
	fmt.Printf("  %-5s  %-6s  %-5s  %-5s  %s\n", "----", "-----", "--", "-----", "------")
	for _, g := range games {
		fmt.Printf("  %-5d  %-6d  %-5d  %-5d  %s\n", g.ID, g.Score, g.XP, g.Level, g.PlayedAt.Local().Format("2006-01-02 15:04"))
	}

	sum, err := bucket.Summary()
	if err != nil {
		fail("retrieving summary: %v", err)
	}
	fmt.Println()
	fmt.Printf("%d rounds  best %d  average %.1f  total %d\n", sum.GamesCount, sum.HighScore, sum.AvgScore, sum.TotalScore)
}
