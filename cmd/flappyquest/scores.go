package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top leaderboard entries for the profile.

Examples:
  flappyquest scores
  flappyquest scores --limit 25`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
}

func runScores(_ *cobra.Command, _ []string) {
	store, profile, _, err := openProfile(newLogger())
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()

	board := profile.Leaderboard
	entries := board.Top(flagScoresLimit)

	fmt.Println("Leaderboard - Flappy Quest")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Set a name in 'flappyquest play' and clear some pipes to get on the board!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-6s  %-5s  %s\n", "Rank", "Player", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-16s  %-6s  %-5s  %s\n", "----", "------", "-----", "-----", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-16s  %-6d  %-5d  %s\n", i+1, e.Name, e.Score, e.Level, e.Timestamp.Format("2006-01-02 15:04"))
	}

	social, rank := board.Social()
	fmt.Println()
	fmt.Printf("Players: %d  Average: %d  Top: %d\n", social.TotalPlayers, social.AverageScore, social.TopScore)
	if rank > 0 {
		fmt.Printf("Your last ranked round: #%d\n", rank)
	}
}
