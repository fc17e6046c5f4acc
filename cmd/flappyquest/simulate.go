package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-quest/internal/session"
)

var (
	flagSimGames    int
	flagSimMaxTicks int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play rounds headlessly with the autopilot",
	Long: `Run rounds without a terminal. The autopilot flaps toward each gap,
and every round settles exactly like an interactive one: XP, tasks,
high score, history and leaderboard.

Examples:
  flappyquest simulate --games 10
  flappyquest simulate --games 3 --seed 42 --profile bot`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimGames, "games", 5, "Number of rounds to play")
	simulateCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 10000, "Forfeit a round after this many ticks (0 = no limit)")
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger := newLogger()
	store, profile, _, err := openProfile(logger)
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := session.Run(ctx, profile.Controller, session.RunOptions{
		Games:    flagSimGames,
		Pilot:    session.Autopilot{},
		MaxTicks: flagSimMaxTicks,
		OnSettled: func(out session.Outcome) {
			logger.Info("round settled",
				"game", out.Game,
				"score", out.Score,
				"xp", out.Result.XPGained,
				"level", out.Result.Level,
			)
		},
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fail("%v", err)
	}

	fmt.Printf("Played %d rounds in %d ticks\n", sum.Games, sum.Ticks)
	fmt.Printf("Best %d  total %d  +%d XP\n", sum.BestScore, sum.TotalScore, sum.XPGained)
	fmt.Printf("Now level %d with %d XP\n", profile.Progression.Level(), profile.Progression.Stats().XP)
}
