// flappyquest is a terminal Flappy Bird with daily check-ins, weekly
// challenges, friend invites and a local leaderboard.
//
// Usage:
//
//	flappyquest play              - Open the hub and play
//	flappyquest stats             - Show level, XP, streak and weekly tasks
//	flappyquest checkin           - Claim today's check-in bonus
//	flappyquest invite [code]     - Show your invite link or accept a friend's code
//	flappyquest scores            - Show the leaderboard
//	flappyquest history           - Show recent rounds
//	flappyquest simulate          - Play rounds headlessly with the autopilot
//	flappyquest serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>       - Game config file (YAML or TOML)
//	--difficulty <preset> - easy, normal or hard
//	--seed <value>        - RNG seed for reproducible obstacles
//	--db <path>           - Profile database (default: ~/.flappyquest/flappyquest.db)
//	--profile <name>      - Profile namespace inside the database
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-quest/internal/config"
	"github.com/vovakirdan/flappy-quest/internal/session"
	"github.com/vovakirdan/flappy-quest/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagDBPath     string
	flagProfile    string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappyquest",
	Short: "Flappy Quest - Flap through pipes, level up, keep your streak",
	Long: `Flappy Quest is a terminal Flappy Bird with a progression layer:
XP and levels, daily check-in streaks, weekly challenges, friend invites
and a leaderboard.

Available commands:
  play      - Open the hub and play
  stats     - Show your progression
  checkin   - Claim today's check-in bonus
  invite    - Show or accept invite codes
  scores    - View the leaderboard
  history   - View recent rounds
  simulate  - Run autopilot rounds without a terminal
  serve     - Start SSH server for remote play

Examples:
  flappyquest play
  flappyquest play --ref ABC123
  flappyquest checkin
  flappyquest simulate --games 10 --seed 42
  flappyquest serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappyquest/flappyquest.db", "Path to profile database")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", storage.DefaultNamespace, "Profile name inside the database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(inviteCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger returns a stderr logger for the non-interactive commands.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappyquest",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig reads the game config and applies the difficulty preset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyPreset(&cfg, config.DifficultyPreset(flagDifficulty))
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// openProfile opens the database and the selected profile. The caller closes
// the returned store after closing the profile's controller.
func openProfile(logger *log.Logger) (*storage.Store, *session.Profile, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, config.Config{}, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, nil, config.Config{}, err
	}

	profile, err := session.OpenStoredProfile(store, flagProfile, cfg, session.ProfileOptions{
		Logger: logger,
		Seed:   seed(),
	})
	if err != nil {
		store.Close()
		return nil, nil, config.Config{}, err
	}
	return store, profile, cfg, nil
}

// fail prints err and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
