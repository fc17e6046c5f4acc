package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-quest/internal/platform/tui"
)

var (
	flagRef     string
	flagLogPath string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the hub and play",
	Long: `Open the Flappy Quest hub. From there start rounds, check in,
follow weekly challenges, invite friends and browse the leaderboard.

Controls:
  Enter        - Start a round
  Space/Up/W   - Flap
  C            - Daily check-in
  T / L / F    - Tasks / Leaderboard / Friends
  N            - Set display name
  S            - Share your score
  Esc/B        - Back
  Q/Ctrl+C     - Quit

Examples:
  flappyquest play
  flappyquest play --difficulty hard
  flappyquest play --ref ABC123
  flappyquest play --profile alice`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRef, "ref", "", "Friend's referral code to pre-fill")
	playCmd.Flags().StringVar(&flagLogPath, "log", "~/.flappyquest/flappyquest.log", "Log file (the terminal belongs to the game)")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := fileLogger(flagLogPath)
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, profile, cfg, err := openProfile(logger)
	if err != nil {
		fail("%v", err)
	}

	runErr := tui.Run(profile, tui.Options{
		Config:      cfg,
		Logger:      logger,
		InboundCode: flagRef,
		Width:       width,
		Height:      height,
	})

	// Close store before potential exit
	store.Close()

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}

// fileLogger logs to path, or discards when the file cannot be opened.
func fileLogger(path string) (*log.Logger, func()) {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "flappyquest"})
			if flagVerbose {
				logger.SetLevel(log.DebugLevel)
			}
			return logger, func() { f.Close() }
		}
	}
	return log.New(io.Discard), func() {}
}
