package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-quest/internal/progression"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show level, XP, streak and weekly tasks",
	Args:  cobra.NoArgs,
	Run:   runStats,
}

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Claim today's check-in bonus",
	Long: `Check in once per calendar day. Consecutive days grow your streak
and the bonus: 50, 75, 100, 150, 200, 300, then 500 XP per day.`,
	Args: cobra.NoArgs,
	Run:  runCheckIn,
}

var inviteCmd = &cobra.Command{
	Use:   "invite [code]",
	Short: "Show your invite link or accept a friend's code",
	Long: `Without arguments, print your referral code and invite link.
With a code, add the friend who shared it and earn the invite bonus.

Examples:
  flappyquest invite
  flappyquest invite ABC123`,
	Args: cobra.MaximumNArgs(1),
	Run:  runInvite,
}

func runStats(_ *cobra.Command, _ []string) {
	store, profile, _, err := openProfile(newLogger())
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()

	prog := profile.Progression
	stats := prog.Stats()

	name := prog.PlayerName()
	if name == "" {
		name = "(no name set)"
	}
	fmt.Printf("Player: %s  [profile %s]\n", name, profile.Name)
	fmt.Printf("Level %d  %d XP  (%d to next level)\n", prog.Level(), stats.XP, prog.XPForNextLevel()-stats.XP)
	fmt.Printf("High score: %d  Games played: %d\n", prog.HighScore(), stats.TotalGames)

	checkIn := "available"
	if !prog.CanCheckIn() {
		checkIn = "done today"
	}
	fmt.Printf("Daily streak: %d  Check-in: %s\n", stats.DailyStreak, checkIn)
	fmt.Printf("Referral code: %s  Friends: %d\n", prog.ReferralCode(), len(prog.Friends()))
	fmt.Println()

	fmt.Printf("Week of %s: %d games, %d points, %d pipes cleared\n",
		stats.WeekStartDate, stats.WeeklyStats.GamesPlayed, stats.WeeklyStats.TotalScore, stats.WeeklyStats.ObstaclesCleared)
	printTasks(prog.Tasks())
}

func printTasks(tasks []progression.WeeklyTask) {
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Printf("  [%s] %-18s %4d/%-4d %s  +%d XP\n", mark, t.Title, t.Progress, t.Target, bar(t.Fraction(), 12), t.Reward)
	}
}

func bar(fraction float64, width int) string {
	filled := max(0, min(int(fraction*float64(width)), width))
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}

func runCheckIn(_ *cobra.Command, _ []string) {
	store, profile, _, err := openProfile(newLogger())
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()

	res, err := profile.Progression.CheckIn()
	if errors.Is(err, progression.ErrAlreadyCheckedIn) {
		fmt.Println("Already checked in today. Come back tomorrow!")
		return
	}
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Day %d streak! +%d XP (level %d, %d XP)\n", res.Streak, res.Reward, res.Level, res.XP)
	for _, t := range res.CompletedTasks {
		fmt.Printf("Task complete: %s (+%d XP)\n", t.Title, t.Reward)
	}
}

func runInvite(_ *cobra.Command, args []string) {
	store, profile, cfg, err := openProfile(newLogger())
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()

	prog := profile.Progression
	if len(args) == 0 {
		fmt.Printf("Your code: %s\n", prog.ReferralCode())
		fmt.Println(prog.InviteText())
		fmt.Println(prog.InviteLink(cfg.Session.InviteURL))
		return
	}

	if err := acceptInvite(os.Stdout, prog, args[0], cfg.Progression.FriendInviteXP); err != nil {
		fail("%v", err)
	}
}

// acceptInvite applies code and reports the result to w. Empty and own codes
// are not errors: nothing is accepted.
func acceptInvite(w io.Writer, prog *progression.Engine, code string, bonus int) error {
	friend, err := prog.AcceptInvite(code)
	if errors.Is(err, progression.ErrEmptyInviteCode) || errors.Is(err, progression.ErrSelfInvite) {
		fmt.Fprintln(w, "Nothing to accept: enter a friend's referral code.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s joined your friends! +%d XP\n", friend.Name, bonus)
	return nil
}
