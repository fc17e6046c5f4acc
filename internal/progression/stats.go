// Package progression converts game outcomes into durable player state:
// experience, levels, daily check-in streaks, weekly challenges and referrals.
//
// Engine is the single owner of that state. It reads every persisted entity
// once when created and writes each one back right after it changes.
package progression

import "github.com/vovakirdan/flappy-quest/internal/calendar"

// DefaultLevelXP is the XP needed per level when no unit is configured.
const DefaultLevelXP = 100

// WeeklyStats aggregates play during the current calendar week.
type WeeklyStats struct {
	TotalScore       int `json:"totalScore"`
	GamesPlayed      int `json:"gamesPlayed"`
	ObstaclesCleared int `json:"obstaclesCleared"`
	MaxStreak        int `json:"maxStreak"`
}

// PlayerStats is the persistent progression record.
// Level is derived from XP and is never stored.
type PlayerStats struct {
	XP                   int           `json:"xp"`
	DailyStreak          int           `json:"dailyStreak"`
	LastCheckIn          calendar.Date `json:"lastCheckIn"`
	TotalGames           int           `json:"totalGames"`
	WeeklyTasksCompleted int           `json:"weeklyTasksCompleted"`
	WeekStartDate        calendar.Date `json:"weekStartDate"`
	WeeklyStats          WeeklyStats   `json:"weeklyStats"`
	FriendsInvited       int           `json:"friendsInvited"`
	ReferralCode         string        `json:"referralCode"`
}

// Level returns floor(xp/unit)+1. Negative XP counts as zero.
func Level(xp, unit int) int {
	if unit <= 0 {
		unit = DefaultLevelXP
	}
	if xp < 0 {
		xp = 0
	}
	return xp/unit + 1
}

// XPForNextLevel returns the cumulative XP at which the next level starts.
func XPForNextLevel(xp, unit int) int {
	if unit <= 0 {
		unit = DefaultLevelXP
	}
	return Level(xp, unit) * unit
}

// LevelProgress returns how far xp is through its current level, in [0, 1).
func LevelProgress(xp, unit int) float64 {
	if unit <= 0 {
		unit = DefaultLevelXP
	}
	if xp < 0 {
		return 0
	}
	return float64(xp%unit) / float64(unit)
}
