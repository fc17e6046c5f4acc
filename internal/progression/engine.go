package progression

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/flappy-quest/internal/calendar"
	"github.com/vovakirdan/flappy-quest/internal/config"
	"github.com/vovakirdan/flappy-quest/internal/metrics"
	"github.com/vovakirdan/flappy-quest/internal/storage"
)

// Persisted keys.
const (
	KeyHighScore   = "high_score"
	KeyPlayerStats = "player_stats"
	KeyWeeklyTasks = "weekly_tasks"
	KeyPlayerName  = "player_name"
	KeyFriends     = "friends"
)

// Rejected user input. Callers treat these as a disabled action.
var (
	ErrAlreadyCheckedIn = errors.New("progression: already checked in today")
	ErrEmptyInviteCode  = errors.New("progression: invite code is empty")
	ErrSelfInvite       = errors.New("progression: cannot accept your own invite code")
	ErrEmptyName        = errors.New("progression: player name is empty")
)

// HistoryRecorder receives one record per settled game.
type HistoryRecorder interface {
	RecordGame(rec storage.GameRecord) (int64, error)
}

// Options configures an Engine. Zero values pick sensible defaults.
type Options struct {
	Rules   config.ProgressionConfig
	Clock   calendar.Clock
	Logger  *log.Logger
	Rand    *rand.Rand
	History HistoryRecorder
}

// GameResult reports what a settled game changed.
type GameResult struct {
	Score          int
	XPGained       int // Score award plus any task rewards
	XP             int
	Level          int
	LeveledUp      bool
	NewHighScore   bool
	CompletedTasks []WeeklyTask
}

// CheckInResult reports a successful daily check-in.
type CheckInResult struct {
	Streak         int
	Reward         int
	XP             int
	Level          int
	CompletedTasks []WeeklyTask
}

// Engine owns all persistent progression state of one player.
type Engine struct {
	kv      storage.KV
	rules   config.ProgressionConfig
	clock   calendar.Clock
	logger  *log.Logger
	rng     *rand.Rand
	history HistoryRecorder

	stats     PlayerStats
	tasks     []WeeklyTask
	friends   []Friend
	highScore int
	name      string
}

// New loads the player's state from kv and refreshes the weekly challenges.
// Missing or corrupt entries fall back to defaults; New never fails.
func New(kv storage.KV, opts Options) *Engine {
	if opts.Rules.LevelXP <= 0 {
		opts.Rules = config.Default().Progression
	}
	if opts.Clock == nil {
		opts.Clock = calendar.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{
		kv:      kv,
		rules:   opts.Rules,
		clock:   opts.Clock,
		logger:  opts.Logger,
		rng:     opts.Rand,
		history: opts.History,
	}
	e.load()
	e.RefreshWeek()
	return e
}

// load reads every entity once. Corrupt values are logged and replaced.
func (e *Engine) load() {
	e.loadKey(KeyHighScore, &e.highScore)
	e.loadKey(KeyPlayerName, &e.name)
	e.loadKey(KeyFriends, &e.friends)

	found := e.loadKey(KeyPlayerStats, &e.stats)
	if e.stats.ReferralCode == "" {
		e.stats.ReferralCode = GenerateReferralCode(e.rng)
		e.stats.FriendsInvited = 0
		if found {
			e.logger.Info("assigned referral code to existing profile", "code", e.stats.ReferralCode)
		}
		e.save(KeyPlayerStats, e.stats)
	}

	var tasks []WeeklyTask
	if e.loadKey(KeyWeeklyTasks, &tasks) {
		e.tasks = tasks
	}
}

// loadKey decodes key into v, resetting v to its zero value on failure.
func (e *Engine) loadKey(key string, v any) bool {
	found, err := storage.LoadJSON(e.kv, key, v)
	if err != nil {
		e.logger.Warn("discarding unreadable player data", "key", key, "err", err)
		resetValue(v)
		return false
	}
	return found
}

func resetValue(v any) {
	switch p := v.(type) {
	case *int:
		*p = 0
	case *string:
		*p = ""
	case *PlayerStats:
		*p = PlayerStats{}
	case *[]WeeklyTask:
		*p = nil
	case *[]Friend:
		*p = nil
	}
}

// save writes v under key. Failures are logged and otherwise ignored.
func (e *Engine) save(key string, v any) {
	if err := storage.SaveJSON(e.kv, key, v); err != nil {
		e.logger.Error("failed to persist player data", "key", key, "err", err)
	}
}

func (e *Engine) today() calendar.Date {
	return calendar.Today(e.clock)
}

// RefreshWeek regenerates the weekly challenges when the stored week anchor
// is not the start of the current week. It reports whether a rollover
// happened.
func (e *Engine) RefreshWeek() bool {
	today := e.today()
	if calendar.IsNewWeek(e.stats.WeekStartDate, today) {
		e.tasks = NewWeeklyTasks()
		e.stats.WeekStartDate = today.WeekStart()
		e.stats.WeeklyStats = WeeklyStats{MaxStreak: e.stats.DailyStreak}
		e.stats.WeeklyTasksCompleted = 0
		e.save(KeyPlayerStats, e.stats)
		e.save(KeyWeeklyTasks, e.tasks)
		e.logger.Debug("weekly challenges regenerated", "week", e.stats.WeekStartDate)
		return true
	}

	if len(e.tasks) == 0 {
		e.tasks = NewWeeklyTasks()
		e.save(KeyWeeklyTasks, e.tasks)
	}
	return false
}

// Stats returns a copy of the player's record.
func (e *Engine) Stats() PlayerStats {
	return e.stats
}

// Tasks returns a copy of the current weekly challenges.
func (e *Engine) Tasks() []WeeklyTask {
	return append([]WeeklyTask(nil), e.tasks...)
}

// Friends returns a copy of the friend list, oldest first.
func (e *Engine) Friends() []Friend {
	return append([]Friend(nil), e.friends...)
}

// HighScore returns the best score ever settled.
func (e *Engine) HighScore() int {
	return e.highScore
}

// PlayerName returns the display name used for leaderboard submissions.
func (e *Engine) PlayerName() string {
	return e.name
}

// ReferralCode returns the player's stable referral code.
func (e *Engine) ReferralCode() string {
	return e.stats.ReferralCode
}

// Level returns the level derived from the current XP.
func (e *Engine) Level() int {
	return Level(e.stats.XP, e.rules.LevelXP)
}

// XPForNextLevel returns the XP total at which the next level starts.
func (e *Engine) XPForNextLevel() int {
	return XPForNextLevel(e.stats.XP, e.rules.LevelXP)
}

// LevelProgress returns the fraction of the current level completed.
func (e *Engine) LevelProgress() float64 {
	return LevelProgress(e.stats.XP, e.rules.LevelXP)
}

// SetPlayerName stores a trimmed display name.
func (e *Engine) SetPlayerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	e.name = name
	e.save(KeyPlayerName, e.name)
	return nil
}

// addXP adds a non-negative amount; the caller persists the stats.
func (e *Engine) addXP(amount int, source string) {
	if amount <= 0 {
		return
	}
	e.stats.XP += amount
	metrics.XPAwarded.WithLabelValues(source).Add(float64(amount))
}

// CompleteGame settles a finished round: the score award is applied first,
// then the weekly task updates, so task rewards build on up-to-date XP.
func (e *Engine) CompleteGame(score int) GameResult {
	if score < 0 {
		score = 0
	}
	startXP := e.stats.XP
	startLevel := e.Level()

	e.addXP(score*e.rules.XPPerPoint, "game")
	e.stats.TotalGames++
	e.stats.WeeklyStats.TotalScore += score
	e.stats.WeeklyStats.GamesPlayed++
	e.stats.WeeklyStats.ObstaclesCleared += score
	e.save(KeyPlayerStats, e.stats)

	result := GameResult{Score: score}
	if score > e.highScore {
		e.highScore = score
		e.save(KeyHighScore, e.highScore)
		result.NewHighScore = true
	}

	result.CompletedTasks = append(result.CompletedTasks, e.UpdateTaskProgress(KindScore, score)...)
	result.CompletedTasks = append(result.CompletedTasks, e.UpdateTaskProgress(KindGames, 1)...)
	result.CompletedTasks = append(result.CompletedTasks, e.UpdateTaskProgress(KindObstacles, score)...)

	result.XP = e.stats.XP
	result.XPGained = e.stats.XP - startXP
	result.Level = e.Level()
	result.LeveledUp = result.Level > startLevel

	if e.history != nil {
		rec := storage.GameRecord{Score: score, XP: result.XPGained, Level: result.Level, PlayedAt: e.clock.Now()}
		if _, err := e.history.RecordGame(rec); err != nil {
			e.logger.Error("failed to record game history", "err", err)
		}
	}

	metrics.GamesSettled.Inc()
	metrics.GameScore.Observe(float64(score))
	e.logger.Debug("game settled", "score", score, "xp", result.XP, "level", result.Level)
	return result
}

// UpdateTaskProgress advances every incomplete task of kind by delta.
// A task reaching its target is completed once and its reward is applied.
// It returns the tasks completed by this call.
func (e *Engine) UpdateTaskProgress(kind TaskKind, delta int) []WeeklyTask {
	var completed []WeeklyTask
	for _, idx := range advanceTask(e.tasks, kind, delta) {
		task := e.tasks[idx]
		e.addXP(task.Reward, "task")
		e.stats.WeeklyTasksCompleted++
		metrics.TasksCompleted.WithLabelValues(string(kind)).Inc()
		e.logger.Info("weekly task completed", "task", task.ID, "reward", task.Reward)
		completed = append(completed, task)
	}
	if len(completed) > 0 {
		e.save(KeyPlayerStats, e.stats)
	}
	e.save(KeyWeeklyTasks, e.tasks)
	return completed
}

// CanCheckIn reports whether today's check-in is still available.
func (e *Engine) CanCheckIn() bool {
	return calendar.IsNewDay(e.stats.LastCheckIn, e.today())
}

// CheckIn claims today's streak reward. A second call on the same calendar
// day returns ErrAlreadyCheckedIn and changes nothing.
func (e *Engine) CheckIn() (CheckInResult, error) {
	today := e.today()
	if !calendar.IsNewDay(e.stats.LastCheckIn, today) {
		return CheckInResult{}, ErrAlreadyCheckedIn
	}

	streak := 1
	if calendar.IsConsecutive(e.stats.LastCheckIn, today) {
		streak = e.stats.DailyStreak + 1
	}
	reward := CheckInReward(e.rules.CheckInBonus, streak)

	e.addXP(reward, "checkin")
	e.stats.DailyStreak = streak
	e.stats.LastCheckIn = today
	e.stats.WeeklyStats.MaxStreak = max(e.stats.WeeklyStats.MaxStreak, streak)
	e.save(KeyPlayerStats, e.stats)
	metrics.CheckIns.Inc()

	completed := e.UpdateTaskProgress(KindStreak, streak)

	return CheckInResult{
		Streak:         streak,
		Reward:         reward,
		XP:             e.stats.XP,
		Level:          e.Level(),
		CompletedTasks: completed,
	}, nil
}

// CheckInReward looks up the bonus for a streak; streaks past the end of the
// table earn its last entry.
func CheckInReward(table []int, streak int) int {
	if len(table) == 0 || streak <= 0 {
		return 0
	}
	return table[min(streak-1, len(table)-1)]
}

// AcceptInvite records a friend from a peer's referral code and awards the
// invite bonus to this player. The same code may be accepted repeatedly.
func (e *Engine) AcceptInvite(code string) (Friend, error) {
	code = NormalizeCode(code)
	if code == "" {
		return Friend{}, ErrEmptyInviteCode
	}
	if code == e.stats.ReferralCode {
		return Friend{}, ErrSelfInvite
	}

	for _, f := range e.friends {
		if f.InvitedBy == code {
			e.logger.Info("invite code accepted again", "code", code)
			break
		}
	}

	friend := Friend{
		ID:         uuid.NewString(),
		Name:       "Player_" + code,
		Level:      e.rng.Intn(10) + 1,
		LastActive: e.clock.Now(),
		BestScore:  e.rng.Intn(30) + 5,
		InvitedBy:  code,
	}
	e.friends = append(e.friends, friend)
	e.save(KeyFriends, e.friends)

	e.addXP(e.rules.FriendInviteXP, "invite")
	e.save(KeyPlayerStats, e.stats)
	metrics.InvitesAccepted.Inc()

	return friend, nil
}

// InviteText returns the invite message for this player's code.
func (e *Engine) InviteText() string {
	return InviteText(e.stats.ReferralCode)
}

// InviteLink returns base with this player's code as the ref parameter.
func (e *Engine) InviteLink(base string) string {
	return InviteLink(base, e.stats.ReferralCode)
}

// InboundCode returns code if it is usable as a pre-filled invite code for
// this player, or "" if it is empty or the player's own.
func (e *Engine) InboundCode(code string) string {
	code = NormalizeCode(code)
	if code == e.stats.ReferralCode {
		return ""
	}
	return code
}
