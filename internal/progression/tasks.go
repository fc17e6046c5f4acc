package progression

// TaskKind is the event a weekly task counts.
type TaskKind string

const (
	KindScore     TaskKind = "score"
	KindGames     TaskKind = "games"
	KindObstacles TaskKind = "obstacles"
	KindStreak    TaskKind = "streak"
)

// WeeklyTask is one challenge of the current week.
// Progress never decreases and never exceeds Target; Completed is set once.
type WeeklyTask struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Target      int      `json:"target"`
	Progress    int      `json:"progress"`
	Reward      int      `json:"reward"`
	Completed   bool     `json:"completed"`
	Kind        TaskKind `json:"type"`
}

// Fraction returns progress as a value in [0, 1].
func (t WeeklyTask) Fraction() float64 {
	if t.Target <= 0 {
		return 1
	}
	return float64(t.Progress) / float64(t.Target)
}

// NewWeeklyTasks returns the fixed challenge set for a fresh week.
func NewWeeklyTasks() []WeeklyTask {
	return []WeeklyTask{
		{
			ID:          "score_challenge",
			Title:       "Score Master",
			Description: "Achieve a total score of 100 points this week",
			Target:      100,
			Reward:      200,
			Kind:        KindScore,
		},
		{
			ID:          "games_challenge",
			Title:       "Dedicated Player",
			Description: "Play 20 games this week",
			Target:      20,
			Reward:      150,
			Kind:        KindGames,
		},
		{
			ID:          "pipes_challenge",
			Title:       "Pipe Navigator",
			Description: "Clear 50 pipes this week",
			Target:      50,
			Reward:      250,
			Kind:        KindObstacles,
		},
		{
			ID:          "streak_challenge",
			Title:       "Consistency King",
			Description: "Maintain a 5-day check-in streak",
			Target:      5,
			Reward:      300,
			Kind:        KindStreak,
		},
	}
}

// advanceTask adds delta to every incomplete task of the given kind and
// returns the indexes of the tasks this call completed.
func advanceTask(tasks []WeeklyTask, kind TaskKind, delta int) []int {
	if delta < 0 {
		delta = 0
	}
	var done []int
	for i := range tasks {
		t := &tasks[i]
		if t.Kind != kind || t.Completed {
			continue
		}
		t.Progress = min(t.Progress+delta, t.Target)
		if t.Progress >= t.Target {
			t.Completed = true
			done = append(done, i)
		}
	}
	return done
}

// CompletedCount returns how many tasks are completed.
func CompletedCount(tasks []WeeklyTask) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}
