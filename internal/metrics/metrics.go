// Package metrics exposes Prometheus instruments for gameplay and progression
// events. Instruments register with the default registry on import; the serve
// command publishes them with promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// GamesSettled counts finished rounds whose outcome was applied.
var GamesSettled = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "flappyquest",
	Subsystem: "game",
	Name:      "settled_total",
	Help:      "Total game-over settlements applied to player progression.",
})

// GameScore tracks the distribution of final scores.
var GameScore = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "flappyquest",
	Subsystem: "game",
	Name:      "score",
	Help:      "Final score of settled rounds.",
	Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
})

// ActiveSessions is the number of connected remote players.
var ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "flappyquest",
	Subsystem: "server",
	Name:      "active_sessions",
	Help:      "Current number of connected SSH sessions.",
})

// CheckIns counts daily check-ins.
var CheckIns = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "flappyquest",
	Subsystem: "progression",
	Name:      "checkins_total",
	Help:      "Total daily check-ins.",
})

// TasksCompleted counts weekly task completions by kind.
var TasksCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "flappyquest",
	Subsystem: "progression",
	Name:      "tasks_completed_total",
	Help:      "Total weekly tasks completed, by task kind.",
}, []string{"kind"})

// InvitesAccepted counts accepted referral codes.
var InvitesAccepted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "flappyquest",
	Subsystem: "progression",
	Name:      "invites_accepted_total",
	Help:      "Total referral codes accepted.",
})

// XPAwarded sums experience awarded, by source.
var XPAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "flappyquest",
	Subsystem: "progression",
	Name:      "xp_awarded_total",
	Help:      "Total XP awarded, by source (game, checkin, task, invite).",
}, []string{"source"})

// LeaderboardSubmissions counts leaderboard inserts by outcome.
var LeaderboardSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "flappyquest",
	Subsystem: "leaderboard",
	Name:      "submissions_total",
	Help:      "Total leaderboard submissions, by outcome (ranked, dropped).",
}, []string{"outcome"})
