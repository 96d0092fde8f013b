// Package metrics provides Prometheus metrics for TaskPulse — counters and
// histograms for XP awards, rewards, streaks, badges, and challenges.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Tasks / XP ─────────────────────────────────────────────────────────────

// TasksCompleted tracks scored task completions by priority.
var TasksCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "taskpulse",
	Name:      "tasks_completed_total",
	Help:      "Total scored task completions.",
}, []string{"priority"})

// XPAwarded tracks total XP granted across all sources.
var XPAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "taskpulse",
	Name:      "xp_awarded_total",
	Help:      "Total XP awarded.",
})

// XPPerTask tracks the XP distribution of individual task awards.
var XPPerTask = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "taskpulse",
	Name:      "xp_per_task",
	Help:      "XP awarded per completed task.",
	Buckets:   []float64{10, 12, 15, 20, 25, 30, 40},
})

// ─── Rewards / Badges ───────────────────────────────────────────────────────

// RewardsGranted tracks micro-rewards by rarity.
var RewardsGranted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "taskpulse",
	Name:      "rewards_granted_total",
	Help:      "Total micro-rewards granted.",
}, []string{"rarity"})

// RewardsClaimed tracks ledger claims.
var RewardsClaimed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "taskpulse",
	Name:      "rewards_claimed_total",
	Help:      "Total rewards claimed from the ledger.",
})

// BadgesUnlocked tracks first-time badge grants by badge ID.
var BadgesUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "taskpulse",
	Name:      "badges_unlocked_total",
	Help:      "Total newly unlocked badges.",
}, []string{"badge"})

// ─── Streaks ────────────────────────────────────────────────────────────────

// StreakMilestones tracks habit streak milestones reached.
var StreakMilestones = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "taskpulse",
	Name:      "streak_milestones_total",
	Help:      "Total streak milestones reached.",
})

// StreakResets tracks streaks broken by a missed day.
var StreakResets = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "taskpulse",
	Name:      "streak_resets_total",
	Help:      "Total streaks reset after a gap.",
})

// ─── Challenges ─────────────────────────────────────────────────────────────

// ChallengesGenerated tracks generated challenges by archetype.
var ChallengesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "taskpulse",
	Name:      "challenges_generated_total",
	Help:      "Total personalized challenges generated.",
}, []string{"archetype"})
