package gamification

import (
	"time"

	"github.com/taskpulse/taskpulse/internal/domain"
)

// milestoneInterval: every streak divisible by 5 is a milestone.
const milestoneInterval = 5

// StreakUpdate is the outcome of evaluating one habit completion.
type StreakUpdate struct {
	NewStreak        int  `json:"new_streak"`
	MilestoneReached bool `json:"milestone_reached"`
}

// UpdateHabitStreak evaluates a completion event against the habit's current
// streak. Both "today" (from the engine clock) and the completion timestamp
// are normalized to UTC midnight before diffing.
//
//   - Completed today: streak extends by one; a milestone fires when the new
//     streak is a multiple of 5.
//   - Completed yesterday (not yet logged today): streak unchanged.
//   - Gap of 2+ days: streak resets to 1.
//
// The function is pure: the caller persists NewStreak and must invoke it
// exactly once per completion event — calling twice for the same completion
// double-increments.
func (e *Engine) UpdateHabitStreak(habit domain.Habit, completion domain.HabitCompletion) StreakUpdate {
	today := midnight(e.now())
	completedDay := midnight(completion.CompletedAt)

	daysDiff := int(today.Sub(completedDay).Hours() / 24)

	current := clampNonNegative(habit.CurrentStreak)

	switch daysDiff {
	case 0:
		newStreak := current + 1
		return StreakUpdate{
			NewStreak:        newStreak,
			MilestoneReached: newStreak%milestoneInterval == 0,
		}
	case 1:
		// Yesterday's completion keeps the streak alive without extending it.
		return StreakUpdate{NewStreak: current}
	default:
		return StreakUpdate{NewStreak: 1}
	}
}

// midnight strips the time-of-day in UTC.
func midnight(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
