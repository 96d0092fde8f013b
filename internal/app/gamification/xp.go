package gamification

import (
	"math"
	"strings"

	"github.com/taskpulse/taskpulse/internal/domain"
)

// baseTaskXP is the XP floor for any completed task.
const baseTaskXP = 10.0

// priorityFactors scale XP by task urgency.
var priorityFactors = map[domain.Priority]float64{
	domain.PriorityLow:    1.0,
	domain.PriorityMedium: 1.2,
	domain.PriorityHigh:   1.5,
	domain.PriorityUrgent: 2.0,
}

// categoryFactors reward tasks in growth-oriented categories.
// Unrecognized categories earn no bonus.
var categoryFactors = map[string]float64{
	"health":   1.2,
	"learning": 1.3,
	"work":     1.1,
}

// CalculateTaskXP computes the XP award for a completed task.
// actualMinutes is the measured completion time; pass 0 (or negative) when
// unknown, which skips the time bonus.
//
// Multipliers compose multiplicatively in a fixed order:
// priority, then time bonus, then category bonus. An unknown priority earns
// the low factor (1.0). The result rounds half-up and is never below 10 for
// a low-priority task with no bonuses.
func CalculateTaskXP(task domain.Task, actualMinutes int) int64 {
	xp := baseTaskXP

	if factor, ok := priorityFactors[task.Priority]; ok {
		xp *= factor
	}

	// Time bonus: beat 80% of the estimate for the early bonus, land at or
	// under the estimate for the on-time bonus. Over estimate: no bonus.
	if task.EstimatedMinutes > 0 && actualMinutes > 0 {
		estimate := float64(task.EstimatedMinutes)
		actual := float64(actualMinutes)
		switch {
		case actual <= estimate*0.8:
			xp *= 1.3
		case actual <= estimate:
			xp *= 1.1
		}
	}

	if factor, ok := categoryFactors[normalizeCategory(task.Category)]; ok {
		xp *= factor
	}

	return int64(math.Round(xp))
}

// normalizeCategory folds free-form category strings for lookup.
func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
