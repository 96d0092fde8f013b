package gamification

import "github.com/taskpulse/taskpulse/internal/domain"

// unlockRule pairs a feature with its availability predicate.
type unlockRule struct {
	feature     string
	requirement string
	unlocked    func(domain.User) bool
}

// unlockRules is the fixed progressive-unlock table. Order matters: the
// returned list preserves this order so clients can render a stable layout.
var unlockRules = []unlockRule{
	{
		feature:     "Basic Habits",
		requirement: "Available to everyone",
		unlocked:    func(domain.User) bool { return true },
	},
	{
		feature:     "Advanced Habits",
		requirement: "Any paid plan",
		unlocked:    func(u domain.User) bool { return u.Tier.Paid() },
	},
	{
		feature:     "Focus Forecast",
		requirement: "Advanced Pro or Premium Pro plan",
		unlocked: func(u domain.User) bool {
			return u.Tier == domain.TierAdvancedPro || u.Tier == domain.TierPremiumPro
		},
	},
	{
		feature:     "XP Multipliers",
		requirement: "7-day streak",
		unlocked:    func(u domain.User) bool { return u.CurrentStreak >= 7 },
	},
	{
		feature:     "Custom Challenges",
		requirement: "1,000 total XP",
		unlocked:    func(u domain.User) bool { return u.TotalXP >= 1000 },
	},
	{
		feature:     "Leaderboards",
		requirement: "Premium Pro plan",
		unlocked:    func(u domain.User) bool { return u.Tier == domain.TierPremiumPro },
	},
	{
		feature:     "Team Challenges",
		requirement: "Premium Pro plan and a 14-day streak",
		unlocked: func(u domain.User) bool {
			return u.Tier == domain.TierPremiumPro && u.CurrentStreak >= 14
		},
	},
}

// ProgressiveUnlocks evaluates the feature-availability table for a user.
// The result always contains all 7 features in fixed order.
func ProgressiveUnlocks(user domain.User) []domain.UnlockEntry {
	entries := make([]domain.UnlockEntry, 0, len(unlockRules))
	for _, rule := range unlockRules {
		entries = append(entries, domain.UnlockEntry{
			Feature:     rule.feature,
			Unlocked:    rule.unlocked(user),
			Requirement: rule.requirement,
		})
	}
	return entries
}
