package gamification

import "github.com/taskpulse/taskpulse/internal/domain"

// RewardContext names the event that may trigger micro-rewards.
type RewardContext string

const (
	ContextTaskCompletion  RewardContext = "task_completion"
	ContextStreakMilestone RewardContext = "streak_milestone"
	ContextCategoryVariety RewardContext = "category_variety"
)

// surpriseBonusChance is the per-call probability of the random task bonus.
// There is deliberately no per-day cap on repeat awards; the reward ledger
// records every grant, so a rate limit can be layered on later without
// changing the engine.
const surpriseBonusChance = 0.10

// MicroRewards generates small contextual incentives.
//
//   - task_completion: a rare 25 XP surprise bonus with 10% probability per
//     call (uniform draw from the engine's random source); otherwise nothing.
//   - streak_milestone: a focus-boost power-up when the streak is a positive
//     multiple of 5 — legendary at 20+ days, epic below.
//   - category_variety: always a common 15 XP variety bonus.
//
// Unknown contexts yield no rewards.
func (e *Engine) MicroRewards(user domain.User, context RewardContext) []domain.Reward {
	switch context {
	case ContextTaskCompletion:
		if e.rnd() < surpriseBonusChance {
			return []domain.Reward{{
				Type:        domain.RewardXP,
				Value:       domain.NumericValue(25),
				Title:       "Surprise Bonus",
				Description: "A random burst of bonus XP for completing a task.",
				Rarity:      domain.RarityRare,
			}}
		}
		return nil

	case ContextStreakMilestone:
		streak := clampNonNegative(user.CurrentStreak)
		if streak == 0 || streak%milestoneInterval != 0 {
			return nil
		}
		rarity := domain.RarityEpic
		if streak >= 20 {
			rarity = domain.RarityLegendary
		}
		return []domain.Reward{{
			Type:        domain.RewardPowerUp,
			Value:       domain.IdentifierValue("focus_boost"),
			Title:       "Focus Boost",
			Description: "Milestone power-up: your next focus session hits harder.",
			Rarity:      rarity,
		}}

	case ContextCategoryVariety:
		return []domain.Reward{{
			Type:        domain.RewardXP,
			Value:       domain.NumericValue(15),
			Title:       "Variety Bonus",
			Description: "Bonus XP for working across different categories.",
			Rarity:      domain.RarityCommon,
		}}
	}

	return nil
}

// StatusBadges evaluates the three independent badge families against the
// user's stats and concatenates the results. Within a family the tiers are
// mutually exclusive and the highest threshold wins, so a user earns at most
// one badge per family but may hold all three families at once.
func StatusBadges(user domain.User) []domain.Badge {
	var badges []domain.Badge

	// Streak family
	streak := clampNonNegative(user.CurrentStreak)
	switch {
	case streak >= 30:
		badges = append(badges, domain.Badge{
			ID:          "streak_legend",
			Title:       "Streak Legend",
			Description: "30+ day streak — relentless.",
			Tier:        domain.RarityLegendary,
		})
	case streak >= 14:
		badges = append(badges, domain.Badge{
			ID:          "streak_champion",
			Title:       "Streak Champion",
			Description: "Two full weeks without missing a day.",
			Tier:        domain.RarityEpic,
		})
	case streak >= 7:
		badges = append(badges, domain.Badge{
			ID:          "consistent_performer",
			Title:       "Consistent Performer",
			Description: "A full week of daily progress.",
			Tier:        domain.RarityRare,
		})
	}

	// XP family
	xp := user.TotalXP
	switch {
	case xp >= 10000:
		badges = append(badges, domain.Badge{
			ID:          "productivity_master",
			Title:       "Productivity Master",
			Description: "10,000 lifetime XP.",
			Tier:        domain.RarityLegendary,
		})
	case xp >= 5000:
		badges = append(badges, domain.Badge{
			ID:          "productivity_expert",
			Title:       "Productivity Expert",
			Description: "5,000 lifetime XP.",
			Tier:        domain.RarityEpic,
		})
	case xp >= 1000:
		badges = append(badges, domain.Badge{
			ID:          "rising_star",
			Title:       "Rising Star",
			Description: "1,000 lifetime XP.",
			Tier:        domain.RarityRare,
		})
	}

	// Tier family
	switch {
	case user.Tier == domain.TierPremiumPro:
		badges = append(badges, domain.Badge{
			ID:          "premium_member",
			Title:       "Premium Member",
			Description: "Premium Pro subscriber.",
			Tier:        domain.RarityLegendary,
		})
	case user.Tier.Paid():
		badges = append(badges, domain.Badge{
			ID:          "pro_member",
			Title:       "Pro Member",
			Description: "Paid subscriber.",
			Tier:        domain.RarityEpic,
		})
	}

	return badges
}
