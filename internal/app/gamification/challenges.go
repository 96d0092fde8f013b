package gamification

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskpulse/taskpulse/internal/domain"
)

// PersonalizedChallenges generates the archetype-specific challenge for a
// user. Exactly one template is considered per call, selected by the
// cluster's archetype:
//
//   - achiever: "Streak Master", a milestone challenge with no deadline;
//     active only once the user is at a 7-day streak or better.
//   - competitor: "Speed Demon", a daily sprint expiring 24h out.
//   - explorer: "Category Explorer", a weekly goal expiring 7 days out.
//   - socializer: "Knowledge Sharer", weekly, paid tiers only — free-tier
//     socializers get no challenge.
//
// currentTasks is accepted but not yet consulted; the slot is reserved for
// task-aware challenge tailoring so callers won't need a signature change.
func (e *Engine) PersonalizedChallenges(user domain.User, cluster domain.PersonalityCluster, currentTasks []domain.Task) []domain.Challenge {
	_ = currentTasks

	now := e.now()

	switch cluster.Type {
	case domain.ArchetypeAchiever:
		return []domain.Challenge{{
			ID:          challengeID(),
			Title:       "Streak Master",
			Description: "Push your daily streak to 10 days.",
			Type:        domain.ChallengeMilestone,
			Requirements: domain.ChallengeRequirements{
				Streak: 10,
			},
			Rewards: []domain.Reward{{
				Type:        domain.RewardXP,
				Value:       domain.NumericValue(100),
				Title:       "Streak Master Reward",
				Description: "XP for a 10-day streak.",
				Rarity:      domain.RarityEpic,
			}},
			IsActive: user.CurrentStreak >= 7,
		}}

	case domain.ArchetypeCompetitor:
		return []domain.Challenge{{
			ID:          challengeID(),
			Title:       "Speed Demon",
			Description: "Complete 5 tasks within a 2-hour window.",
			Type:        domain.ChallengeDaily,
			Requirements: domain.ChallengeRequirements{
				Tasks:          5,
				TimeframeHours: 2,
			},
			Rewards: []domain.Reward{{
				Type:        domain.RewardXP,
				Value:       domain.NumericValue(50),
				Title:       "Speed Demon Reward",
				Description: "XP for a 5-task sprint.",
				Rarity:      domain.RarityRare,
			}},
			IsActive:  true,
			ExpiresAt: now.Add(24 * time.Hour),
		}}

	case domain.ArchetypeExplorer:
		return []domain.Challenge{{
			ID:          challengeID(),
			Title:       "Category Explorer",
			Description: "Complete tasks in 4 different categories this week.",
			Type:        domain.ChallengeWeekly,
			Requirements: domain.ChallengeRequirements{
				Tasks: 4,
			},
			Rewards: []domain.Reward{{
				Type:        domain.RewardXP,
				Value:       domain.NumericValue(75),
				Title:       "Category Explorer Reward",
				Description: "XP for spreading work across categories.",
				Rarity:      domain.RarityRare,
			}},
			IsActive:  true,
			ExpiresAt: now.AddDate(0, 0, 7),
		}}

	case domain.ArchetypeSocializer:
		// Tier gate: socializer challenges are a paid feature.
		if !user.Tier.Paid() {
			return nil
		}
		return []domain.Challenge{{
			ID:          challengeID(),
			Title:       "Knowledge Sharer",
			Description: "Complete 3 tasks you can share with your circle.",
			Type:        domain.ChallengeWeekly,
			Requirements: domain.ChallengeRequirements{
				Tasks: 3,
			},
			Rewards: []domain.Reward{{
				Type:        domain.RewardXP,
				Value:       domain.NumericValue(60),
				Title:       "Knowledge Sharer Reward",
				Description: "XP for shareable wins.",
				Rarity:      domain.RarityRare,
			}},
			IsActive:  true,
			ExpiresAt: now.AddDate(0, 0, 7),
		}}
	}

	return nil
}

// challengeID mints a unique challenge instance ID.
func challengeID() string {
	return "challenge-" + uuid.NewString()
}
