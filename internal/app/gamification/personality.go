package gamification

import "github.com/taskpulse/taskpulse/internal/domain"

// clusterDefinitions holds the static trait and preference tables per
// archetype. Read-only lookup data initialized at load; AnalyzePersonality
// returns copies so callers cannot mutate the tables.
var clusterDefinitions = map[domain.Archetype]domain.PersonalityCluster{
	domain.ArchetypeAchiever: {
		Type:   domain.ArchetypeAchiever,
		Traits: []string{"goal_oriented", "persistent", "completionist"},
		Preferences: domain.ClusterPreferences{
			RewardTypes:       []string{"badge", "xp"},
			ChallengeTypes:    []string{"milestone", "streak"},
			MotivationTactics: []string{"progress_tracking", "streak_celebration"},
		},
	},
	domain.ArchetypeCompetitor: {
		Type:   domain.ArchetypeCompetitor,
		Traits: []string{"ambitious", "fast_paced", "score_driven"},
		Preferences: domain.ClusterPreferences{
			RewardTypes:       []string{"xp", "power_up"},
			ChallengeTypes:    []string{"daily", "speed"},
			MotivationTactics: []string{"personal_records", "rivalry_framing"},
		},
	},
	domain.ArchetypeExplorer: {
		Type:   domain.ArchetypeExplorer,
		Traits: []string{"curious", "adaptable", "variety_seeking"},
		Preferences: domain.ClusterPreferences{
			RewardTypes:       []string{"power_up", "challenge_unlock"},
			ChallengeTypes:    []string{"weekly", "variety"},
			MotivationTactics: []string{"novelty", "discovery_prompts"},
		},
	},
	domain.ArchetypeSocializer: {
		Type:   domain.ArchetypeSocializer,
		Traits: []string{"collaborative", "supportive", "community_minded"},
		Preferences: domain.ClusterPreferences{
			RewardTypes:       []string{"badge", "challenge_unlock"},
			ChallengeTypes:    []string{"weekly", "community"},
			MotivationTactics: []string{"social_recognition", "shared_goals"},
		},
	},
}

// AnalyzePersonality classifies a user into one of four behavioral
// archetypes from aggregate stats and recent task outcomes.
//
// The branch order is load-bearing: a user satisfying both the achiever and
// competitor criteria must always classify as achiever. Callers elsewhere
// depend on that precedence, so the chain below is evaluated first match
// wins.
func AnalyzePersonality(user domain.User, history []domain.CompletionRecord) domain.PersonalityCluster {
	currentStreak := clampNonNegative(user.CurrentStreak)
	longestStreak := clampNonNegative(user.LongestStreak)
	totalXP := user.TotalXP
	if totalXP < 0 {
		totalXP = 0
	}

	// Neutral prior when there is no history to judge by.
	completionRate := 0.5
	if len(history) > 0 {
		completed := 0
		for _, record := range history {
			if record.Completed {
				completed++
			}
		}
		completionRate = float64(completed) / float64(len(history))
	}

	avgTasksPerDay := float64(totalXP) / float64(maxInt(1, currentStreak))
	streakConsistency := float64(currentStreak) / float64(maxInt(1, longestStreak))

	var archetype domain.Archetype
	switch {
	case completionRate > 0.8 && currentStreak > 7:
		archetype = domain.ArchetypeAchiever
	case avgTasksPerDay > 5:
		archetype = domain.ArchetypeCompetitor
	case streakConsistency > 0.7:
		archetype = domain.ArchetypeExplorer
	default:
		archetype = domain.ArchetypeSocializer
	}

	return clusterFor(archetype)
}

// clusterFor returns a defensive copy of the static cluster definition.
func clusterFor(archetype domain.Archetype) domain.PersonalityCluster {
	def := clusterDefinitions[archetype]
	return domain.PersonalityCluster{
		Type:   def.Type,
		Traits: append([]string(nil), def.Traits...),
		Preferences: domain.ClusterPreferences{
			RewardTypes:       append([]string(nil), def.Preferences.RewardTypes...),
			ChallengeTypes:    append([]string(nil), def.Preferences.ChallengeTypes...),
			MotivationTactics: append([]string(nil), def.Preferences.MotivationTactics...),
		},
	}
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
