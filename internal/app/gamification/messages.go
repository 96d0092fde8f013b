package gamification

import (
	"strconv"
	"strings"

	"github.com/taskpulse/taskpulse/internal/domain"
)

// MessageContext names the moment a motivational message is shown.
type MessageContext string

const (
	MessageTaskCompletion  MessageContext = "task_completion"
	MessageStreakMilestone MessageContext = "streak_milestone"
	MessageLowEnergy       MessageContext = "low_energy"
)

// genericMessage is the fallback when no template matches.
const genericMessage = "Great work! Keep building momentum."

// messageTemplates is the 4×3 archetype/context table. Templates may
// interpolate {streak} and {xp} from the user snapshot.
var messageTemplates = map[domain.Archetype]map[MessageContext]string{
	domain.ArchetypeAchiever: {
		MessageTaskCompletion:  "Task complete — {xp} XP and counting. Nothing stops you.",
		MessageStreakMilestone: "{streak} days straight. That's what commitment looks like.",
		MessageLowEnergy:       "Even champions rest. One small task keeps the {streak}-day streak alive.",
	},
	domain.ArchetypeCompetitor: {
		MessageTaskCompletion:  "Done! You're at {xp} XP — your personal best is within reach.",
		MessageStreakMilestone: "A {streak}-day streak puts you ahead of the pack. Keep the lead.",
		MessageLowEnergy:       "Rivals rest too. Beat them by finishing just one thing today.",
	},
	domain.ArchetypeExplorer: {
		MessageTaskCompletion:  "Another path explored. {xp} XP earned on the journey.",
		MessageStreakMilestone: "{streak} days of discovery — try a new category next.",
		MessageLowEnergy:       "Low on energy? Switch it up — novelty is your fuel.",
	},
	domain.ArchetypeSocializer: {
		MessageTaskCompletion:  "Nice one! That's {xp} XP worth sharing.",
		MessageStreakMilestone: "{streak} days strong — your circle would be proud.",
		MessageLowEnergy:       "Tough day? A small win is still worth celebrating together.",
	},
}

// MotivationalMessage selects a user-facing string for the given moment.
// The archetype is re-derived from the user snapshot, so the message stays
// consistent with the rest of the personalization. Unknown (archetype,
// context) pairs fall back to a generic encouragement.
func MotivationalMessage(user domain.User, context MessageContext) string {
	cluster := AnalyzePersonality(user, nil)

	contexts, ok := messageTemplates[cluster.Type]
	if !ok {
		return genericMessage
	}
	template, ok := contexts[context]
	if !ok {
		return genericMessage
	}

	return renderMessage(template, user)
}

// renderMessage substitutes {streak} and {xp} placeholders.
func renderMessage(template string, user domain.User) string {
	msg := strings.ReplaceAll(template, "{streak}", strconv.Itoa(clampNonNegative(user.CurrentStreak)))
	msg = strings.ReplaceAll(msg, "{xp}", strconv.FormatInt(user.TotalXP, 10))
	return msg
}
