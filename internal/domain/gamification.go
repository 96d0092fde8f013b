// Package domain holds the pure gamification types.
// Everything here is plain data — no storage, no clock, no randomness.
// The engine in internal/app/gamification derives ephemeral output entities
// (clusters, challenges, rewards, badges, unlocks) from these records; the
// caller decides what to persist.
package domain

import "time"

// ─── Subscription Tiers ─────────────────────────────────────────────────────

// Tier is the subscription level gating feature access.
type Tier string

const (
	TierFree        Tier = "free"
	TierBasic       Tier = "basic"
	TierPro         Tier = "pro"
	TierAdvancedPro Tier = "advanced_pro"
	TierPremiumPro  Tier = "premium_pro"
)

// Paid reports whether the tier is any non-free subscription.
func (t Tier) Paid() bool {
	switch t {
	case TierBasic, TierPro, TierAdvancedPro, TierPremiumPro:
		return true
	}
	return false
}

// ─── User / Task / Habit ────────────────────────────────────────────────────

// User is a snapshot of the account state the engine scores against.
// TotalXP is monotonically non-decreasing; after settlement
// LongestStreak >= CurrentStreak always holds.
type User struct {
	ID            string `json:"id"`
	Tier          Tier   `json:"tier"`
	TotalXP       int64  `json:"total_xp"`
	CurrentStreak int    `json:"current_streak"` // days
	LongestStreak int    `json:"longest_streak"` // days
}

// Priority is the task urgency level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Task is a unit of work. Category and EstimatedMinutes are optional:
// an empty category or a non-positive estimate simply earns no bonus.
type Task struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Priority         Priority `json:"priority"`
	Category         string   `json:"category,omitempty"`
	EstimatedMinutes int      `json:"estimated_minutes,omitempty"`
	Completed        bool     `json:"completed"`
}

// Habit tracks a recurring behavior with a consecutive-day streak.
type Habit struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	CurrentStreak int    `json:"current_streak"`
}

// HabitCompletion records one check-in event for a habit.
type HabitCompletion struct {
	HabitID     string    `json:"habit_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// CompletionRecord is the minimal task-outcome record the personality
// classifier consumes in aggregate.
type CompletionRecord struct {
	Completed bool `json:"completed"`
}

// ─── Personality ────────────────────────────────────────────────────────────

// Archetype is one of four fixed behavioral classifications.
type Archetype string

const (
	ArchetypeAchiever   Archetype = "achiever"
	ArchetypeExplorer   Archetype = "explorer"
	ArchetypeSocializer Archetype = "socializer"
	ArchetypeCompetitor Archetype = "competitor"
)

// ClusterPreferences bundles the personalization tactics for an archetype.
type ClusterPreferences struct {
	RewardTypes       []string `json:"reward_types"`
	ChallengeTypes    []string `json:"challenge_types"`
	MotivationTactics []string `json:"motivation_tactics"`
}

// PersonalityCluster is the classifier's output: an archetype plus its
// static trait and preference tables.
type PersonalityCluster struct {
	Type        Archetype          `json:"type"`
	Traits      []string           `json:"traits"`
	Preferences ClusterPreferences `json:"preferences"`
}

// ─── Rewards ────────────────────────────────────────────────────────────────

// Rarity is the reward/badge quality tier (common < rare < epic < legendary).
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// RewardType identifies what a reward grants.
type RewardType string

const (
	RewardXP              RewardType = "xp"
	RewardBadge           RewardType = "badge"
	RewardPowerUp         RewardType = "power_up"
	RewardChallengeUnlock RewardType = "challenge_unlock"
)

// ValueKind discriminates the two shapes a reward value can take.
type ValueKind string

const (
	ValueNumeric    ValueKind = "numeric"
	ValueIdentifier ValueKind = "identifier"
)

// RewardValue is a tagged union: either a numeric amount (XP rewards) or a
// string identifier (power-ups, badges, challenge unlocks). Consumers switch
// on Kind instead of guessing from the reward type.
type RewardValue struct {
	Kind   ValueKind `json:"kind"`
	Amount int64     `json:"amount,omitempty"`
	ID     string    `json:"id,omitempty"`
}

// NumericValue builds a numeric reward value.
func NumericValue(amount int64) RewardValue {
	return RewardValue{Kind: ValueNumeric, Amount: amount}
}

// IdentifierValue builds an identifier reward value.
func IdentifierValue(id string) RewardValue {
	return RewardValue{Kind: ValueIdentifier, ID: id}
}

// Reward is a single granted incentive.
type Reward struct {
	Type        RewardType  `json:"type"`
	Value       RewardValue `json:"value"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Rarity      Rarity      `json:"rarity"`
}

// GrantedReward is one reward-ledger entry: a reward granted to a user,
// optionally claimed later. ClaimedAt is zero while unclaimed.
type GrantedReward struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Reward    Reward    `json:"reward"`
	GrantedAt time.Time `json:"granted_at"`
	ClaimedAt time.Time `json:"claimed_at,omitempty"`
}

// Claimed reports whether the reward has been claimed.
func (g GrantedReward) Claimed() bool {
	return !g.ClaimedAt.IsZero()
}

// Badge is a status badge earned by crossing a stat threshold.
type Badge struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tier        Rarity `json:"tier"`
}

// ─── Challenges ─────────────────────────────────────────────────────────────

// ChallengeType categorizes a challenge's cadence.
type ChallengeType string

const (
	ChallengeDaily     ChallengeType = "daily"
	ChallengeWeekly    ChallengeType = "weekly"
	ChallengeMilestone ChallengeType = "milestone"
)

// ChallengeRequirements is a partial record — zero values mean the
// dimension does not apply to this challenge.
type ChallengeRequirements struct {
	Tasks          int    `json:"tasks,omitempty"`
	Streak         int    `json:"streak,omitempty"`
	Category       string `json:"category,omitempty"`
	TimeframeHours int    `json:"timeframe_hours,omitempty"`
}

// Challenge is a personalized goal generated for a user.
// ExpiresAt is zero for milestone challenges (no deadline).
type Challenge struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Type         ChallengeType         `json:"type"`
	Requirements ChallengeRequirements `json:"requirements"`
	Rewards      []Reward              `json:"rewards"`
	IsActive     bool                  `json:"is_active"`
	ExpiresAt    time.Time             `json:"expires_at,omitempty"`
}

// IsExpired reports whether the challenge deadline has passed.
// Challenges without a deadline never expire.
func (c Challenge) IsExpired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// ─── Unlocks ────────────────────────────────────────────────────────────────

// UnlockEntry is one row of the progressive-unlock table.
type UnlockEntry struct {
	Feature     string `json:"feature"`
	Unlocked    bool   `json:"unlocked"`
	Requirement string `json:"requirement"`
}
