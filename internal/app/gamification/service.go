package gamification

import "github.com/taskpulse/taskpulse/internal/domain"

// Service is the composing facade over the engine components. It only
// sequences calls — no component output feeds back into engine state, and
// every invocation derives everything fresh from the supplied records.
type Service struct {
	engine *Engine
}

// NewService creates a service over the given engine.
func NewService(engine *Engine) *Service {
	return &Service{engine: engine}
}

// Engine exposes the underlying engine for callers that need a single
// component (e.g. streak evaluation without the full completion flow).
func (s *Service) Engine() *Engine {
	return s.engine
}

// TaskCompletionResult is everything derived from one completed task.
type TaskCompletionResult struct {
	XPAwarded int64           `json:"xp_awarded"`
	Rewards   []domain.Reward `json:"rewards"`
	Badges    []domain.Badge  `json:"badges"`
	Message   string          `json:"message"`
}

// TaskCompleted scores one completed task: base XP, probabilistic
// micro-rewards, the badge set as it stands after the XP award, and a
// personalized message. The caller persists the XP delta and any newly
// earned badges.
func (s *Service) TaskCompleted(user domain.User, task domain.Task, actualMinutes int) TaskCompletionResult {
	xp := CalculateTaskXP(task, actualMinutes)

	rewards := s.engine.MicroRewards(user, ContextTaskCompletion)

	// Badge thresholds are checked against the post-award total.
	settled := user
	settled.TotalXP += xp

	return TaskCompletionResult{
		XPAwarded: xp,
		Rewards:   rewards,
		Badges:    StatusBadges(settled),
		Message:   MotivationalMessage(user, MessageTaskCompletion),
	}
}

// HabitCheckInResult is everything derived from one habit completion.
type HabitCheckInResult struct {
	Streak  StreakUpdate    `json:"streak"`
	Rewards []domain.Reward `json:"rewards"`
	Message string          `json:"message"`
}

// HabitCheckIn evaluates a habit completion: the streak transition, and —
// when the new streak lands on a milestone — the milestone power-up and a
// celebration message. The caller persists the new streak onto the habit
// and the user record.
func (s *Service) HabitCheckIn(user domain.User, habit domain.Habit, completion domain.HabitCompletion) HabitCheckInResult {
	update := s.engine.UpdateHabitStreak(habit, completion)

	result := HabitCheckInResult{Streak: update}
	if update.MilestoneReached {
		settled := user
		settled.CurrentStreak = update.NewStreak
		result.Rewards = s.engine.MicroRewards(settled, ContextStreakMilestone)
		result.Message = MotivationalMessage(settled, MessageStreakMilestone)
	}
	return result
}

// RefreshResult is the daily personalization snapshot.
type RefreshResult struct {
	Cluster    domain.PersonalityCluster `json:"cluster"`
	Challenges []domain.Challenge        `json:"challenges"`
	Unlocks    []domain.UnlockEntry      `json:"unlocks"`
}

// Refresh derives the daily personalization bundle: the behavioral cluster,
// the archetype's challenge list, and the feature-unlock table.
func (s *Service) Refresh(user domain.User, history []domain.CompletionRecord, currentTasks []domain.Task) RefreshResult {
	cluster := AnalyzePersonality(user, history)
	return RefreshResult{
		Cluster:    cluster,
		Challenges: s.engine.PersonalizedChallenges(user, cluster, currentTasks),
		Unlocks:    ProgressiveUnlocks(user),
	}
}
