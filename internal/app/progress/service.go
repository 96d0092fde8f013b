// Package progress is the stateful layer over the gamification engine. It
// loads the records the engine scores against, applies the engine's output
// to storage (XP totals, streaks, the reward ledger, badges, challenges),
// and exports Prometheus counters along the way. The engine itself never
// touches storage.
package progress

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/taskpulse/taskpulse/internal/app/gamification"
	"github.com/taskpulse/taskpulse/internal/domain"
	"github.com/taskpulse/taskpulse/internal/infra/metrics"
	"github.com/taskpulse/taskpulse/internal/infra/sqlite"
)

// historyLimit caps how many task outcomes feed the personality classifier.
const historyLimit = 50

// Service wires the pure engine to SQLite persistence.
type Service struct {
	db     *sqlite.DB
	engine *gamification.Service
}

// NewService creates a progress service.
func NewService(db *sqlite.DB, engine *gamification.Service) *Service {
	return &Service{db: db, engine: engine}
}

// ensureUser loads a user, provisioning a free-tier record on first touch.
func (s *Service) ensureUser(userID string) (domain.User, error) {
	user, err := s.db.GetUser(userID)
	if err == nil {
		return *user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, err
	}

	fresh := domain.User{ID: userID, Tier: domain.TierFree}
	if err := s.db.UpsertUser(fresh); err != nil {
		return domain.User{}, err
	}
	log.Printf("[progress] provisioned user %s", userID)
	return fresh, nil
}

// ─── Task Completion ────────────────────────────────────────────────────────

// TaskOutcome is the persisted result of scoring one completed task.
type TaskOutcome struct {
	XPAwarded int64                  `json:"xp_awarded"`
	TotalXP   int64                  `json:"total_xp"`
	Rewards   []domain.GrantedReward `json:"rewards"`
	NewBadges []domain.Badge         `json:"new_badges"`
	Message   string                 `json:"message"`
}

// CompleteTask scores a completed task and settles everything it produces:
// the XP award (plus any numeric micro-reward XP), the reward ledger entries,
// newly crossed badges, and the task's history record.
func (s *Service) CompleteTask(userID string, task domain.Task, actualMinutes int) (*TaskOutcome, error) {
	user, err := s.ensureUser(userID)
	if err != nil {
		return nil, err
	}

	result := s.engine.TaskCompleted(user, task, actualMinutes)

	delta := result.XPAwarded
	granted := make([]domain.GrantedReward, 0, len(result.Rewards))
	for _, r := range result.Rewards {
		entry := domain.GrantedReward{
			ID:        "reward-" + uuid.NewString(),
			UserID:    userID,
			Reward:    r,
			GrantedAt: time.Now(),
		}
		if err := s.db.InsertReward(entry); err != nil {
			return nil, err
		}
		granted = append(granted, entry)
		metrics.RewardsGranted.WithLabelValues(string(r.Rarity)).Inc()

		// XP micro-rewards settle immediately; power-ups wait for a claim.
		if r.Value.Kind == domain.ValueNumeric {
			delta += r.Value.Amount
		}
	}

	if err := s.db.AddUserXP(userID, delta); err != nil {
		return nil, err
	}
	if err := s.db.RecordCompletion(userID, task.ID, true); err != nil {
		return nil, err
	}

	newBadges, err := s.settleBadges(userID, result.Badges)
	if err != nil {
		return nil, err
	}

	metrics.TasksCompleted.WithLabelValues(string(task.Priority)).Inc()
	metrics.XPAwarded.Add(float64(delta))
	metrics.XPPerTask.Observe(float64(result.XPAwarded))

	return &TaskOutcome{
		XPAwarded: result.XPAwarded,
		TotalXP:   user.TotalXP + delta,
		Rewards:   granted,
		NewBadges: newBadges,
		Message:   result.Message,
	}, nil
}

// settleBadges persists derived badges and returns the newly unlocked ones.
func (s *Service) settleBadges(userID string, badges []domain.Badge) ([]domain.Badge, error) {
	var fresh []domain.Badge
	for _, b := range badges {
		newlyUnlocked, err := s.db.UnlockBadge(userID, b)
		if err != nil {
			return nil, err
		}
		if newlyUnlocked {
			fresh = append(fresh, b)
			metrics.BadgesUnlocked.WithLabelValues(b.ID).Inc()
			log.Printf("[progress] user %s unlocked badge %s", userID, b.ID)
		}
	}
	return fresh, nil
}

// ─── Habit Check-In ─────────────────────────────────────────────────────────

// CheckInOutcome is the persisted result of one habit check-in.
type CheckInOutcome struct {
	Streak    gamification.StreakUpdate `json:"streak"`
	Rewards   []domain.GrantedReward    `json:"rewards"`
	Message   string                    `json:"message"`
	Duplicate bool                      `json:"duplicate,omitempty"`
}

// CheckInHabit records a habit completion and settles the streak transition.
// A second check-in on the same day is a no-op (Duplicate is set) so clients
// can retry safely. The habit is created on first check-in.
func (s *Service) CheckInHabit(userID, habitID, name string, at time.Time) (*CheckInOutcome, error) {
	user, err := s.ensureUser(userID)
	if err != nil {
		return nil, err
	}

	habit, err := s.db.GetHabit(habitID)
	if errors.Is(err, domain.ErrHabitNotFound) {
		habit = &domain.Habit{ID: habitID, UserID: userID, Name: name}
		if err := s.db.UpsertHabit(*habit); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if at.IsZero() {
		at = time.Now()
	}

	last, err := s.db.LastHabitCompletion(habitID)
	if err != nil {
		return nil, err
	}
	if last != nil && sameDay(last.CompletedAt, at) {
		return &CheckInOutcome{
			Streak:    gamification.StreakUpdate{NewStreak: habit.CurrentStreak},
			Duplicate: true,
		}, nil
	}

	completion := domain.HabitCompletion{HabitID: habitID, CompletedAt: at}
	result := s.engine.HabitCheckIn(user, *habit, completion)

	if err := s.db.InsertHabitCompletion(userID, completion); err != nil {
		return nil, err
	}
	if err := s.db.SetHabitStreak(habitID, result.Streak.NewStreak); err != nil {
		return nil, err
	}
	if err := s.db.SetUserStreak(userID, result.Streak.NewStreak); err != nil {
		return nil, err
	}

	if result.Streak.NewStreak == 1 && habit.CurrentStreak > 1 {
		metrics.StreakResets.Inc()
		log.Printf("[progress] user %s streak reset after %d days", userID, habit.CurrentStreak)
	}

	outcome := &CheckInOutcome{Streak: result.Streak, Message: result.Message}
	if result.Streak.MilestoneReached {
		metrics.StreakMilestones.Inc()
		var delta int64
		for _, r := range result.Rewards {
			entry := domain.GrantedReward{
				ID:        "reward-" + uuid.NewString(),
				UserID:    userID,
				Reward:    r,
				GrantedAt: time.Now(),
			}
			if err := s.db.InsertReward(entry); err != nil {
				return nil, err
			}
			outcome.Rewards = append(outcome.Rewards, entry)
			metrics.RewardsGranted.WithLabelValues(string(r.Rarity)).Inc()
			if r.Value.Kind == domain.ValueNumeric {
				delta += r.Value.Amount
			}
		}
		if delta > 0 {
			if err := s.db.AddUserXP(userID, delta); err != nil {
				return nil, err
			}
			metrics.XPAwarded.Add(float64(delta))
		}
	}
	return outcome, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// ─── Personalization ────────────────────────────────────────────────────────

// RefreshChallenges re-derives the personalization bundle and replaces the
// user's stored challenge set with the new generation.
func (s *Service) RefreshChallenges(userID string) (*gamification.RefreshResult, error) {
	user, err := s.ensureUser(userID)
	if err != nil {
		return nil, err
	}
	history, err := s.db.CompletionHistory(userID, historyLimit)
	if err != nil {
		return nil, err
	}

	result := s.engine.Refresh(user, history, nil)
	if err := s.db.ReplaceChallenges(userID, result.Challenges); err != nil {
		return nil, err
	}

	metrics.ChallengesGenerated.WithLabelValues(string(result.Cluster.Type)).
		Add(float64(len(result.Challenges)))
	return &result, nil
}

// Challenges returns the user's stored challenge set, generating one first
// when none exists yet.
func (s *Service) Challenges(userID string) ([]domain.Challenge, error) {
	if _, err := s.ensureUser(userID); err != nil {
		return nil, err
	}
	challenges, err := s.db.ListChallenges(userID)
	if err != nil {
		return nil, err
	}
	if len(challenges) > 0 {
		return challenges, nil
	}

	result, err := s.RefreshChallenges(userID)
	if err != nil {
		return nil, err
	}
	return result.Challenges, nil
}

// Unlocks evaluates the progressive-unlock table for the user.
func (s *Service) Unlocks(userID string) ([]domain.UnlockEntry, error) {
	user, err := s.ensureUser(userID)
	if err != nil {
		return nil, err
	}
	return gamification.ProgressiveUnlocks(user), nil
}

// Badges settles and returns the user's full badge collection.
func (s *Service) Badges(userID string) ([]domain.Badge, error) {
	user, err := s.ensureUser(userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.settleBadges(userID, gamification.StatusBadges(user)); err != nil {
		return nil, err
	}
	return s.db.ListBadges(userID)
}

// Message selects a motivational message for the given moment.
func (s *Service) Message(userID string, context gamification.MessageContext) (string, error) {
	user, err := s.ensureUser(userID)
	if err != nil {
		return "", err
	}
	return gamification.MotivationalMessage(user, context), nil
}

// ─── Reward Ledger ──────────────────────────────────────────────────────────

// Rewards returns the user's reward ledger, newest first.
func (s *Service) Rewards(userID string) ([]domain.GrantedReward, error) {
	if _, err := s.ensureUser(userID); err != nil {
		return nil, err
	}
	return s.db.ListRewards(userID)
}

// ClaimReward marks a ledger entry claimed. Claiming an XP reward is a
// no-op for the total (XP settles at grant time); power-ups and unlocks
// record the claim for the client to act on.
func (s *Service) ClaimReward(userID, rewardID string) (*domain.GrantedReward, error) {
	if _, err := s.ensureUser(userID); err != nil {
		return nil, err
	}
	claimed, err := s.db.ClaimReward(userID, rewardID)
	if err != nil {
		return nil, err
	}
	metrics.RewardsClaimed.Inc()
	return claimed, nil
}

// ─── Summary ────────────────────────────────────────────────────────────────

// Summary is the full dashboard snapshot for a user.
type Summary struct {
	User       domain.User               `json:"user"`
	Cluster    domain.PersonalityCluster `json:"cluster"`
	Badges     []domain.Badge            `json:"badges"`
	Unlocks    []domain.UnlockEntry      `json:"unlocks"`
	Challenges []domain.Challenge        `json:"challenges"`
	Rewards    []domain.GrantedReward    `json:"rewards"`
}

// UserSummary assembles the dashboard snapshot: account state, the derived
// cluster, the badge collection, the unlock table, stored challenges, and
// the reward ledger.
func (s *Service) UserSummary(userID string) (*Summary, error) {
	user, err := s.ensureUser(userID)
	if err != nil {
		return nil, err
	}
	history, err := s.db.CompletionHistory(userID, historyLimit)
	if err != nil {
		return nil, err
	}
	badges, err := s.Badges(userID)
	if err != nil {
		return nil, err
	}
	challenges, err := s.db.ListChallenges(userID)
	if err != nil {
		return nil, err
	}
	rewards, err := s.db.ListRewards(userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		User:       user,
		Cluster:    gamification.AnalyzePersonality(user, history),
		Badges:     badges,
		Unlocks:    gamification.ProgressiveUnlocks(user),
		Challenges: challenges,
		Rewards:    rewards,
	}, nil
}

// RegisterUser creates or updates the account record directly, for tier
// changes and test fixtures.
func (s *Service) RegisterUser(user domain.User) error {
	return s.db.UpsertUser(user)
}

// GetUser returns the stored account record.
func (s *Service) GetUser(userID string) (*domain.User, error) {
	return s.db.GetUser(userID)
}
