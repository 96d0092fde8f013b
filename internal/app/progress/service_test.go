package progress

import (
	"errors"
	"testing"
	"time"

	"github.com/taskpulse/taskpulse/internal/app/gamification"
	"github.com/taskpulse/taskpulse/internal/domain"
	"github.com/taskpulse/taskpulse/internal/infra/sqlite"
)

// testService wires a real SQLite store to an engine with a pinned random
// draw. The clock stays real so check-ins land on "today".
func testService(t *testing.T, draw float64) *Service {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	engine := gamification.NewEngineWithSources(time.Now, func() float64 { return draw })
	return NewService(db, gamification.NewService(engine))
}

func TestCompleteTaskSettlesEverything(t *testing.T) {
	svc := testService(t, 0.99) // no surprise bonus
	svc.RegisterUser(domain.User{ID: "u1", Tier: domain.TierFree, TotalXP: 990})

	outcome, err := svc.CompleteTask("u1", domain.Task{ID: "t1", Priority: domain.PriorityLow}, 0)
	if err != nil {
		t.Fatalf("complete task: %v", err)
	}

	if outcome.XPAwarded != 10 || outcome.TotalXP != 1000 {
		t.Errorf("got (awarded=%d, total=%d), want (10, 1000)", outcome.XPAwarded, outcome.TotalXP)
	}
	if len(outcome.Rewards) != 0 {
		t.Errorf("expected no micro-rewards, got %d", len(outcome.Rewards))
	}
	if outcome.Message == "" {
		t.Error("expected a motivational message")
	}

	// Crossing 1000 XP unlocks rising_star, persisted as new.
	found := false
	for _, b := range outcome.NewBadges {
		if b.ID == "rising_star" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected rising_star in new badges, got %+v", outcome.NewBadges)
	}

	user, _ := svc.GetUser("u1")
	if user.TotalXP != 1000 {
		t.Errorf("stored total_xp = %d, want 1000", user.TotalXP)
	}

	// Second completion: badge already held, nothing new.
	outcome2, err := svc.CompleteTask("u1", domain.Task{ID: "t2", Priority: domain.PriorityLow}, 0)
	if err != nil {
		t.Fatalf("second completion: %v", err)
	}
	if len(outcome2.NewBadges) != 0 {
		t.Errorf("expected no new badges on repeat, got %+v", outcome2.NewBadges)
	}
}

func TestCompleteTaskSurpriseBonusSettlesXP(t *testing.T) {
	svc := testService(t, 0.01) // always hits the 10% draw
	svc.RegisterUser(domain.User{ID: "u1", Tier: domain.TierFree})

	outcome, err := svc.CompleteTask("u1", domain.Task{ID: "t1", Priority: domain.PriorityLow}, 0)
	if err != nil {
		t.Fatalf("complete task: %v", err)
	}

	if len(outcome.Rewards) != 1 || outcome.Rewards[0].Reward.Title != "Surprise Bonus" {
		t.Fatalf("expected the surprise bonus, got %+v", outcome.Rewards)
	}
	// 10 task XP + 25 bonus settle together.
	if outcome.TotalXP != 35 {
		t.Errorf("total = %d, want 35", outcome.TotalXP)
	}

	ledger, _ := svc.Rewards("u1")
	if len(ledger) != 1 || ledger[0].Claimed() {
		t.Errorf("expected one unclaimed ledger entry, got %+v", ledger)
	}
}

func TestCompleteTaskProvisionsUser(t *testing.T) {
	svc := testService(t, 0.99)

	if _, err := svc.CompleteTask("fresh", domain.Task{ID: "t1", Priority: domain.PriorityMedium}, 0); err != nil {
		t.Fatalf("complete task: %v", err)
	}

	user, err := svc.GetUser("fresh")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Tier != domain.TierFree || user.TotalXP != 12 {
		t.Errorf("provisioned user = %+v, want free tier with 12 XP", user)
	}
}

func TestCheckInHabitFirstTime(t *testing.T) {
	svc := testService(t, 0.99)

	outcome, err := svc.CheckInHabit("u1", "h1", "morning run", time.Now())
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if outcome.Streak.NewStreak != 1 || outcome.Streak.MilestoneReached {
		t.Errorf("streak = %+v, want fresh streak of 1", outcome.Streak)
	}

	// Same-day retry is a no-op.
	dup, err := svc.CheckInHabit("u1", "h1", "morning run", time.Now())
	if err != nil {
		t.Fatalf("duplicate check in: %v", err)
	}
	if !dup.Duplicate || dup.Streak.NewStreak != 1 {
		t.Errorf("got %+v, want duplicate at streak 1", dup)
	}
}

func TestCheckInHabitMilestone(t *testing.T) {
	svc := testService(t, 0.99)
	svc.RegisterUser(domain.User{ID: "u1", Tier: domain.TierFree, CurrentStreak: 4, LongestStreak: 4})
	if err := svc.db.UpsertHabit(domain.Habit{ID: "h1", UserID: "u1", Name: "reading", CurrentStreak: 4}); err != nil {
		t.Fatalf("seed habit: %v", err)
	}

	outcome, err := svc.CheckInHabit("u1", "h1", "reading", time.Now())
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if outcome.Streak.NewStreak != 5 || !outcome.Streak.MilestoneReached {
		t.Fatalf("streak = %+v, want milestone at 5", outcome.Streak)
	}
	if len(outcome.Rewards) != 1 || outcome.Rewards[0].Reward.Value.ID != "focus_boost" {
		t.Errorf("expected the focus boost, got %+v", outcome.Rewards)
	}
	if outcome.Message == "" {
		t.Error("milestone should carry a message")
	}

	user, _ := svc.GetUser("u1")
	if user.CurrentStreak != 5 || user.LongestStreak != 5 {
		t.Errorf("user streaks = (%d, %d), want (5, 5)", user.CurrentStreak, user.LongestStreak)
	}
	habit, _ := svc.db.GetHabit("h1")
	if habit.CurrentStreak != 5 {
		t.Errorf("habit streak = %d, want 5", habit.CurrentStreak)
	}
}

func TestRefreshChallengesPersists(t *testing.T) {
	svc := testService(t, 0.99)
	// avgTasksPerDay = 100/10 → competitor → one daily challenge.
	svc.RegisterUser(domain.User{ID: "u1", Tier: domain.TierFree, TotalXP: 100, CurrentStreak: 10, LongestStreak: 10})

	result, err := svc.RefreshChallenges("u1")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if result.Cluster.Type != domain.ArchetypeCompetitor {
		t.Errorf("cluster = %s, want competitor", result.Cluster.Type)
	}
	if len(result.Challenges) != 1 || result.Challenges[0].Type != domain.ChallengeDaily {
		t.Fatalf("expected one daily challenge, got %+v", result.Challenges)
	}

	stored, err := svc.Challenges("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != result.Challenges[0].ID {
		t.Errorf("stored %+v, want the refreshed set", stored)
	}
}

func TestChallengesGeneratesOnFirstRead(t *testing.T) {
	svc := testService(t, 0.99)
	svc.RegisterUser(domain.User{ID: "u1", Tier: domain.TierFree, TotalXP: 100, CurrentStreak: 10, LongestStreak: 10})

	challenges, err := svc.Challenges("u1")
	if err != nil {
		t.Fatalf("challenges: %v", err)
	}
	if len(challenges) != 1 {
		t.Errorf("expected a lazily generated set, got %d", len(challenges))
	}
}

func TestClaimRewardFlow(t *testing.T) {
	svc := testService(t, 0.01)
	svc.RegisterUser(domain.User{ID: "u1", Tier: domain.TierFree})
	outcome, err := svc.CompleteTask("u1", domain.Task{ID: "t1", Priority: domain.PriorityLow}, 0)
	if err != nil {
		t.Fatalf("complete task: %v", err)
	}

	rewardID := outcome.Rewards[0].ID
	claimed, err := svc.ClaimReward("u1", rewardID)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if !claimed.Claimed() {
		t.Error("claim should stamp the entry")
	}

	if _, err := svc.ClaimReward("u1", rewardID); !errors.Is(err, domain.ErrRewardAlreadyClaimed) {
		t.Errorf("re-claim err = %v, want ErrRewardAlreadyClaimed", err)
	}
	if _, err := svc.ClaimReward("u1", "ghost"); !errors.Is(err, domain.ErrRewardNotFound) {
		t.Errorf("missing err = %v, want ErrRewardNotFound", err)
	}
}

func TestUserSummary(t *testing.T) {
	svc := testService(t, 0.99)
	svc.RegisterUser(domain.User{ID: "u1", Tier: domain.TierPro, TotalXP: 1200, CurrentStreak: 8, LongestStreak: 9})
	if _, err := svc.RefreshChallenges("u1"); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	summary, err := svc.UserSummary("u1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if summary.User.ID != "u1" || summary.User.Tier != domain.TierPro {
		t.Errorf("user = %+v", summary.User)
	}
	if summary.Cluster.Type == "" {
		t.Error("summary should carry a derived cluster")
	}
	if len(summary.Unlocks) != 7 {
		t.Errorf("unlocks = %d entries, want 7", len(summary.Unlocks))
	}
	// 1200 XP + streak 8 + pro tier → rising_star, consistent_performer, pro_member.
	if len(summary.Badges) != 3 {
		t.Errorf("badges = %+v, want 3", summary.Badges)
	}
	if len(summary.Challenges) == 0 {
		t.Error("summary should include the stored challenges")
	}
}
