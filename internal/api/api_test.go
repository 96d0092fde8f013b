package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/taskpulse/taskpulse/internal/app/gamification"
	"github.com/taskpulse/taskpulse/internal/app/progress"
	"github.com/taskpulse/taskpulse/internal/domain"
	"github.com/taskpulse/taskpulse/internal/infra/sqlite"
)

// newTestServer builds a server over a real store with a pinned random draw.
func newTestServer(t *testing.T, draw float64) (*Server, *progress.Service) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	engine := gamification.NewEngineWithSources(time.Now, func() float64 { return draw })
	svc := progress.NewService(db, gamification.NewService(engine))
	return NewServer(svc, "test"), svc
}

func postJSON(t *testing.T, handler http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func getJSON(t *testing.T, handler http.Handler, path string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return rec
}

// ═══════════════════════════════════════════════════════════════════════════
// Status endpoints
// ═══════════════════════════════════════════════════════════════════════════

func TestStatusEndpoints(t *testing.T) {
	server, _ := newTestServer(t, 0.99)
	handler := server.Handler()

	for _, path := range []string{"/health", "/api/status", "/api/version"} {
		rec := getJSON(t, handler, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}

	var version map[string]string
	getJSON(t, handler, "/api/version", &version)
	if version["version"] != "test" {
		t.Errorf("version = %q, want %q", version["version"], "test")
	}
}

func TestMetricsGated(t *testing.T) {
	server, _ := newTestServer(t, 0.99)
	if rec := getJSON(t, server.Handler(), "/metrics", nil); rec.Code == http.StatusOK {
		t.Error("metrics should be disabled by default")
	}

	server.EnableMetrics()
	if rec := getJSON(t, server.Handler(), "/metrics", nil); rec.Code != http.StatusOK {
		t.Errorf("enabled metrics = %d, want 200", rec.Code)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Task completion
// ═══════════════════════════════════════════════════════════════════════════

func TestTaskCompletedEndpoint(t *testing.T) {
	server, _ := newTestServer(t, 0.99)
	handler := server.Handler()

	rec := postJSON(t, handler, "/api/gamification/task-completed", map[string]interface{}{
		"user_id": "u1",
		"task": map[string]interface{}{
			"id":       "t1",
			"priority": "high",
			"category": "learning",
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var outcome progress.TaskOutcome
	if err := json.Unmarshal(rec.Body.Bytes(), &outcome); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// high * learning = 10 * 1.5 * 1.3 = 19.5 → 20
	if outcome.XPAwarded != 20 {
		t.Errorf("xp = %d, want 20", outcome.XPAwarded)
	}
	if outcome.Message == "" {
		t.Error("expected a message")
	}
}

func TestTaskCompletedValidation(t *testing.T) {
	server, _ := newTestServer(t, 0.99)
	handler := server.Handler()

	rec := postJSON(t, handler, "/api/gamification/task-completed", map[string]interface{}{
		"task": map[string]interface{}{"priority": "high"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing user_id = %d, want 400", rec.Code)
	}

	rec = postJSON(t, handler, "/api/gamification/task-completed", map[string]interface{}{
		"user_id": "u1",
		"task":    map[string]interface{}{"priority": "extreme"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown priority = %d, want 400", rec.Code)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Habit check-in
// ═══════════════════════════════════════════════════════════════════════════

func TestHabitCheckInEndpoint(t *testing.T) {
	server, _ := newTestServer(t, 0.99)
	handler := server.Handler()

	body := map[string]interface{}{
		"user_id":  "u1",
		"habit_id": "h1",
		"name":     "morning run",
	}
	rec := postJSON(t, handler, "/api/gamification/habit-checkin", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var outcome progress.CheckInOutcome
	json.Unmarshal(rec.Body.Bytes(), &outcome)
	if outcome.Streak.NewStreak != 1 || outcome.Duplicate {
		t.Errorf("got %+v, want fresh streak of 1", outcome)
	}

	// Same-day retry
	rec = postJSON(t, handler, "/api/gamification/habit-checkin", body)
	json.Unmarshal(rec.Body.Bytes(), &outcome)
	if !outcome.Duplicate {
		t.Error("second check-in today should be flagged duplicate")
	}

	rec = postJSON(t, handler, "/api/gamification/habit-checkin", map[string]interface{}{"user_id": "u1"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing habit_id = %d, want 400", rec.Code)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Reward claims
// ═══════════════════════════════════════════════════════════════════════════

func TestClaimRewardEndpoint(t *testing.T) {
	server, svc := newTestServer(t, 0.01) // surprise bonus always fires
	handler := server.Handler()

	outcome, err := svc.CompleteTask("u1", domain.Task{ID: "t1", Priority: domain.PriorityLow}, 0)
	if err != nil {
		t.Fatalf("seed task: %v", err)
	}
	rewardID := outcome.Rewards[0].ID

	rec := postJSON(t, handler, "/api/gamification/claim-reward", map[string]string{
		"user_id":   "u1",
		"reward_id": rewardID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("claim = %d, body %s", rec.Code, rec.Body.String())
	}

	// Re-claim conflicts
	rec = postJSON(t, handler, "/api/gamification/claim-reward", map[string]string{
		"user_id":   "u1",
		"reward_id": rewardID,
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("re-claim = %d, want 409", rec.Code)
	}

	rec = postJSON(t, handler, "/api/gamification/claim-reward", map[string]string{
		"user_id":   "u1",
		"reward_id": "ghost",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing reward = %d, want 404", rec.Code)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Personalization reads
// ═══════════════════════════════════════════════════════════════════════════

func TestUnlocksEndpoint(t *testing.T) {
	server, _ := newTestServer(t, 0.99)
	handler := server.Handler()

	var resp struct {
		Unlocks []domain.UnlockEntry `json:"unlocks"`
	}
	rec := getJSON(t, handler, "/api/gamification/unlocks?user_id=u1", &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(resp.Unlocks) != 7 {
		t.Errorf("unlocks = %d entries, want 7", len(resp.Unlocks))
	}

	if rec := getJSON(t, handler, "/api/gamification/unlocks", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("missing user_id = %d, want 400", rec.Code)
	}
}

func TestChallengesEndpoints(t *testing.T) {
	server, svc := newTestServer(t, 0.99)
	handler := server.Handler()
	// competitor profile → one daily challenge
	svc.RegisterUser(domain.User{ID: "u1", Tier: domain.TierFree, TotalXP: 100, CurrentStreak: 10, LongestStreak: 10})

	rec := postJSON(t, handler, "/api/gamification/challenges/refresh", map[string]string{"user_id": "u1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Challenges []domain.Challenge `json:"challenges"`
	}
	getJSON(t, handler, "/api/gamification/challenges?user_id=u1", &resp)
	if len(resp.Challenges) != 1 || resp.Challenges[0].Type != domain.ChallengeDaily {
		t.Errorf("challenges = %+v, want one daily", resp.Challenges)
	}
}

func TestMessageEndpoint(t *testing.T) {
	server, _ := newTestServer(t, 0.99)
	handler := server.Handler()

	var resp map[string]string
	rec := getJSON(t, handler, "/api/gamification/message?user_id=u1&context=low_energy", &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp["message"] == "" {
		t.Error("expected a non-empty message")
	}
}

func TestSummaryEndpoint(t *testing.T) {
	server, svc := newTestServer(t, 0.99)
	handler := server.Handler()
	svc.RegisterUser(domain.User{ID: "u1", Tier: domain.TierPro, TotalXP: 1200, CurrentStreak: 8, LongestStreak: 9})

	var summary progress.Summary
	rec := getJSON(t, handler, "/api/gamification/summary?user_id=u1", &summary)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if summary.User.ID != "u1" || len(summary.Unlocks) != 7 || len(summary.Badges) == 0 {
		t.Errorf("summary = %+v", summary)
	}
}
