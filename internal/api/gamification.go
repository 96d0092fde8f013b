package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/taskpulse/taskpulse/internal/app/gamification"
	"github.com/taskpulse/taskpulse/internal/domain"
)

// ─── Gamification API (/api/gamification/*) ─────────────────────────────────

var validPriorities = map[domain.Priority]bool{
	domain.PriorityLow:    true,
	domain.PriorityMedium: true,
	domain.PriorityHigh:   true,
	domain.PriorityUrgent: true,
}

// --- POST /task-completed ---

type taskCompletedRequest struct {
	UserID        string      `json:"user_id"`
	Task          domain.Task `json:"task"`
	ActualMinutes int         `json:"actual_minutes"`
}

func (s *Server) handleTaskCompleted(w http.ResponseWriter, r *http.Request) {
	var req taskCompletedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.Task.Priority == "" {
		req.Task.Priority = domain.PriorityLow
	}
	if !validPriorities[req.Task.Priority] {
		writeError(w, http.StatusBadRequest, "unknown priority: "+string(req.Task.Priority))
		return
	}

	outcome, err := s.progress.CompleteTask(req.UserID, req.Task, req.ActualMinutes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// --- POST /habit-checkin ---

type habitCheckInRequest struct {
	UserID      string    `json:"user_id"`
	HabitID     string    `json:"habit_id"`
	Name        string    `json:"name,omitempty"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

func (s *Server) handleHabitCheckIn(w http.ResponseWriter, r *http.Request) {
	var req habitCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID == "" || req.HabitID == "" {
		writeError(w, http.StatusBadRequest, "user_id and habit_id are required")
		return
	}

	outcome, err := s.progress.CheckInHabit(req.UserID, req.HabitID, req.Name, req.CompletedAt)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// --- POST /claim-reward ---

type claimRewardRequest struct {
	UserID   string `json:"user_id"`
	RewardID string `json:"reward_id"`
}

func (s *Server) handleClaimReward(w http.ResponseWriter, r *http.Request) {
	var req claimRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID == "" || req.RewardID == "" {
		writeError(w, http.StatusBadRequest, "user_id and reward_id are required")
		return
	}

	claimed, err := s.progress.ClaimReward(req.UserID, req.RewardID)
	switch {
	case errors.Is(err, domain.ErrRewardNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, domain.ErrRewardAlreadyClaimed):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, claimed)
}

// --- POST /challenges/refresh ---

type refreshRequest struct {
	UserID string `json:"user_id"`
}

func (s *Server) handleRefreshChallenges(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	result, err := s.progress.RefreshChallenges(req.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// --- GET endpoints ---

// userID pulls the required user_id query parameter, writing a 400 when
// missing.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("user_id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return "", false
	}
	return id, true
}

func (s *Server) handleChallenges(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	challenges, err := s.progress.Challenges(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"challenges": challenges,
	})
}

func (s *Server) handleUnlocks(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	unlocks, err := s.progress.Unlocks(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"unlocks": unlocks,
	})
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	badges, err := s.progress.Badges(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"badges": badges,
	})
}

func (s *Server) handleRewards(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	rewards, err := s.progress.Rewards(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rewards": rewards,
	})
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	context := gamification.MessageContext(r.URL.Query().Get("context"))
	if context == "" {
		context = gamification.MessageTaskCompletion
	}

	message, err := s.progress.Message(id, context)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": message,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	summary, err := s.progress.UserSummary(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
