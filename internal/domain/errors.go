package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Record lookup errors
	ErrUserNotFound  = errors.New("user not found")
	ErrHabitNotFound = errors.New("habit not found")

	// Reward ledger errors
	ErrRewardNotFound       = errors.New("reward not found")
	ErrRewardAlreadyClaimed = errors.New("reward already claimed")

	// Input validation errors
	ErrUnknownContext = errors.New("unknown gamification context")
	ErrInvalidXP      = errors.New("xp amount must be positive")
)
