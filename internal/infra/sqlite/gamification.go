package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/taskpulse/taskpulse/internal/domain"
)

// ─── Users ──────────────────────────────────────────────────────────────────

// UpsertUser inserts or updates a user record.
func (d *DB) UpsertUser(u domain.User) error {
	_, err := d.db.Exec(
		`INSERT INTO users (id, tier, total_xp, current_streak, longest_streak, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			tier=excluded.tier,
			total_xp=excluded.total_xp,
			current_streak=excluded.current_streak,
			longest_streak=excluded.longest_streak,
			updated_at=excluded.updated_at`,
		u.ID, u.Tier, u.TotalXP, u.CurrentStreak, u.LongestStreak, time.Now().Unix(),
	)
	return err
}

// GetUser retrieves a user by ID.
func (d *DB) GetUser(id string) (*domain.User, error) {
	var u domain.User
	err := d.db.QueryRow(
		`SELECT id, tier, total_xp, current_streak, longest_streak FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Tier, &u.TotalXP, &u.CurrentStreak, &u.LongestStreak)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AddUserXP atomically adds an XP delta to a user's lifetime total.
func (d *DB) AddUserXP(id string, delta int64) error {
	result, err := d.db.Exec(
		`UPDATE users SET total_xp = total_xp + ?, updated_at = ? WHERE id = ?`,
		delta, time.Now().Unix(), id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetUserStreak records a new current streak and settles the longest-streak
// high-water mark in the same statement.
func (d *DB) SetUserStreak(id string, streak int) error {
	result, err := d.db.Exec(
		`UPDATE users SET
			current_streak = ?,
			longest_streak = MAX(longest_streak, ?),
			updated_at = ?
		 WHERE id = ?`,
		streak, streak, time.Now().Unix(), id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ─── Habits ─────────────────────────────────────────────────────────────────

// UpsertHabit inserts or updates a habit record.
func (d *DB) UpsertHabit(h domain.Habit) error {
	_, err := d.db.Exec(
		`INSERT INTO habits (id, user_id, name, current_streak, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			user_id=excluded.user_id,
			name=excluded.name,
			current_streak=excluded.current_streak,
			updated_at=excluded.updated_at`,
		h.ID, h.UserID, h.Name, h.CurrentStreak, time.Now().Unix(),
	)
	return err
}

// GetHabit retrieves a habit by ID.
func (d *DB) GetHabit(id string) (*domain.Habit, error) {
	var h domain.Habit
	err := d.db.QueryRow(
		`SELECT id, user_id, name, current_streak FROM habits WHERE id = ?`, id,
	).Scan(&h.ID, &h.UserID, &h.Name, &h.CurrentStreak)
	if err == sql.ErrNoRows {
		return nil, domain.ErrHabitNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// SetHabitStreak records a habit's new streak value.
func (d *DB) SetHabitStreak(id string, streak int) error {
	result, err := d.db.Exec(
		`UPDATE habits SET current_streak = ?, updated_at = ? WHERE id = ?`,
		streak, time.Now().Unix(), id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

// InsertHabitCompletion appends one check-in to a habit's completion log.
func (d *DB) InsertHabitCompletion(userID string, c domain.HabitCompletion) error {
	_, err := d.db.Exec(
		`INSERT INTO habit_completions (habit_id, user_id, completed_at) VALUES (?, ?, ?)`,
		c.HabitID, userID, c.CompletedAt.Unix(),
	)
	return err
}

// LastHabitCompletion returns the most recent check-in for a habit, or nil
// when the habit has never been completed.
func (d *DB) LastHabitCompletion(habitID string) (*domain.HabitCompletion, error) {
	var at int64
	err := d.db.QueryRow(
		`SELECT completed_at FROM habit_completions
		 WHERE habit_id = ? ORDER BY completed_at DESC LIMIT 1`, habitID,
	).Scan(&at)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.HabitCompletion{HabitID: habitID, CompletedAt: time.Unix(at, 0)}, nil
}

// ─── Completion History ─────────────────────────────────────────────────────

// RecordCompletion appends one task outcome to the user's history.
func (d *DB) RecordCompletion(userID, taskID string, completed bool) error {
	_, err := d.db.Exec(
		`INSERT INTO completion_history (user_id, task_id, completed, recorded_at)
		 VALUES (?, ?, ?, ?)`,
		userID, taskID, completed, time.Now().Unix(),
	)
	return err
}

// CompletionHistory returns the user's most recent task outcomes, newest
// first, capped at limit.
func (d *DB) CompletionHistory(userID string, limit int) ([]domain.CompletionRecord, error) {
	rows, err := d.db.Query(
		`SELECT completed FROM completion_history
		 WHERE user_id = ? ORDER BY recorded_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.CompletionRecord
	for rows.Next() {
		var r domain.CompletionRecord
		if err := rows.Scan(&r.Completed); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ─── Badges ─────────────────────────────────────────────────────────────────

// UnlockBadge records a badge grant. Returns true when the badge is newly
// unlocked, false when the user already held it.
func (d *DB) UnlockBadge(userID string, b domain.Badge) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO badges (user_id, badge_id, title, description, tier, unlocked_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, b.ID, b.Title, b.Description, b.Tier, time.Now().Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// ListBadges returns all badges a user holds, oldest unlock first.
func (d *DB) ListBadges(userID string) ([]domain.Badge, error) {
	rows, err := d.db.Query(
		`SELECT badge_id, title, description, tier FROM badges
		 WHERE user_id = ? ORDER BY unlocked_at ASC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []domain.Badge
	for rows.Next() {
		var b domain.Badge
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.Tier); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// ─── Reward Ledger ──────────────────────────────────────────────────────────

// InsertReward appends one granted reward to the ledger.
func (d *DB) InsertReward(g domain.GrantedReward) error {
	_, err := d.db.Exec(
		`INSERT INTO rewards (id, user_id, type, value_kind, value_num, value_id, title, description, rarity, granted_at, claimed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Reward.Type, g.Reward.Value.Kind,
		g.Reward.Value.Amount, g.Reward.Value.ID,
		g.Reward.Title, g.Reward.Description, g.Reward.Rarity,
		g.GrantedAt.Unix(), nullableUnix(g.ClaimedAt),
	)
	return err
}

// ListRewards returns the user's reward ledger, newest grant first.
func (d *DB) ListRewards(userID string) ([]domain.GrantedReward, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, type, value_kind, value_num, value_id, title, description, rarity, granted_at, claimed_at
		 FROM rewards WHERE user_id = ? ORDER BY granted_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rewards []domain.GrantedReward
	for rows.Next() {
		g, err := scanReward(rows)
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, *g)
	}
	return rewards, rows.Err()
}

// ClaimReward marks a ledger entry as claimed. Returns the claimed entry, or
// ErrRewardNotFound / ErrRewardAlreadyClaimed.
func (d *DB) ClaimReward(userID, rewardID string) (*domain.GrantedReward, error) {
	row := d.db.QueryRow(
		`SELECT id, user_id, type, value_kind, value_num, value_id, title, description, rarity, granted_at, claimed_at
		 FROM rewards WHERE id = ? AND user_id = ?`, rewardID, userID,
	)
	g, err := scanReward(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrRewardNotFound
	}
	if err != nil {
		return nil, err
	}
	if g.Claimed() {
		return nil, domain.ErrRewardAlreadyClaimed
	}

	g.ClaimedAt = time.Now()
	if _, err := d.db.Exec(
		`UPDATE rewards SET claimed_at = ? WHERE id = ?`,
		g.ClaimedAt.Unix(), g.ID,
	); err != nil {
		return nil, err
	}
	return g, nil
}

// ─── Challenges ─────────────────────────────────────────────────────────────

// ReplaceChallenges swaps a user's challenge set atomically: the previous
// generation is dropped and the new one stored.
func (d *DB) ReplaceChallenges(userID string, challenges []domain.Challenge) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM challenges WHERE user_id = ?`, userID); err != nil {
		return err
	}

	now := time.Now().Unix()
	for _, c := range challenges {
		rewardsJSON, err := json.Marshal(c.Rewards)
		if err != nil {
			return fmt.Errorf("encode challenge rewards: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT INTO challenges (id, user_id, title, description, type, req_tasks, req_streak, req_category, req_timeframe_h, rewards, is_active, expires_at, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, userID, c.Title, c.Description, c.Type,
			c.Requirements.Tasks, c.Requirements.Streak,
			c.Requirements.Category, c.Requirements.TimeframeHours,
			string(rewardsJSON), c.IsActive, nullableUnix(c.ExpiresAt), now,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListChallenges returns a user's stored challenges.
func (d *DB) ListChallenges(userID string) ([]domain.Challenge, error) {
	rows, err := d.db.Query(
		`SELECT id, title, description, type, req_tasks, req_streak, req_category, req_timeframe_h, rewards, is_active, expires_at
		 FROM challenges WHERE user_id = ? ORDER BY created_at ASC, id ASC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var challenges []domain.Challenge
	for rows.Next() {
		var (
			c           domain.Challenge
			rewardsJSON string
			expiresAt   sql.NullInt64
		)
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.Type,
			&c.Requirements.Tasks, &c.Requirements.Streak,
			&c.Requirements.Category, &c.Requirements.TimeframeHours,
			&rewardsJSON, &c.IsActive, &expiresAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(rewardsJSON), &c.Rewards); err != nil {
			return nil, fmt.Errorf("decode challenge rewards: %w", err)
		}
		if expiresAt.Valid {
			c.ExpiresAt = time.Unix(expiresAt.Int64, 0)
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReward(s scanner) (*domain.GrantedReward, error) {
	var g domain.GrantedReward
	var grantedAt int64
	var claimedAt sql.NullInt64

	err := s.Scan(&g.ID, &g.UserID, &g.Reward.Type, &g.Reward.Value.Kind,
		&g.Reward.Value.Amount, &g.Reward.Value.ID,
		&g.Reward.Title, &g.Reward.Description, &g.Reward.Rarity,
		&grantedAt, &claimedAt)
	if err != nil {
		return nil, err
	}

	g.GrantedAt = time.Unix(grantedAt, 0)
	if claimedAt.Valid {
		g.ClaimedAt = time.Unix(claimedAt.Int64, 0)
	}
	return &g, nil
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}
