// Package sqlite provides SQLite-based persistent storage for TaskPulse.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Account state the engine scores against
		`CREATE TABLE IF NOT EXISTS users (
			id             TEXT PRIMARY KEY,
			tier           TEXT NOT NULL DEFAULT 'free',
			total_xp       INTEGER NOT NULL DEFAULT 0,
			current_streak INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			updated_at     INTEGER NOT NULL
		)`,

		// Habits and their check-in log
		`CREATE TABLE IF NOT EXISTS habits (
			id             TEXT PRIMARY KEY,
			user_id        TEXT NOT NULL,
			name           TEXT NOT NULL,
			current_streak INTEGER NOT NULL DEFAULT 0,
			updated_at     INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id)`,
		`CREATE TABLE IF NOT EXISTS habit_completions (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			habit_id     TEXT NOT NULL,
			user_id      TEXT NOT NULL,
			completed_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_habit_completions ON habit_completions(habit_id, completed_at)`,

		// Task outcome history feeding the personality classifier
		`CREATE TABLE IF NOT EXISTS completion_history (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id     TEXT NOT NULL,
			task_id     TEXT NOT NULL DEFAULT '',
			completed   BOOLEAN NOT NULL,
			recorded_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_user ON completion_history(user_id, recorded_at)`,

		// Unlocked badges (idempotent grants)
		`CREATE TABLE IF NOT EXISTS badges (
			user_id     TEXT NOT NULL,
			badge_id    TEXT NOT NULL,
			title       TEXT NOT NULL,
			description TEXT NOT NULL,
			tier        TEXT NOT NULL,
			unlocked_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, badge_id)
		)`,

		// Reward ledger
		`CREATE TABLE IF NOT EXISTS rewards (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			type        TEXT NOT NULL,
			value_kind  TEXT NOT NULL,
			value_num   INTEGER NOT NULL DEFAULT 0,
			value_id    TEXT NOT NULL DEFAULT '',
			title       TEXT NOT NULL,
			description TEXT NOT NULL,
			rarity      TEXT NOT NULL,
			granted_at  INTEGER NOT NULL,
			claimed_at  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rewards_user ON rewards(user_id, granted_at)`,

		// Generated challenges, replaced on each refresh
		`CREATE TABLE IF NOT EXISTS challenges (
			id              TEXT PRIMARY KEY,
			user_id         TEXT NOT NULL,
			title           TEXT NOT NULL,
			description     TEXT NOT NULL,
			type            TEXT NOT NULL,
			req_tasks       INTEGER NOT NULL DEFAULT 0,
			req_streak      INTEGER NOT NULL DEFAULT 0,
			req_category    TEXT NOT NULL DEFAULT '',
			req_timeframe_h INTEGER NOT NULL DEFAULT 0,
			rewards         TEXT NOT NULL DEFAULT '[]',
			is_active       BOOLEAN NOT NULL DEFAULT 0,
			expires_at      INTEGER,
			created_at      INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_challenges_user ON challenges(user_id)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
