package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Session records one completed workout. Live timer state is never
// persisted; a row is written only when a bounded mode reaches its end.
type Session struct {
	ID          string
	Mode        string
	Total       time.Duration
	CompletedAt time.Time
}

// History stores completed workouts in SQLite.
type History struct {
	db *sql.DB
}

// OpenHistory opens or creates the history database at path.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS sessions (
            id TEXT PRIMARY KEY,
            mode TEXT NOT NULL,
            total_ms INTEGER NOT NULL,
            completed_at DATETIME NOT NULL
        )
    `)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the database.
func (history *History) Close() error {
	return history.db.Close()
}

// RecordSession inserts a completed session, assigning an ID if empty.
func (history *History) RecordSession(session *Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	_, err := history.db.Exec(`
        INSERT INTO sessions (id, mode, total_ms, completed_at)
        VALUES (?, ?, ?, ?)
    `, session.ID, session.Mode, session.Total.Milliseconds(), session.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// RecentSessions returns the most recently completed sessions, newest first.
func (history *History) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := history.db.Query(`
        SELECT id, mode, total_ms, completed_at
        FROM sessions
        ORDER BY completed_at DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var session Session
		var totalMs int64
		if err := rows.Scan(&session.ID, &session.Mode, &totalMs, &session.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		session.Total = time.Duration(totalMs) * time.Millisecond
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// Count returns the total number of completed sessions.
func (history *History) Count() (int, error) {
	var count int
	if err := history.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

// HistoryPath returns the default database location for the app.
func HistoryPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	dir := filepath.Join(configDir, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return filepath.Join(dir, "history.db"), nil
}
