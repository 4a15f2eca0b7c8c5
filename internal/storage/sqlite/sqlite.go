package sqlite

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/ashchan-dev/ashchan/internal/logger"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS threads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		board TEXT NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		media TEXT,
		created_at INTEGER NOT NULL,
		bumped INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_threads_board_bumped ON threads (board, bumped DESC, id)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		thread_id INTEGER NOT NULL REFERENCES threads (id) ON DELETE CASCADE,
		message TEXT NOT NULL,
		media TEXT,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_thread ON posts (thread_id, id)`,
}

type Storage struct {
	db *sql.DB

	// now is swapped out in tests to drive bump-ordering scenarios.
	now func() time.Time
}

func New(path string) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	logger.Log.Info("opening database", "path", path)
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Single connection fully serializes storage access; the engine's
	// own journaling covers the rest.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db, now: time.Now}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(5000)")
	return "file:" + filepath.ToSlash(path) + "?" + q.Encode()
}

func (s *Storage) initSchema() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// mediaValue maps the optional stored-file reference to its column.
func mediaValue(media string) sql.NullString {
	return sql.NullString{String: media, Valid: media != ""}
}
