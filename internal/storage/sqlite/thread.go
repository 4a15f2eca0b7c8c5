package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ashchan-dev/ashchan/internal/domain"
	internal_errors "github.com/ashchan-dev/ashchan/internal/errors"
)

func (s *Storage) CreateThread(board domain.BoardSlug, subject, message, media string) (domain.ThreadId, error) {
	now := s.now().Unix()

	var id domain.ThreadId
	err := s.db.QueryRow(`
		INSERT INTO threads (board, subject, message, media, created_at, bumped)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`, board, subject, message, mediaValue(media), now, now).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("failed to insert thread: %w", err)
	}
	return id, nil
}

// GetThread fetches one thread and all its posts in chronological
// order. Board scoping is the caller's job; the returned record
// carries the owning board.
func (s *Storage) GetThread(id domain.ThreadId) (*domain.Thread, error) {
	var t domain.Thread
	err := s.db.QueryRow(`
		SELECT id, board, subject, message, COALESCE(media, ''), created_at, bumped
		FROM threads
		WHERE id = ?
	`, id).Scan(&t.Id, &t.Board, &t.Subject, &t.Message, &t.Media, &t.CreatedAt, &t.Bumped)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Thread not found")
		}
		return nil, fmt.Errorf("failed to fetch thread: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT id, thread_id, message, COALESCE(media, ''), created_at
		FROM posts
		WHERE thread_id = ?
		ORDER BY id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.Id, &p.ThreadId, &p.Message, &p.Media, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		t.Posts = append(t.Posts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return &t, nil
}

// GetThreadsPage returns one listing slice ordered by recency. Ties on
// bumped break by id so repeated reads page identically.
func (s *Storage) GetThreadsPage(board domain.BoardSlug, limit, offset int) ([]*domain.Thread, error) {
	rows, err := s.db.Query(`
		SELECT id, board, subject, message, COALESCE(media, ''), created_at, bumped
		FROM threads
		WHERE board = ?
		ORDER BY bumped DESC, id
		LIMIT ? OFFSET ?
	`, board, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch threads page: %w", err)
	}
	defer rows.Close()

	var threads []*domain.Thread
	for rows.Next() {
		var t domain.Thread
		if err := rows.Scan(&t.Id, &t.Board, &t.Subject, &t.Message, &t.Media, &t.CreatedAt, &t.Bumped); err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return threads, nil
}

func (s *Storage) CountThreads(board domain.BoardSlug) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM threads WHERE board = ?`, board).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count threads: %w", err)
	}
	return n, nil
}

// DeleteThread removes a thread and, via the foreign key, its posts.
// Media files are not reclaimed.
func (s *Storage) DeleteThread(board domain.BoardSlug, id domain.ThreadId) error {
	result, err := s.db.Exec(`DELETE FROM threads WHERE board = ? AND id = ?`, board, id)
	if err != nil {
		return fmt.Errorf("failed to delete thread: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Thread not found")
	}
	return nil
}
