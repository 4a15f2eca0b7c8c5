package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ashchan-dev/ashchan/internal/domain"
	internal_errors "github.com/ashchan-dev/ashchan/internal/errors"
)

// CreateReply inserts a post and bumps its thread in one transaction,
// so a listing never observes the post without the new bump value.
func (s *Storage) CreateReply(board domain.BoardSlug, threadID domain.ThreadId, message, media string) (domain.PostId, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return -1, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // ignored once committed

	var threadBoard domain.BoardSlug
	err = tx.QueryRow(`SELECT board FROM threads WHERE id = ?`, threadID).Scan(&threadBoard)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return -1, internal_errors.NotFound("Thread not found")
		}
		return -1, fmt.Errorf("failed to fetch thread: %w", err)
	}
	if threadBoard != board {
		// a thread id from another board is indistinguishable from a
		// missing one
		return -1, internal_errors.NotFound("Thread not found")
	}

	now := s.now().Unix()

	var id domain.PostId
	err = tx.QueryRow(`
		INSERT INTO posts (thread_id, message, media, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`, threadID, message, mediaValue(media), now).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("failed to insert post: %w", err)
	}

	// MAX keeps bumped non-decreasing even across clock steps.
	if _, err := tx.Exec(`UPDATE threads SET bumped = MAX(bumped, ?) WHERE id = ?`, now, threadID); err != nil {
		return -1, fmt.Errorf("failed to bump thread: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return -1, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

func (s *Storage) CountPosts(threadID domain.ThreadId) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE thread_id = ?`, threadID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return n, nil
}

// GetLastPosts returns the n most recent posts of a thread in
// chronological order, oldest of the sample first.
func (s *Storage) GetLastPosts(threadID domain.ThreadId, n int) ([]*domain.Post, error) {
	rows, err := s.db.Query(`
		SELECT id, thread_id, message, COALESCE(media, ''), created_at
		FROM posts
		WHERE thread_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, threadID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last posts: %w", err)
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.Id, &p.ThreadId, &p.Message, &p.Media, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	for i, j := 0, len(posts)-1; i < j; i, j = i+1, j-1 {
		posts[i], posts[j] = posts[j], posts[i]
	}
	return posts, nil
}
