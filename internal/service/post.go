package service

import (
	"strings"

	"github.com/ashchan-dev/ashchan/internal/domain"
	internal_errors "github.com/ashchan-dev/ashchan/internal/errors"
)

type PostService interface {
	Create(data domain.PostCreationData) (domain.PostId, error)
}

type Post struct {
	storage PostStorage
	media   MediaStore
	message MessageValidator
}

type PostStorage interface {
	CreateReply(board domain.BoardSlug, threadID domain.ThreadId, message, media string) (domain.PostId, error)
}

func NewPost(storage PostStorage, media MediaStore, message MessageValidator) *Post {
	return &Post{storage, media, message}
}

// Create validates and appends a reply. The storage call both inserts
// the post and bumps the thread, atomically.
func (p *Post) Create(data domain.PostCreationData) (domain.PostId, error) {
	message := strings.TrimSpace(data.Message)

	if err := p.message.Message(message); err != nil {
		return 0, err
	}

	media, err := ingestMedia(p.media, data.Board, data.Media)
	if err != nil {
		return 0, err
	}

	return p.storage.CreateReply(data.Board, data.ThreadId, message, media)
}

func errThreadNotFound() error {
	return internal_errors.NotFound("Thread not found")
}
