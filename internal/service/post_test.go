package service

import (
	"errors"
	"mime/multipart"
	"testing"

	"github.com/ashchan-dev/ashchan/internal/domain"
	internal_errors "github.com/ashchan-dev/ashchan/internal/errors"
)

type MockPostStorage struct {
	CreateReplyFunc func(board domain.BoardSlug, threadID domain.ThreadId, message, media string) (domain.PostId, error)
}

func (m *MockPostStorage) CreateReply(board domain.BoardSlug, threadID domain.ThreadId, message, media string) (domain.PostId, error) {
	if m.CreateReplyFunc != nil {
		return m.CreateReplyFunc(board, threadID, message, media)
	}
	return 1, nil
}

func TestPostCreate(t *testing.T) {
	storage := &MockPostStorage{}
	media := &MockMediaStore{}
	service := NewPost(storage, media, &MockMessageValidator{})

	id, err := service.Create(domain.PostCreationData{Board: "b", ThreadId: 1, Message: "hello"})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if id != 1 {
		t.Errorf("Unexpected id: got %d, expected 1", id)
	}
	if media.Calls != 0 {
		t.Errorf("Media store must not be called without a file field")
	}

	// validation failure skips media and storage
	validator := &MockMessageValidator{MessageFunc: func(string) error {
		return internal_errors.BadRequest("Message is required")
	}}
	storage.CreateReplyFunc = func(domain.BoardSlug, domain.ThreadId, string, string) (domain.PostId, error) {
		t.Error("Storage must not be reached when validation fails")
		return 0, nil
	}
	service = NewPost(storage, media, validator)
	_, err = service.Create(domain.PostCreationData{
		Board: "b", ThreadId: 1,
		Media: &multipart.FileHeader{Filename: "x.png"},
	})
	if err == nil {
		t.Error("Expected validation error")
	}
	if media.Calls != 0 {
		t.Errorf("Media ingestion must be skipped for invalid requests, got %d calls", media.Calls)
	}
}

func TestPostCreateMissingThread(t *testing.T) {
	notFound := internal_errors.NotFound("Thread not found")
	storage := &MockPostStorage{
		CreateReplyFunc: func(domain.BoardSlug, domain.ThreadId, string, string) (domain.PostId, error) {
			return 0, notFound
		},
	}
	service := NewPost(storage, &MockMediaStore{}, &MockMessageValidator{})

	_, err := service.Create(domain.PostCreationData{Board: "b", ThreadId: 999, Message: "hello"})
	if !errors.Is(err, notFound) {
		t.Errorf("Expected not found, got: %v", err)
	}
}

func TestPostCreateWithMedia(t *testing.T) {
	var gotMedia string
	var gotMessage string
	storage := &MockPostStorage{
		CreateReplyFunc: func(board domain.BoardSlug, threadID domain.ThreadId, message, media string) (domain.PostId, error) {
			gotMessage, gotMedia = message, media
			return 3, nil
		},
	}
	service := NewPost(storage, &MockMediaStore{}, &MockMessageValidator{})

	id, err := service.Create(domain.PostCreationData{
		Board: "b", ThreadId: 1, Message: "  reply text ",
		Media: &multipart.FileHeader{Filename: "cat.png"},
	})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if id != 3 {
		t.Errorf("Unexpected id: got %d, expected 3", id)
	}
	if gotMessage != "reply text" {
		t.Errorf("Expected trimmed message, got %q", gotMessage)
	}
	if gotMedia != "b/stored.png" {
		t.Errorf("Expected stored media path, got %q", gotMedia)
	}
}
