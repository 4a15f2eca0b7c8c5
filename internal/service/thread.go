package service

import (
	"mime/multipart"
	"strings"

	"github.com/ashchan-dev/ashchan/internal/domain"
)

// to mock service in tests
type ThreadService interface {
	Create(data domain.ThreadCreationData) (domain.ThreadId, error)
	Get(board domain.BoardSlug, id domain.ThreadId) (*domain.Thread, error)
}

type Thread struct {
	storage ThreadStorage
	media   MediaStore
	subject SubjectValidator
	message MessageValidator
}

type ThreadStorage interface {
	CreateThread(board domain.BoardSlug, subject, message, media string) (domain.ThreadId, error)
	GetThread(id domain.ThreadId) (*domain.Thread, error)
}

type MediaStore interface {
	Save(board domain.BoardSlug, fh *multipart.FileHeader) (string, error)
}

type SubjectValidator interface {
	Subject(subject string) error
}

type MessageValidator interface {
	Message(message string) error
}

func NewThread(storage ThreadStorage, media MediaStore, subject SubjectValidator, message MessageValidator) *Thread {
	return &Thread{storage, media, subject, message}
}

// Create runs the write pipeline in fixed order: required fields,
// length cap, media ingestion, then the insert. The I/O-bound media
// step never runs for requests that fail cheap validation.
func (t *Thread) Create(data domain.ThreadCreationData) (domain.ThreadId, error) {
	subject := strings.TrimSpace(data.Subject)
	message := strings.TrimSpace(data.Message)

	if err := t.subject.Subject(subject); err != nil {
		return 0, err
	}
	if err := t.message.Message(message); err != nil {
		return 0, err
	}

	media, err := ingestMedia(t.media, data.Board, data.Media)
	if err != nil {
		return 0, err
	}

	return t.storage.CreateThread(data.Board, subject, message, media)
}

func (t *Thread) Get(board domain.BoardSlug, id domain.ThreadId) (*domain.Thread, error) {
	thread, err := t.storage.GetThread(id)
	if err != nil {
		return nil, err
	}
	if thread.Board != board {
		return nil, errThreadNotFound()
	}
	return thread, nil
}

// ingestMedia skips absent or empty file fields; that is "no media",
// not an error.
func ingestMedia(store MediaStore, board domain.BoardSlug, fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Filename == "" {
		return "", nil
	}
	return store.Save(board, fh)
}
