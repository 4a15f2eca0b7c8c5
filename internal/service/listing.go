package service

import (
	"github.com/ashchan-dev/ashchan/internal/domain"
	"github.com/ashchan-dev/ashchan/internal/utils"
)

// allowed per-page values; anything else falls back to the default.
var perPageChoices = map[int]bool{10: true, 25: true, 50: true}

type ListingService interface {
	Page(board domain.Board, page, perPage int) (*domain.BoardPage, error)
}

type ListingStorage interface {
	GetThreadsPage(board domain.BoardSlug, limit, offset int) ([]*domain.Thread, error)
	CountThreads(board domain.BoardSlug) (int, error)
	CountPosts(threadID domain.ThreadId) (int, error)
	GetLastPosts(threadID domain.ThreadId, n int) ([]*domain.Post, error)
}

type Listing struct {
	storage ListingStorage

	defaultPerPage   int
	repliesPreview   int
	threadPreviewLen int
	replyPreviewLen  int
}

func NewListing(storage ListingStorage, defaultPerPage, repliesPreview, threadPreviewLen, replyPreviewLen int) *Listing {
	return &Listing{
		storage:          storage,
		defaultPerPage:   defaultPerPage,
		repliesPreview:   repliesPreview,
		threadPreviewLen: threadPreviewLen,
		replyPreviewLen:  replyPreviewLen,
	}
}

// Page assembles one board page: the listing slice plus reply counts
// and a short rolling preview of the most recent replies per thread.
// page is clamped to >= 1 but never to the upper bound; a page past
// the end comes back empty with valid metadata.
func (l *Listing) Page(board domain.Board, page, perPage int) (*domain.BoardPage, error) {
	page = max(1, page)
	if !perPageChoices[perPage] {
		perPage = l.defaultPerPage
	}

	total, err := l.storage.CountThreads(board.Slug)
	if err != nil {
		return nil, err
	}
	totalPages := max(1, (total+perPage-1)/perPage)

	threads, err := l.storage.GetThreadsPage(board.Slug, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}

	for _, t := range threads {
		if err := l.enrich(t); err != nil {
			return nil, err
		}
	}

	return &domain.BoardPage{
		Board:      board,
		Threads:    threads,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}, nil
}

func (l *Listing) enrich(t *domain.Thread) error {
	count, err := l.storage.CountPosts(t.Id)
	if err != nil {
		return err
	}
	t.ReplyCount = count

	replies, err := l.storage.GetLastPosts(t.Id, l.repliesPreview)
	if err != nil {
		return err
	}
	t.LastReplies = replies

	t.Preview = utils.TruncatePreview(t.Message, l.threadPreviewLen)
	for _, p := range replies {
		p.Preview = utils.TruncatePreview(p.Message, l.replyPreviewLen)
	}
	return nil
}
