package domain

import "mime/multipart"

type PostCreationData struct {
	Board    BoardSlug
	ThreadId ThreadId
	Message  string
	Media    *multipart.FileHeader
}

// Post is a reply inside a thread. Ids are global across the post
// space, not per-thread.
type Post struct {
	Id        PostId
	ThreadId  ThreadId
	Message   string
	Media     string
	CreatedAt int64

	// Populated by the listing service for board-page previews.
	Preview string
}
