package domain

import "mime/multipart"

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Board   BoardSlug
	Subject string
	Message string
	Media   *multipart.FileHeader // nil when the form carried no file
}

type ThreadMetadata struct {
	Id        ThreadId
	Board     BoardSlug
	Subject   string
	Message   string
	Media     string // stored path relative to the uploads root, "" if none
	CreatedAt int64  // unix seconds
	Bumped    int64  // unix seconds, >= CreatedAt, never decreases
}

type Thread struct {
	ThreadMetadata

	// Listing enrichment, populated by the listing service only.
	Preview     string
	ReplyCount  int
	LastReplies []*Post

	// Full reply set, populated by GetThread only.
	Posts []*Post
}
