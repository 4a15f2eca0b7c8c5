package domain

type (
	BoardSlug = string
	ThreadId  = int64
	PostId    = int64
)

// Board is one static category from the board registry. Boards are
// declared in config; there is no dynamic creation.
type Board struct {
	Slug        BoardSlug
	Name        string
	Description string
}

// BoardPage is one paginated slice of a board's thread listing.
type BoardPage struct {
	Board      Board
	Threads    []*Thread
	Page       int
	PerPage    int
	TotalPages int
}
