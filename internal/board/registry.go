package board

import (
	"fmt"

	"github.com/ashchan-dev/ashchan/internal/config"
	"github.com/ashchan-dev/ashchan/internal/domain"
)

const maxSlugLen = 10

// Registry is the static, process-lifetime set of boards. Every board
// identifier reaching storage or the filesystem goes through Lookup
// first, so path traversal characters never survive past this point.
type Registry struct {
	bySlug map[domain.BoardSlug]domain.Board
	order  []domain.Board
}

func NewRegistry(boards []config.BoardConfig) (*Registry, error) {
	r := &Registry{bySlug: make(map[domain.BoardSlug]domain.Board, len(boards))}
	for _, b := range boards {
		if err := ValidateSlug(b.Slug); err != nil {
			return nil, fmt.Errorf("board %q: %w", b.Slug, err)
		}
		if _, ok := r.bySlug[b.Slug]; ok {
			return nil, fmt.Errorf("duplicate board slug %q", b.Slug)
		}
		board := domain.Board{Slug: b.Slug, Name: b.Name, Description: b.Description}
		r.bySlug[b.Slug] = board
		r.order = append(r.order, board)
	}
	return r, nil
}

// Lookup resolves a raw request slug to a registered board.
func (r *Registry) Lookup(slug string) (domain.Board, bool) {
	b, ok := r.bySlug[slug]
	return b, ok
}

// All returns boards in declaration order.
func (r *Registry) All() []domain.Board {
	return r.order
}

// ValidateSlug enforces the closed slug charset: lowercase ascii
// letters and digits only, 1..10 characters. Anything that could be
// meaningful to a filesystem or URL is rejected.
func ValidateSlug(slug string) error {
	if len(slug) == 0 || len(slug) > maxSlugLen {
		return fmt.Errorf("slug must be 1-%d characters", maxSlugLen)
	}
	for _, c := range slug {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return fmt.Errorf("slug may contain only lowercase letters and digits")
		}
	}
	return nil
}
