package handler

import (
	"html/template"
	"net/http"

	"github.com/ashchan-dev/ashchan/internal/board"
	"github.com/ashchan-dev/ashchan/internal/config"
	"github.com/ashchan-dev/ashchan/internal/markdown"
	"github.com/ashchan-dev/ashchan/internal/service"
)

type Handler struct {
	Templates     map[string]*template.Template
	Boards        *board.Registry
	Threads       service.ThreadService
	Posts         service.PostService
	Listing       service.ListingService
	TextProcessor *markdown.TextProcessor
	Cfg           *config.Config
}

func New(
	templates map[string]*template.Template,
	boards *board.Registry,
	threads service.ThreadService,
	posts service.PostService,
	listing service.ListingService,
	textProcessor *markdown.TextProcessor,
	cfg *config.Config,
) *Handler {
	return &Handler{
		Templates:     templates,
		Boards:        boards,
		Threads:       threads,
		Posts:         posts,
		Listing:       listing,
		TextProcessor: textProcessor,
		Cfg:           cfg,
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
