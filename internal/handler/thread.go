package handler

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/ashchan-dev/ashchan/internal/domain"
	internal_errors "github.com/ashchan-dev/ashchan/internal/errors"
	"github.com/ashchan-dev/ashchan/internal/utils"
)

type postView struct {
	*domain.Post
	Text template.HTML
}

type threadView struct {
	*domain.Thread
	Board domain.Board
	Text  template.HTML
	Posts []*postView
}

// ThreadGetHandler shows a full thread: the opening post plus every
// reply in chronological order, message bodies rendered to HTML.
func (h *Handler) ThreadGetHandler(w http.ResponseWriter, r *http.Request) {
	board, err := h.lookupBoard(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	id, err := parseIdParam(r, "id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	thread, err := h.Threads.Get(board.Slug, id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	view := threadView{
		Thread: thread,
		Board:  board,
		Text:   h.TextProcessor.Process(thread.Message),
		Posts:  make([]*postView, len(thread.Posts)),
	}
	for i, p := range thread.Posts {
		view.Posts[i] = &postView{Post: p, Text: h.TextProcessor.Process(p.Message)}
	}

	h.renderTemplate(w, r, "thread.html", view)
}

// ReplyCreateHandler appends a reply and bumps the thread. Validation
// failures bounce back to the thread page; a missing thread gets the
// 404 error page, there is nowhere sensible to redirect.
func (h *Handler) ReplyCreateHandler(w http.ResponseWriter, r *http.Request) {
	board, err := h.lookupBoard(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	id, err := parseIdParam(r, "id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	threadURL := fmt.Sprintf("/%s/thread/%d", board.Slug, id)

	if err := h.parseForm(w, r); err != nil {
		redirectWithError(w, r, threadURL, userErrorMessage(err))
		return
	}

	form := struct {
		Message string `validate:"required"`
	}{
		Message: r.FormValue("message"),
	}
	if err := utils.ValidateStruct(form); err != nil {
		redirectWithError(w, r, threadURL, userErrorMessage(err))
		return
	}

	_, err = h.Posts.Create(domain.PostCreationData{
		Board:    board.Slug,
		ThreadId: id,
		Message:  form.Message,
		Media:    formFile(r, "media"),
	})
	if err != nil {
		// a vanished thread and any internal fault both get the
		// failure page; only input errors bounce back to the form
		if esc, ok := err.(*internal_errors.ErrorWithStatusCode); ok && esc.StatusCode == http.StatusNotFound {
			h.renderError(w, r, err)
			return
		}
		if !userError(err) {
			h.renderError(w, r, err)
			return
		}
		redirectWithError(w, r, threadURL, userErrorMessage(err))
		return
	}

	http.Redirect(w, r, threadURL, http.StatusSeeOther)
}
