package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ashchan-dev/ashchan/internal/domain"
	"github.com/ashchan-dev/ashchan/internal/utils"
)

// LandingHandler lists the configured boards.
func (h *Handler) LandingHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "landing.html", nil)
}

// BoardGetHandler shows one page of a board: threads in bump order,
// newest activity first, with reply counts and recent-reply previews.
// The page comes from the /page/{page} path or ?page; ?per_page tunes
// the slice size. Bad values fall back to defaults.
func (h *Handler) BoardGetHandler(w http.ResponseWriter, r *http.Request) {
	board, err := h.lookupBoard(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	page := queryInt(r, "page", 1)
	if raw := chi.URLParam(r, "page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			page = v
		}
	}
	perPage := queryInt(r, "per_page", 0)

	boardPage, err := h.Listing.Page(board, page, perPage)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.renderTemplate(w, r, "board.html", boardPage)
}

// ThreadCreateHandler handles the new-thread form. Validation failures
// bounce back to the board page with the message in the query string;
// success lands on the fresh thread.
func (h *Handler) ThreadCreateHandler(w http.ResponseWriter, r *http.Request) {
	board, err := h.lookupBoard(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	boardURL := "/" + board.Slug

	if err := h.parseForm(w, r); err != nil {
		redirectWithError(w, r, boardURL, userErrorMessage(err))
		return
	}

	form := struct {
		Subject string `validate:"required"`
		Message string `validate:"required"`
	}{
		Subject: r.FormValue("subject"),
		Message: r.FormValue("message"),
	}
	if err := utils.ValidateStruct(form); err != nil {
		redirectWithError(w, r, boardURL, userErrorMessage(err))
		return
	}

	id, err := h.Threads.Create(domain.ThreadCreationData{
		Board:   board.Slug,
		Subject: form.Subject,
		Message: form.Message,
		Media:   formFile(r, "media"),
	})
	if err != nil {
		// only the user's own input bounces back; internal faults are
		// a failure page, never a 303
		if !userError(err) {
			h.renderError(w, r, err)
			return
		}
		redirectWithError(w, r, boardURL, userErrorMessage(err))
		return
	}

	http.Redirect(w, r, fmt.Sprintf("%s/thread/%d", boardURL, id), http.StatusSeeOther)
}
