package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ashchan-dev/ashchan/internal/domain"
	internal_errors "github.com/ashchan-dev/ashchan/internal/errors"
	"github.com/ashchan-dev/ashchan/internal/media"
)

// multipartMemory is how much of a parsed form stays in memory before
// spilling to temp files.
const multipartMemory = 10 << 20

// redirectWithError sends the browser back to target with the message
// in the query string; the next page render picks it up.
func redirectWithError(w http.ResponseWriter, r *http.Request, target, msg string) {
	u := url.URL{Path: target}
	q := u.Query()
	q.Set("error", msg)
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}

// lookupBoard resolves the {board} path segment against the registry.
func (h *Handler) lookupBoard(r *http.Request) (domain.Board, error) {
	slug := chi.URLParam(r, "board")
	b, ok := h.Boards.Lookup(slug)
	if !ok {
		return domain.Board{}, internal_errors.NotFound("Board not found")
	}
	return b, nil
}

// parseForm reads the multipart body with a hard size ceiling slightly
// above the upload limit, leaving room for text fields and encoding
// overhead.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return &internal_errors.ErrorWithStatusCode{Message: "Request body too large", StatusCode: http.StatusRequestEntityTooLarge}
		}
		return internal_errors.BadRequest("Malformed form data")
	}
	return nil
}

// formFile returns the first uploaded file for field, nil when the
// field is absent.
func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if fhs := r.MultipartForm.File[field]; len(fhs) > 0 {
		return fhs[0]
	}
	return nil
}

func parseIdParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, internal_errors.BadRequest("Invalid id")
	}
	return id, nil
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// userError reports whether err came from the user's own input
// (validation, media rejection) and may surface as a form-level
// message. Anything else is an internal fault and must not take the
// redirect path.
func userError(err error) bool {
	if errors.Is(err, media.ErrUnsupportedType) || errors.Is(err, media.ErrTooLarge) {
		return true
	}
	var esc *internal_errors.ErrorWithStatusCode
	return errors.As(err, &esc) && esc.StatusCode < http.StatusInternalServerError
}

// userErrorMessage folds a user error into text for the form banner.
func userErrorMessage(err error) string {
	switch {
	case errors.Is(err, media.ErrUnsupportedType):
		return "Unsupported file type"
	case errors.Is(err, media.ErrTooLarge):
		return "File is too large"
	}
	var esc *internal_errors.ErrorWithStatusCode
	if errors.As(err, &esc) {
		return esc.Message
	}
	return "Invalid request"
}
