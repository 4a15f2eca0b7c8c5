package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/ashchan-dev/ashchan/internal/domain"
	internal_errors "github.com/ashchan-dev/ashchan/internal/errors"
	"github.com/ashchan-dev/ashchan/internal/logger"
	"github.com/ashchan-dev/ashchan/internal/utils"
)

// CommonTemplateData is available to every page as .Common.
type CommonTemplateData struct {
	SiteName string
	Boards   []domain.Board
	Error    string
}

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common CommonTemplateData
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	tmpl, ok := h.Templates[name]
	if !ok {
		logger.Log.Error("template not found", "template", name)
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	wrapped := TemplateData{
		Data: data,
		Common: CommonTemplateData{
			SiteName: h.Cfg.SiteName,
			Boards:   h.Boards.All(),
			Error:    r.URL.Query().Get("error"),
		},
	}

	// render into a buffer so a mid-template failure never leaves a
	// half-written page behind a 200
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	_, _ = buf.WriteTo(w)
}

type errorPage struct {
	StatusCode int
	Message    string
	BackURL    string
}

// renderError shows a full error page with a go-back link. 4xx reasons
// are user-readable; anything else is logged and reported generically.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "Internal server error"
	var esc *internal_errors.ErrorWithStatusCode
	if errors.As(err, &esc) && esc.StatusCode < http.StatusInternalServerError {
		status = esc.StatusCode
		msg = esc.Message
	} else {
		logger.Log.Error("request failed", "path", r.URL.Path, "error", err)
	}

	tmpl, ok := h.Templates["error.html"]
	if !ok {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	back := r.Referer()
	if back == "" {
		back = "/"
	}
	wrapped := TemplateData{
		Data: errorPage{StatusCode: status, Message: msg, BackURL: back},
		Common: CommonTemplateData{
			SiteName: h.Cfg.SiteName,
			Boards:   h.Boards.All(),
		},
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", "error.html", "error", err)
		http.Error(w, msg, status)
		return
	}

	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
