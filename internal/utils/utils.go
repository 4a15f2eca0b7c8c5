package utils

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ashchan-dev/ashchan/internal/errors"
	"github.com/ashchan-dev/ashchan/internal/logger"
)

type SubjectValidator struct{}

func (v *SubjectValidator) Subject(subject string) error {
	if strings.TrimSpace(subject) == "" {
		return errors.BadRequest("Subject is required")
	}
	return nil
}

// MessageValidator enforces the non-empty and byte-length rules on
// thread and reply bodies. The cap is bytes, not runes.
type MessageValidator struct {
	MaxBytes int
}

func (v *MessageValidator) Message(message string) error {
	if strings.TrimSpace(message) == "" {
		return errors.BadRequest("Message is required")
	}
	if len(message) > v.MaxBytes {
		return errors.BadRequest("Message is too long")
	}
	return nil
}

func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	if e, ok := err.(*errors.ErrorWithStatusCode); ok {
		http.Error(w, err.Error(), e.StatusCode)
		return
	}
	// default error is 500
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// ValidateStruct runs validator tags (required etc.) over a decoded
// form struct and folds failures into a single 400.
func ValidateStruct(body any) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("form validation failed", "error", err)
		return errors.BadRequest("Required fields missing")
	}
	return nil
}
