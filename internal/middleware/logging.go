package middleware

import (
	"net/http"
	"time"

	chi_middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ashchan-dev/ashchan/internal/logger"
)

// RequestLogger logs one line per request at debug level, errors at
// warn, through the global slog logger.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chi_middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		}
		if ww.Status() >= http.StatusInternalServerError {
			logger.Log.Warn("request", attrs...)
		} else {
			logger.Log.Debug("request", attrs...)
		}
	})
}
