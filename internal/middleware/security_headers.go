package middleware

import "net/http"

// SecurityHeaders sets the standard hardening headers on every
// response. csp is optional.
func SecurityHeaders(csp string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			headers.Set("X-Frame-Options", "DENY")
			headers.Set("X-Content-Type-Options", "nosniff")
			headers.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if csp != "" {
				headers.Set("Content-Security-Policy", csp)
			}
			next.ServeHTTP(w, r)
		})
	}
}
