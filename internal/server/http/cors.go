package http

import (
	"net/http"

	"github.com/rs/zerolog"
)

const (
	corsAllowMethods = "POST, OPTIONS"
	corsAllowHeaders = "Content-Type"
)

// OriginGuard always answers with the one configured origin. The request Origin
// header is only logged. Preflight requests stop here with 204.
func OriginGuard(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			zerolog.Ctx(r.Context()).Debug().
				Str("method", r.Method).
				Str("origin", r.Header.Get("Origin")).
				Str("allowed_origin", allowedOrigin).
				Msg("cors check")

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allowedOrigin)
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
