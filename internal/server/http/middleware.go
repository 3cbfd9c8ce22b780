package http

import (
	"net/http"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/leshachaplin/convrelay/internal/apierror"
)

const requestIDHeader = "X-Request-ID"

// requestLogger stores a request scoped logger in the context, reachable with zerolog.Ctx.
// Every line it writes carries the request id and the truncated user agent.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, requestID)

			l := logger.With().
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("user_agent", truncate(r.UserAgent(), userAgentLogLimit)).
				Logger()

			next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
		})
	}
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			zerolog.Ctx(r.Context()).Error().
				Interface("panic", rvr).
				Bytes("stack", debug.Stack()).
				Msg("handler panicked")

			apiErr := apierror.NewInternalError()
			_ = encodeJSONResponse(w, apiErr.StatusCode(), apiErr)
		}()

		next.ServeHTTP(w, r)
	})
}
