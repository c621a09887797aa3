package httpx

import (
	"net/http"
	"runtime/debug"

	"libraryapi/internal/logging"
)

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logging.Ctx(r.Context()).Error().
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("panic recovered")

				var wroteHeader bool
				if rw, ok := w.(*responseWriter); ok {
					wroteHeader = rw.wroteHeader()
				}

				if !wroteHeader {
					JSON(w, http.StatusInternalServerError, ErrorResponse{
						Error:     "Internal server error",
						RequestID: RequestIDFrom(r),
					})
				}
			}
		}()
		next.ServeHTTP(w, r)
	})
}
