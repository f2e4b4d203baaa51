package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const internalErrorBody = `{"message":"Internal server error"}`

// Recovery turns a panic into a JSON 500. When the handler already sent a status,
// for example a 201 flushed before dispatching notifications, the panic is only logged.
func Recovery(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww, ok := w.(middleware.WrapResponseWriter)
			if !ok {
				ww = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			}

			defer func() {
				if rvr := recover(); rvr != nil && rvr != http.ErrAbortHandler {
					log.Error().
						Interface("recover", rvr).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("ip", r.RemoteAddr).
						Int("sent_status", ww.Status()).
						Msg("Panic recovered")

					if ww.Status() != 0 {
						return
					}

					ww.Header().Set("Content-Type", "application/json")
					ww.WriteHeader(http.StatusInternalServerError)
					_, _ = ww.Write([]byte(internalErrorBody))
				}
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}
