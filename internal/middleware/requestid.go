package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
)

const RequestIDHeader = "X-Request-ID"

// RequestID propagates the caller's request id, or assigns a new one, and
// echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := observability.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
