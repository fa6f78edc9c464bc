package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
)

// Timeout bounds the request context to d. An upsert whose context expires
// after the image upload is refused at commit and its pending upload is
// deleted, so d must cover the image store round trip. A non-positive d
// leaves the request unbounded.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))

			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				observability.GetLogger(ctx).Warn("request deadline exceeded",
					zap.String("path", r.URL.Path),
					zap.Duration("budget", d))
			}
		})
	}
}
