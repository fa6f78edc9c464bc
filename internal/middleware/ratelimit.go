package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/SARVESHVARADKAR123/memberclub/internal/transport"
)

// RateLimit returns a middleware that limits requests by IP address
// based on the configured limits and window duration.
func RateLimit(requests int, windowStr string) func(next http.Handler) http.Handler {
	window, err := time.ParseDuration(windowStr)
	if err != nil {
		window = time.Minute
	}

	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			transport.WriteError(w, http.StatusTooManyRequests, "rate_limited", "Too many requests from this IP, please try again later.")
		}),
	)
}
