package middleware

import (
	"net"
	"net/http"

	"github.com/journey-mate/journeymate/shared/logger"
	"github.com/journey-mate/journeymate/shared/middleware/ratelimiter"
)

// RateLimit rejects requests whose identity has no tokens left with 429.
// A nil limiter disables the check.
func RateLimit(rl *ratelimiter.Limiter, identity func(r *http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rl == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := identity(r)
			if !rl.Allow(key) {
				logger.Log.Warn("rate limit exceeded", "key", key, "path", r.URL.Path)
				http.Error(w, "Too many attempts, try again later", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the host part of RemoteAddr. Forwarding headers are not
// trusted.
func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
