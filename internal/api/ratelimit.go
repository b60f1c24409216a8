package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alawler14/Bibliotheca/internal/http/response"
	"github.com/alawler14/Bibliotheca/internal/ratelimit"
)

// searchPath is the only route gated by the daily search quota.
const searchPath = "/books/search"

// rateLimitExceeded is the fixed payload for rejected search requests.
type rateLimitExceeded struct {
	Error     string    `json:"error"`
	ResetTime time.Time `json:"resetTime"`
}

// searchRateLimit enforces the per-client daily search quota. Allowed
// requests proceed with the quota headers already set; rejected
// requests are answered here and never reach the handler.
func searchRateLimit(limiter *ratelimit.Daily, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != searchPath {
				next.ServeHTTP(w, r)
				return
			}

			ip := ClientIP(r.Context())
			decision := limiter.Allow(ip)
			setRateLimitHeaders(w, decision)

			if !decision.Allowed {
				logger.Warn("Daily search limit exceeded",
					"ip", ip,
					"reset", decision.ResetAt,
				)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(decision.ResetAt)))
				response.JSON(w, http.StatusTooManyRequests, rateLimitExceeded{
					Error:     "Daily search limit exceeded. Please try again later.",
					ResetTime: decision.ResetAt,
				}, logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// setRateLimitHeaders annotates the response with the caller's quota state.
func setRateLimitHeaders(w http.ResponseWriter, d ratelimit.Decision) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	w.Header().Set("X-RateLimit-Reset", d.ResetAt.UTC().Format(time.RFC3339))
}

// retryAfterSeconds converts a reset time into whole seconds from now,
// rounded up so clients never retry early.
func retryAfterSeconds(resetAt time.Time) int {
	secs := int(time.Until(resetAt).Seconds()) + 1
	if secs < 1 {
		return 1
	}
	return secs
}
