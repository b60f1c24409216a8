package api

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// clientIPKey is the context key for the resolved client identity.
const clientIPKey ctxKey = "clientIP"

// clientIPMiddleware resolves each request's client identity exactly
// once so the rate limiter and the quota status endpoint attribute
// requests consistently.
func clientIPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), clientIPKey, clientIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIP returns the identity resolved by clientIPMiddleware.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey).(string); ok && ip != "" {
		return ip
	}
	return "unknown"
}

// clientIP extracts the client address from the request. The first
// X-Forwarded-For hop wins, then X-Real-IP, then the connection address
// with its port stripped.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
