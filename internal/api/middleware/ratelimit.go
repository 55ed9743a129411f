package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/taskflow/taskflow-api/internal/api/metrics"
)

// RateLimitConfig defines the request budget for a rate-limited route.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// LoginLimit is the default budget for credential endpoints: 5 attempts per
// minute per client IP, all available as a burst.
var LoginLimit = RateLimitConfig{
	RequestsPerWindow: 5,
	Window:            time.Minute,
	Burst:             5,
}

// RateLimit enforces a per-client-IP token bucket on the wrapped route.
// Limiters are kept per key and evicted after an hour of inactivity.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	type entry struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		entries = make(map[string]*entry)
	)
	limit := rate.Every(cfg.Window / time.Duration(cfg.RequestsPerWindow))

	cleanup := func(now time.Time) {
		for key, e := range entries {
			if now.Sub(e.lastSeen) > time.Hour {
				delete(entries, key)
			}
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := clientIP(c.Request())

			mu.Lock()
			e, ok := entries[key]
			if !ok {
				e = &entry{limiter: rate.NewLimiter(limit, cfg.Burst)}
				entries[key] = e
			}
			e.lastSeen = time.Now()
			if len(entries) > 1000 {
				cleanup(e.lastSeen)
			}
			allowed := e.limiter.Allow()
			mu.Unlock()

			if !allowed {
				metrics.RateLimitRejectionsTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}

// clientIP resolves the originating client address, honouring proxy headers.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
