// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/fittrack/internal/app/system/respond"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Limiter hands out one token bucket per key (usually the client IP).
// It is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	every   rate.Limit
	burst   int
	idle    time.Duration // buckets unused this long are dropped
	now     func() time.Time
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// PerMinute allows n requests per minute per key, with bursts up to n.
func PerMinute(n int) *Limiter {
	if n < 1 {
		n = 1
	}
	return &Limiter{
		buckets: make(map[string]*bucket),
		every:   rate.Every(time.Minute / time.Duration(n)),
		burst:   n,
		idle:    10 * time.Minute,
		now:     time.Now,
	}
}

// Allow consumes one token for key and reports whether the request may proceed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		l.sweep(now)
		b = &bucket{lim: rate.NewLimiter(l.every, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.lim.AllowN(now, 1)
}

// sweep drops idle buckets. Called with mu held, only when a new key
// arrives, so the map cannot grow without bound.
func (l *Limiter) sweep(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idle {
			delete(l.buckets, k)
		}
	}
}

// Middleware answers 429 once a client IP exhausts its bucket.
func (l *Limiter) Middleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			if !l.Allow(ip) {
				log.Warn("rate limited", zap.String("ip", ip), zap.String("path", r.URL.Path))
				w.Header().Set("Retry-After", "60")
				respond.Message(w, http.StatusTooManyRequests, "too many requests, slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP extracts the client IP, preferring X-Forwarded-For and X-Real-IP
// (set by the proxy in front of the API) over RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
