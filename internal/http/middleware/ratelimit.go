package middleware

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// RateLimit returns middleware enforcing a per-client token bucket on the
// public lead-capture endpoints. Rejected requests get a JSON 429 in the
// same {"statusCode","message"} envelope the API handlers use.
func RateLimit(rate float64, burst int) func(http.Handler) http.Handler {
	limiter := newClientLimiter(rate, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(clientIP(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"statusCode": http.StatusTooManyRequests,
					"message":    "too many requests",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the address resolved by chi's RealIP middleware.
func clientIP(r *http.Request) string {
	if xri := r.Header.Get("X-Real-Ip"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type clientLimiter struct {
	mu      sync.Mutex
	clients map[string]*tokenBucket
	rate    float64
	burst   float64
}

type tokenBucket struct {
	tokens float64
	seen   time.Time
}

func newClientLimiter(rate float64, burst int) *clientLimiter {
	l := &clientLimiter{
		clients: make(map[string]*tokenBucket),
		rate:    rate,
		burst:   float64(burst),
	}
	go l.evictIdle()
	return l
}

func (l *clientLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.clients[ip]
	if !ok {
		l.clients[ip] = &tokenBucket{tokens: l.burst - 1, seen: now}
		return true
	}

	b.tokens += now.Sub(b.seen).Seconds() * l.rate
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.seen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// evictIdle drops buckets for clients idle long enough to have fully
// refilled, so the map does not grow with every IP ever seen.
func (l *clientLimiter) evictIdle() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		cutoff := time.Now().Add(-10 * time.Minute)
		for ip, b := range l.clients {
			if b.seen.Before(cutoff) {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}
