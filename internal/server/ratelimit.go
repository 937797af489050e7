package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL       = 3 * time.Minute
	limiterSweepInterval = time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per client IP. Entries idle past
// limiterIdleTTL are swept on access, so the map stays bounded by the
// number of recently active clients.
type rateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
}

func newRateLimiter(requestsPerMin, burst int) *rateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &rateLimiter{
		limiters:  make(map[string]*clientLimiter),
		limit:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:     burst,
		idleTTL:   limiterIdleTTL,
		lastSweep: time.Now(),
	}
}

func (rl *rateLimiter) allow(clientIP string) bool {
	now := time.Now()

	rl.mu.Lock()
	if now.Sub(rl.lastSweep) >= limiterSweepInterval {
		rl.sweep(now)
	}
	client, ok := rl.limiters[clientIP]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[clientIP] = client
	}
	client.lastSeen = now
	limiter := client.limiter
	rl.mu.Unlock()

	return limiter.Allow()
}

// sweep drops limiters idle past the TTL. Caller holds mu.
func (rl *rateLimiter) sweep(now time.Time) {
	for ip, client := range rl.limiters {
		if now.Sub(client.lastSeen) >= rl.idleTTL {
			delete(rl.limiters, ip)
		}
	}
	rl.lastSweep = now
}

// rateLimitMiddleware rejects clients exceeding the configured rate.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !s.limiter.allow(ip) {
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
