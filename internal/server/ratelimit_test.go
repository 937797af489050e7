package server

import (
	"testing"
	"time"
)

func TestRateLimiterEviction(t *testing.T) {
	rl := newRateLimiter(60, 1)
	rl.allow("1.2.3.4")
	rl.allow("5.6.7.8")

	rl.mu.Lock()
	rl.limiters["1.2.3.4"].lastSeen = time.Now().Add(-10 * time.Minute)
	rl.lastSweep = time.Now().Add(-2 * limiterSweepInterval)
	rl.mu.Unlock()

	rl.allow("9.9.9.9")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.limiters["1.2.3.4"]; ok {
		t.Error("idle client limiter was not evicted")
	}
	if _, ok := rl.limiters["5.6.7.8"]; !ok {
		t.Error("recently active client limiter should survive the sweep")
	}
	if len(rl.limiters) != 2 {
		t.Errorf("expected 2 live limiters after the sweep, got %d", len(rl.limiters))
	}
}

func TestRateLimiterSweepIsThrottled(t *testing.T) {
	rl := newRateLimiter(60, 1)
	rl.allow("1.2.3.4")

	rl.mu.Lock()
	rl.limiters["1.2.3.4"].lastSeen = time.Now().Add(-10 * time.Minute)
	rl.mu.Unlock()

	// lastSweep is fresh, so the idle entry stays until the next interval.
	rl.allow("5.6.7.8")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.limiters["1.2.3.4"]; !ok {
		t.Error("sweep ran before the interval elapsed")
	}
}
