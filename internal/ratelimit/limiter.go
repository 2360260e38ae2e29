// Package ratelimit throttles MCP tool calls with per-tool token buckets.
package ratelimit

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrRateLimited is returned by ToolLimiters.Check when a tool's bucket is empty.
var ErrRateLimited = errors.New("rate limit exceeded")

// Limiter is a token bucket. It is safe for concurrent use.
type Limiter struct {
	mu        sync.Mutex
	tokens    float64
	lastCheck time.Time
	rate      float64 // tokens per second
	burst     int     // bucket capacity, also the initial token count
	nowFunc   func() time.Time
}

// NewLimiter returns a full bucket refilling at rate tokens per second.
func NewLimiter(rate float64, burst int) *Limiter {
	return &Limiter{
		tokens:  float64(burst),
		rate:    rate,
		burst:   burst,
		nowFunc: time.Now,
	}
}

// Allow takes one token if available.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFunc()
	if !l.lastCheck.IsZero() {
		if elapsed := now.Sub(l.lastCheck).Seconds(); elapsed > 0 {
			l.tokens = min(l.tokens+l.rate*elapsed, float64(l.burst))
		}
	}
	l.lastCheck = now

	if l.tokens < 1 {
		return false
	}
	l.tokens--
	return true
}

// ToolLimiters maps tool names to their limiters.
type ToolLimiters map[string]*Limiter

// NewToolLimiters returns the default limits for the mrgc tools. Runs are
// CPU bound and get the tightest budget.
func NewToolLimiters() ToolLimiters {
	return ToolLimiters{
		"mrgc_run":   NewLimiter(10.0/60.0, 3), // 10/minute, burst 3
		"mrgc_graph": NewLimiter(1.0, 10),      // 60/minute, burst 10
		"mrgc_runs":  NewLimiter(1.0, 10),      // 60/minute, burst 10
	}
}

// Check returns an error wrapping ErrRateLimited when tool has no token
// left. Tools without a limiter are never limited.
func (tl ToolLimiters) Check(tool string) error {
	l, ok := tl[tool]
	if !ok {
		return nil
	}
	if !l.Allow() {
		return fmt.Errorf("%s: %w, please try again shortly", tool, ErrRateLimited)
	}
	return nil
}
