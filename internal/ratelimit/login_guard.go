package ratelimit

import (
	"context"
	"strings"
	"time"
)

// LoginGuard counts consecutive failed logins per account inside a rolling
// window and reports when the brute-force threshold is reached.
type LoginGuard struct {
	counter Counter
	max     int64
	window  time.Duration
}

// NewLoginGuard builds a guard locking after max failures per window.
func NewLoginGuard(counter Counter, max int, window time.Duration) *LoginGuard {
	return &LoginGuard{counter: counter, max: int64(max), window: window}
}

func (g *LoginGuard) key(email string) string {
	return "login_failures:" + strings.ToLower(email)
}

// RecordFailure registers one failed attempt and returns true when the
// account has crossed the lockout threshold.
func (g *LoginGuard) RecordFailure(ctx context.Context, email string) (bool, error) {
	if g == nil || g.counter == nil || g.max <= 0 {
		return false, nil
	}
	count, err := g.counter.Incr(ctx, g.key(email), g.window)
	if err != nil {
		return false, err
	}
	return count >= g.max, nil
}

// Reset clears the failure counter after a successful login or an unlock.
func (g *LoginGuard) Reset(ctx context.Context, email string) error {
	if g == nil || g.counter == nil {
		return nil
	}
	return g.counter.Reset(ctx, g.key(email))
}
