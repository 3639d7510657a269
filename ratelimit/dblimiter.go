package ratelimit

import (
	"sync"
	"time"
)

// DBLimiter is the single-token database write limiter of spec §4.A: a
// write is allowed only if at least minInterval has passed since the last
// allowed write.
type DBLimiter struct {
	minInterval time.Duration

	mu       sync.Mutex
	lastSent time.Time
}

// NewDBLimiter builds a limiter requiring at least minInterval between
// allowed writes (spec default: 30s).
func NewDBLimiter(minInterval time.Duration) *DBLimiter {
	return &DBLimiter{minInterval: minInterval}
}

// Allow reports whether a write may proceed now, and if so records that
// moment as the last allowed write.
func (l *DBLimiter) Allow() bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.lastSent.IsZero() && now.Sub(l.lastSent) < l.minInterval {
		return false
	}
	l.lastSent = now
	return true
}
