// Package ratelimit holds the admission and database-write limiters of
// spec §4.A.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrRateLimited is the error the caller sees on admission denial
// (spec §4.A, §7: "RateLimited").
type ErrRateLimited struct{}

func (ErrRateLimited) Error() string { return "RateLimited" }

// IPProps configures the per-IP admission limiter.
type IPProps struct {
	Interval time.Duration // minimum spacing between allowed admissions
	Burst    int           // credits an IP can accumulate
}

// IPLimiter allows one admission per IP per configured interval, with a
// configurable burst (spec §4.A). Entries older than the window are
// evicted lazily on Allow, the same "table keyed by identity, checked and
// swept inline" shape used by internal/login/session_manager.go's
// sync.Map + CleanExpired in the udisondev-la2go reference, specialized
// here to golang.org/x/time/rate's token bucket instead of a hand-rolled
// credit counter.
type IPLimiter struct {
	props    IPProps
	mu       sync.Mutex
	limiters map[string]*entry
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPLimiter builds a limiter from props. Burst < 1 is treated as 1.
func NewIPLimiter(props IPProps) *IPLimiter {
	if props.Burst < 1 {
		props.Burst = 1
	}
	return &IPLimiter{
		props:    props,
		limiters: make(map[string]*entry),
	}
}

// Allow reports whether ip may admit a new connection right now. It
// evicts limiter entries that have been idle for 10x the interval so the
// map doesn't grow unboundedly across the lifetime of the process.
func (l *IPLimiter) Allow(ip string) error {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.evictLocked(now)

	e, ok := l.limiters[ip]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rate.Every(l.props.Interval), l.props.Burst)}
		l.limiters[ip] = e
	}
	e.lastSeen = now

	if !e.limiter.AllowN(now, 1) {
		return ErrRateLimited{}
	}
	return nil
}

func (l *IPLimiter) evictLocked(now time.Time) {
	staleAfter := l.props.Interval * 10
	if staleAfter <= 0 {
		return
	}
	for ip, e := range l.limiters {
		if now.Sub(e.lastSeen) > staleAfter {
			delete(l.limiters, ip)
		}
	}
}
