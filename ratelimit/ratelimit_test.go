package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPLimiterAllowsOnlyBurstWithinWindow(t *testing.T) {
	limiter := NewIPLimiter(IPProps{Interval: time.Hour, Burst: 3})

	allowed := 0
	for i := 0; i < 10; i++ {
		if err := limiter.Allow("1.2.3.4"); err == nil {
			allowed++
		}
	}

	assert.Equal(t, 3, allowed)
}

func TestIPLimiterTracksIndependentIPs(t *testing.T) {
	limiter := NewIPLimiter(IPProps{Interval: time.Hour, Burst: 1})

	assert.NoError(t, limiter.Allow("1.1.1.1"))
	assert.Error(t, limiter.Allow("1.1.1.1"))
	assert.NoError(t, limiter.Allow("2.2.2.2"))
}

func TestDBLimiterEnforcesMinInterval(t *testing.T) {
	limiter := NewDBLimiter(50 * time.Millisecond)

	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())

	time.Sleep(60 * time.Millisecond)
	assert.True(t, limiter.Allow())
}
