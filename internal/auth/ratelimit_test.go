package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(maxAttempts int) *RateLimiter {
	rl := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     maxAttempts,
		WindowDuration:  time.Minute,
		LockoutDuration: time.Minute,
	})
	return rl
}

func TestRateLimiter_AllowsUntilThreshold(t *testing.T) {
	rl := newTestLimiter(3)
	defer rl.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := rl.Allow("10.0.0.1", "alice")
		assert.True(t, allowed)
		locked, _ := rl.RecordFailure("10.0.0.1", "alice")
		assert.False(t, locked)
	}

	locked, retryAfter := rl.RecordFailure("10.0.0.1", "alice")
	assert.True(t, locked)
	assert.Equal(t, time.Minute, retryAfter)

	allowed, retryAfter := rl.Allow("10.0.0.1", "alice")
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := newTestLimiter(1)
	defer rl.Stop()

	locked, _ := rl.RecordFailure("10.0.0.1", "alice")
	assert.True(t, locked)

	// Different IP and different username are unaffected
	allowed, _ := rl.Allow("10.0.0.2", "alice")
	assert.True(t, allowed)
	allowed, _ = rl.Allow("10.0.0.1", "bob")
	assert.True(t, allowed)
}

func TestRateLimiter_SuccessClearsRecord(t *testing.T) {
	rl := newTestLimiter(3)
	defer rl.Stop()

	rl.RecordFailure("10.0.0.1", "alice")
	rl.RecordFailure("10.0.0.1", "alice")
	rl.RecordSuccess("10.0.0.1", "alice")

	rl.mu.RLock()
	_, exists := rl.attempts["10.0.0.1:alice"]
	rl.mu.RUnlock()
	assert.False(t, exists)

	allowed, _ := rl.Allow("10.0.0.1", "alice")
	assert.True(t, allowed)
}
