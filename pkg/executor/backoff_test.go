//go:build unit

package executor

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextBackoffDelay(t *testing.T) {
	policy := RetryPolicy{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2}

	tests := []struct {
		name  string
		retry int
		want  time.Duration
	}{
		{name: "first retry", retry: 1, want: 100 * time.Millisecond},
		{name: "second retry", retry: 2, want: 200 * time.Millisecond},
		{name: "third retry", retry: 3, want: 400 * time.Millisecond},
		{name: "capped", retry: 10, want: time.Second},
		{name: "zero retry treated as first", retry: 0, want: 100 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextBackoffDelay(policy, tt.retry, nil))
		})
	}
}

func TestNextBackoffDelay_Jitter(t *testing.T) {
	policy := RetryPolicy{InitialDelay: 100 * time.Millisecond, Multiplier: 2, Jitter: true}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		delay := NextBackoffDelay(policy, 2, rng)
		assert.GreaterOrEqual(t, delay, 100*time.Millisecond)
		assert.Less(t, delay, 300*time.Millisecond)
	}

	// Without a source the jitter factor is fixed.
	assert.Equal(t, 100*time.Millisecond, NextBackoffDelay(policy, 2, nil))
}

func TestNextBackoffDelay_Degenerate(t *testing.T) {
	assert.Equal(t, time.Duration(0), NextBackoffDelay(RetryPolicy{}, 3, nil))
	assert.Equal(t, 50*time.Millisecond,
		NextBackoffDelay(RetryPolicy{InitialDelay: 50 * time.Millisecond, Multiplier: 0.5}, 4, nil))
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
	assert.ErrorIs(t, sleepContext(ctx, 0), context.Canceled)
}

func TestNewLimiter(t *testing.T) {
	unlimited := NewLimiter(0, 0)
	for i := 0; i < 100; i++ {
		assert.True(t, unlimited.Allow())
	}

	limited := NewLimiter(1, 2)
	assert.True(t, limited.Allow())
	assert.True(t, limited.Allow())
	assert.False(t, limited.Allow())
}
