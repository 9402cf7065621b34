package executor

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy bounds the retries of transient write failures.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, first one included.
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// Jitter scales every delay by a random factor in [0.5, 1.5).
	Jitter bool
}

// NextBackoffDelay returns the delay before retry N (1-based).
func NextBackoffDelay(policy RetryPolicy, retry int, rng *rand.Rand) time.Duration {
	if policy.InitialDelay <= 0 {
		return 0
	}
	if policy.Multiplier < 1.0 {
		policy.Multiplier = 1.0
	}
	if retry < 1 {
		retry = 1
	}

	delay := float64(policy.InitialDelay) * math.Pow(policy.Multiplier, float64(retry-1))
	if policy.MaxDelay > 0 && delay > float64(policy.MaxDelay) {
		delay = float64(policy.MaxDelay)
	}
	if policy.Jitter {
		f := 0.5
		if rng != nil {
			f = 0.5 + rng.Float64()
		}
		delay *= f
	}
	return time.Duration(delay)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
