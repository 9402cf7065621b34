package executor

import (
	"context"

	"golang.org/x/time/rate"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=limiter.go -destination=mocks/limiter.gen.go -package=mocks

// Limiter paces network calls. *rate.Limiter satisfies it.
type Limiter interface {
	// Wait blocks until a call is allowed or ctx is done.
	Wait(ctx context.Context) error
}

// NewLimiter creates a token bucket allowing requestsPerSecond calls on
// average with bursts of burst calls. A non-positive rate disables limiting.
func NewLimiter(requestsPerSecond float64, burst int) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}
