package client

//
// retry.go
//

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy drives exponential backoff with jitter for idempotent
// registry reads. Writes (POST/PUT) are never retried automatically.
type RetryPolicy struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	JitterFactor float64
	MaxRetries   uint64
}

// DefaultRetryPolicy returns the policy applied when a client is built
// without an explicit one.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.25,
		MaxRetries:   3,
	}
}

func (p RetryPolicy) newBackOff(ctx context.Context) backoff.BackOffContext {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.InitialDelay
	eb.MaxInterval = p.MaxDelay
	eb.Multiplier = p.Multiplier
	eb.RandomizationFactor = p.JitterFactor
	eb.MaxElapsedTime = 0 // bounded by MaxRetries, not wall time
	return backoff.WithContext(backoff.WithMaxRetries(eb, p.MaxRetries), ctx)
}

// Run executes op, retrying transient registry failures until the policy
// is exhausted. Errors the registry produced on purpose are permanent.
func (p RetryPolicy) Run(ctx context.Context, op func() error) error {
	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}

		var unavailable *RegistryUnavailableError
		if errors.As(err, &unavailable) && unavailable.retryable() {
			registryRetriesTotal.Inc()
			return err
		}
		return backoff.Permanent(err)
	}, p.newBackOff(ctx))
}
