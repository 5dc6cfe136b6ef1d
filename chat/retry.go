package chat

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/polychat/polychat/api"
	"github.com/polychat/polychat/log"
)

// retryBackoff calls fn until it succeeds or the retry budget runs out.
// The delay before the n-th retry is (2^n + random(0,1)) * baseDelay —
// full jitter, no cap. fn is re-executed from scratch on every attempt.
// The backoff sleep aborts when ctx is done; a mid-attempt call is left
// to fn's own context handling.
func retryBackoff[T any](ctx context.Context, logger log.Logger, maxRetries int, baseDelay time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; ; attempt++ {
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err
		logger.Errorf("API exception: %v\n", err)

		if attempt > maxRetries {
			logger.Errorf("reached max retry %d, last error: %v\n", maxRetries, lastErr)
			return zero, api.NewRetryExhaustedError(attempt, lastErr)
		}

		delay := time.Duration((math.Pow(2, float64(attempt)) + rand.Float64()) * float64(baseDelay))
		logger.Infof("retry %d of %d, waiting %.2fs...\n", attempt, maxRetries, delay.Seconds())

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}
}
