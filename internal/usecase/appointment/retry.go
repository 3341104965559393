package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/metrics"
)

// RetryPolicy bounds how often a booking is re-run after a transient
// storage error. Business rejections are never retried.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// final stops the retry loop for an error that would otherwise qualify.
type final struct{ err error }

func (f final) Error() string { return f.err.Error() }
func (f final) Unwrap() error { return f.err }

// writeOnce keeps err retryable only when the write cannot have landed.
func writeOnce(err error) error {
	if err == nil || httperr.IsRetryableWrite(err) {
		return err
	}
	return final{err}
}

var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Backoff: 50 * time.Millisecond}

func (p RetryPolicy) run(ctx context.Context, logger zerolog.Logger, fn func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; ; i++ {
		err = fn()
		var f final
		if errors.As(err, &f) {
			return f.err
		}
		if err == nil || !httperr.IsTransient(err) || i >= attempts {
			return err
		}

		metrics.IncBookingRetry()
		logger.Warn().Err(err).Int("attempt", i).Msg("transient storage error, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Backoff * time.Duration(i)):
		}
	}
}
