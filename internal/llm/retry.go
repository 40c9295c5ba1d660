package llm

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
)

type retryProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry retries failed calls with exponential backoff and jitter.
// Truncated replies and cancelled contexts are final. An invalid reply is
// retried once, since a second malformed reply usually means the prompt
// itself is the problem.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &retryProvider{inner: p, cfg: cfg}
}

// final marks an error the retrier must not retry.
type final struct{ err error }

func (f final) Error() string { return f.err.Error() }
func (f final) Unwrap() error { return f.err }

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	retrier := retry.New[*Response](retry.Config{
		MaxAttempts:   r.cfg.MaxAttempts,
		InitialDelay:  r.cfg.InitialWait,
		MaxDelay:      r.cfg.MaxWait,
		Multiplier:    r.cfg.Multiplier,
		BackoffPolicy: retry.BackoffExponential,
		Jitter:        true,
		IsRetryable: func(err error) bool {
			var f final
			return !errors.As(err, &f)
		},
	})

	invalidSeen := false
	resp, err := retrier.Do(ctx, func(ctx context.Context) (*Response, error) {
		resp, err := r.inner.Generate(ctx, req)
		switch {
		case err == nil:
			return resp, nil
		case ctx.Err() != nil, IsKind(err, KindTruncated):
			return nil, final{err}
		case IsKind(err, KindInvalidResponse):
			if invalidSeen {
				return nil, final{err}
			}
			invalidSeen = true
		}
		return nil, err
	})
	if err == nil {
		return resp, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	var f final
	if errors.As(err, &f) {
		return nil, f.err
	}
	return nil, err
}

func (r *retryProvider) ModelID() string { return r.inner.ModelID() }

type timeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout bounds every call, retries included.
func WithTimeout(p Provider, d time.Duration) Provider {
	return &timeoutProvider{inner: p, timeout: d}
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *timeoutProvider) ModelID() string { return t.inner.ModelID() }
