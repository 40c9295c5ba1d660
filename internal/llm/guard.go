package llm

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/felixgeelhaar/fortify/bulkhead"
	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/mates/internal/logging"
)

// guardProvider limits in-flight calls with a bulkhead and stops calling a
// failing provider with a circuit breaker. Rejected calls never reach the
// provider and fail with KindUnavailable.
type guardProvider struct {
	inner    Provider
	bulkhead bulkhead.Bulkhead[*Response]
	breaker  circuitbreaker.CircuitBreaker[*Response]
}

// WithGuard wraps a Provider with a bulkhead and a circuit breaker.
func WithGuard(p Provider, cfg GuardConfig) Provider {
	maxInFlight := cfg.MaxInFlight
	if maxInFlight <= 0 {
		maxInFlight = 1
	}
	threshold := cfg.FailureThreshold
	if threshold <= 0 {
		threshold = 3
	}
	openTimeout := cfg.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = time.Minute
	}

	model := p.ModelID()
	return &guardProvider{
		inner: p,
		bulkhead: bulkhead.New[*Response](bulkhead.Config{
			MaxConcurrent: maxInFlight,
			MaxQueue:      cfg.MaxQueue,
			QueueTimeout:  2 * time.Minute,
		}),
		breaker: circuitbreaker.New[*Response](circuitbreaker.Config{
			MaxRequests: 1,
			Interval:    5 * time.Minute,
			Timeout:     openTimeout,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return int(counts.ConsecutiveFailures) >= threshold
			},
			OnStateChange: func(from, to circuitbreaker.State) {
				logging.Logger.WithFields(logrus.Fields{
					"model": model,
					"from":  from.String(),
					"to":    to.String(),
				}).Warn("LLM circuit breaker state change")
			},
		}),
	}
}

func (g *guardProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var ran atomic.Bool
	resp, err := g.breaker.Execute(ctx, func(ctx context.Context) (*Response, error) {
		return g.bulkhead.Execute(ctx, func(ctx context.Context) (*Response, error) {
			ran.Store(true)
			return g.inner.Generate(ctx, req)
		})
	})
	if err != nil && !ran.Load() && ctx.Err() == nil {
		return nil, unavailable(err)
	}
	return resp, err
}

func (g *guardProvider) ModelID() string {
	return g.inner.ModelID()
}
