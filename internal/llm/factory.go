package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/mates/internal/store"
)

// ErrNoProvider means nothing is configured; callers run offline.
var ErrNoProvider = errors.New("no LLM provider configured")

// NewProvider builds the configured backend and wraps it:
// caller → timeout → guard → retry → event log → backend.
// A nil repo skips the event log.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	backend := cfg.Backend
	backend.Model = cfg.model()

	var p Provider
	var err error
	switch cfg.Provider {
	case ProviderGemini:
		p, err = NewGemini(ctx, backend)
	case ProviderAnthropic:
		p, err = NewAnthropic(backend)
	case ProviderOpenAI:
		p, err = NewOpenAI(backend)
	case ProviderOpenRouter:
		p, err = NewOpenRouter(backend)
	case ProviderMock:
		p = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	if repo != nil {
		p = WithLogging(p, repo)
	}
	p = WithRetry(p, cfg.Retry)
	p = WithGuard(p, cfg.Guard)
	if cfg.Timeout > 0 {
		p = WithTimeout(p, cfg.Timeout)
	}
	return p, nil
}

// NewProviderFromEnv is NewProvider over ConfigFromEnv. It returns
// ErrNoProvider when the environment names no provider and holds no key.
func NewProviderFromEnv(ctx context.Context, repo store.EventRepo) (Provider, error) {
	cfg, ok := ConfigFromEnv()
	if !ok {
		return nil, ErrNoProvider
	}
	return NewProvider(ctx, cfg, repo)
}
