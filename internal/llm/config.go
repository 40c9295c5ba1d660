package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted in Config.Provider and MATES_LLM_PROVIDER.
const (
	ProviderGemini     = "gemini"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// defaultModels is used when no model is configured.
var defaultModels = map[string]string{
	ProviderGemini:     "gemini-flash",
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderOpenRouter: "google/gemini-2.0-flash-001",
}

// discoveryOrder lists the conventional key variables probed when
// MATES_LLM_PROVIDER is unset.
var discoveryOrder = []struct{ env, provider string }{
	{"GEMINI_API_KEY", ProviderGemini},
	{"VITE_GEMINI_API_KEY", ProviderGemini},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// Config selects one provider and tunes the middleware around it.
type Config struct {
	Provider string
	Backend  BackendConfig
	Retry    RetryConfig
	Guard    GuardConfig
	Timeout  time.Duration // per call, retries included; 0 disables
}

// BackendConfig is what every vendor SDK needs.
type BackendConfig struct {
	APIKey  string
	Model   string // alias or full model ID; empty picks the provider default
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// GuardConfig bounds concurrent calls and trips a breaker after repeated
// failures so a dead provider stops costing a timeout per answer.
type GuardConfig struct {
	MaxInFlight      int
	MaxQueue         int
	FailureThreshold int
	OpenTimeout      time.Duration
}

// DefaultConfig returns the Gemini configuration without a key.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Guard: GuardConfig{
			MaxInFlight:      1,
			MaxQueue:         8,
			FailureThreshold: 3,
			OpenTimeout:      time.Minute,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv reads MATES_LLM_* variables over DefaultConfig. The second
// result is false when no provider is named and no API key is discoverable.
func ConfigFromEnv() (Config, bool) {
	cfg := DefaultConfig()

	if p := os.Getenv("MATES_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
		cfg.Backend.APIKey = os.Getenv("MATES_LLM_API_KEY")
	} else if k := os.Getenv("MATES_LLM_API_KEY"); k != "" {
		cfg.Backend.APIKey = k
	} else {
		found := false
		for _, d := range discoveryOrder {
			if k := os.Getenv(d.env); k != "" {
				cfg.Provider, cfg.Backend.APIKey, found = d.provider, k, true
				break
			}
		}
		if !found {
			return Config{}, false
		}
	}

	cfg.Backend.Model = os.Getenv("MATES_LLM_MODEL")
	cfg.Backend.BaseURL = os.Getenv("MATES_LLM_BASE_URL")
	if n, err := strconv.Atoi(os.Getenv("MATES_LLM_MAX_IN_FLIGHT")); err == nil && n > 0 {
		cfg.Guard.MaxInFlight = n
	}
	if d, err := time.ParseDuration(os.Getenv("MATES_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg, true
}

// Validate reports an unknown provider or a missing key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	if _, ok := defaultModels[c.Provider]; !ok {
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if c.Backend.APIKey == "" {
		return fmt.Errorf("%s provider needs an API key (MATES_LLM_API_KEY)", c.Provider)
	}
	return nil
}

func (c Config) model() string {
	if c.Backend.Model != "" {
		return c.Backend.Model
	}
	return defaultModels[c.Provider]
}
