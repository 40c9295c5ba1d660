package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

var anthropicAliases = map[string]string{
	"claude-haiku":  "claude-haiku-4-5-20251001",
	"claude-sonnet": "claude-sonnet-4-20250514",
}

type anthropicBackend struct {
	sdk   anthropic.Client
	model string
}

// NewAnthropic returns a Provider backed by the Anthropic Messages API.
func NewAnthropic(cfg BackendConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic: API key is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0), // WithRetry owns retries
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := resolveModel(cfg.Model, anthropicAliases)
	return &client{
		name:    "anthropic",
		model:   model,
		backend: &anthropicBackend{sdk: anthropic.NewClient(opts...), model: model},
	}, nil
}

func (b *anthropicBackend) complete(ctx context.Context, req Request) (*completion, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: int64(req.MaxTokens),
	}
	for _, m := range req.Messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == RoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		}
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.Schema != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{Schema: req.Schema.Definition},
		}
	}

	msg, err := b.sdk.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, fromStatus(apiErr.StatusCode, err)
		}
		return nil, unavailable(err)
	}

	out := &completion{
		model: string(msg.Model),
		stop:  StopEnd,
		usage: newUsage(int(msg.Usage.InputTokens), int(msg.Usage.OutputTokens)),
	}
	if msg.StopReason == anthropic.StopReasonMaxTokens {
		out.stop = StopMaxTokens
	}
	for _, block := range msg.Content {
		if block.Type == "text" {
			out.text = block.Text
			return out, nil
		}
	}
	return nil, invalidResponse("", fmt.Errorf("anthropic: reply has no text block"))
}
