package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

var openAIAliases = map[string]string{
	"gpt-mini": "gpt-4.1-mini",
}

// openAIBackend speaks the chat completions API, which OpenRouter also
// exposes.
type openAIBackend struct {
	sdk   *openai.Client
	model string
}

// NewOpenAI returns a Provider backed by OpenAI chat completions. BaseURL
// points it at any compatible gateway.
func NewOpenAI(cfg BackendConfig) (Provider, error) {
	return newOpenAICompatible("openai", cfg, resolveModel(cfg.Model, openAIAliases))
}

// NewOpenRouter returns a Provider for OpenRouter. Model IDs are vendor
// qualified ("google/gemini-2.0-flash-001") and never aliased.
func NewOpenRouter(cfg BackendConfig) (Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = openRouterBaseURL
	}
	return newOpenAICompatible("openrouter", cfg, cfg.Model)
}

func newOpenAICompatible(name string, cfg BackendConfig, model string) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: API key is required", name)
	}
	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	return &client{
		name:    name,
		model:   model,
		backend: &openAIBackend{sdk: openai.NewClientWithConfig(conf), model: model},
	}, nil
}

func (b *openAIBackend) complete(ctx context.Context, req Request) (*completion, error) {
	chat := openai.ChatCompletionRequest{
		Model:               b.model,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.System != "" {
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("encode schema %q: %w", req.Schema.Name, err)
		}
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Schema.Name,
				Schema: json.RawMessage(def),
			},
		}
	}

	resp, err := b.sdk.CreateChatCompletion(ctx, chat)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, fromStatus(apiErr.HTTPStatusCode, err)
		}
		return nil, unavailable(err)
	}
	if len(resp.Choices) == 0 {
		return nil, invalidResponse("", errors.New("openai: reply has no choices"))
	}

	choice := resp.Choices[0]
	out := &completion{
		text:  choice.Message.Content,
		model: resp.Model,
		stop:  StopEnd,
		usage: newUsage(resp.Usage.PromptTokens, resp.Usage.CompletionTokens),
	}
	if choice.FinishReason == openai.FinishReasonLength {
		out.stop = StopMaxTokens
	}
	return out, nil
}
