package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func openAIChat(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func openAIFailure(kind string) map[string]any {
	return map[string]any{"error": map[string]any{"type": kind, "message": kind}}
}

func newTestOpenAI(t *testing.T, url string) Provider {
	t.Helper()
	p, err := NewOpenAI(BackendConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: url + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAI: %v", err)
	}
	return p
}

func TestOpenAI_Generate(t *testing.T) {
	var body map[string]any
	url := serveJSON(t, http.StatusOK,
		openAIChat("```json\n{\"isCorrect\":true,\"feedback\":\"¡Muy bien!\"}\n```", "stop"),
		func(r *http.Request) { json.NewDecoder(r.Body).Decode(&body) })
	p := newTestOpenAI(t, url)

	resp, err := p.Generate(context.Background(), Request{
		System:    "Eres un maestro de primaria.",
		Messages:  []Message{{Role: RoleUser, Content: "Evalúa: 7 x 8 = 56"}},
		Schema:    evaluationTestSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"isCorrect":true,"feedback":"¡Muy bien!"}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 || resp.StopReason != StopEnd {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if msgs, _ := body["messages"].([]any); len(msgs) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(msgs))
	}
	if rf, ok := body["response_format"].(map[string]any); !ok || rf["type"] != "json_schema" {
		t.Fatalf("expected json_schema response format, got %v", body["response_format"])
	}
}

func TestOpenAI_BadReplies(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   map[string]any
		want   ErrorKind
	}{
		{"refusal", http.StatusOK, openAIChat("No puedo ayudar con eso.", "stop"), KindInvalidResponse},
		{"length", http.StatusOK, openAIChat(`{"isCorrect":`, "length"), KindTruncated},
		{"rate limit", http.StatusTooManyRequests, openAIFailure("rate_limit_exceeded"), KindRateLimited},
		{"server error", http.StatusInternalServerError, openAIFailure("server_error"), KindUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAI(t, serveJSON(t, tt.status, tt.body, nil))
			_, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "Evalúa"}},
				Schema:   evaluationTestSchema(),
			})
			if !IsKind(err, tt.want) {
				t.Fatalf("expected %s, got %v", tt.want, err)
			}
		})
	}
}

func TestNewOpenAI_Models(t *testing.T) {
	p, err := NewOpenAI(BackendConfig{APIKey: "k", Model: "gpt-mini"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4.1-mini" {
		t.Fatalf("alias not resolved, got %q", p.ModelID())
	}

	if _, err := NewOpenAI(BackendConfig{Model: "gpt-4o"}); err == nil || !strings.Contains(err.Error(), "API key") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestNewOpenRouter(t *testing.T) {
	p, err := NewOpenRouter(BackendConfig{APIKey: "sk-or", Model: "gpt-mini"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-mini" {
		t.Errorf("gateway model IDs must pass through, got %q", p.ModelID())
	}
	if providerName(p) != ProviderOpenRouter {
		t.Errorf("name = %q", providerName(p))
	}

	if _, err := NewOpenRouter(BackendConfig{Model: "google/gemini-2.0-flash-001"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
