package llm

import (
	"context"
	"encoding/json"
)

// Provider turns a prompt into a (usually JSON) reply.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID names the model requests are sent to.
	ModelID() string
}

// Request is one single-turn prompt. With a Schema the reply is cut to its
// JSON span and validated before it is returned.
type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema
	MaxTokens   int
	Temperature float64 // 0 leaves the backend default
}

type Message struct {
	Role    Role   `yaml:"role"`
	Content string `yaml:"content"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema document plus the name backends use to label it.
type Schema struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Definition  map[string]any `yaml:"definition"`
}

// StopReason is the normalised reason a completion ended.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func newUsage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

type purposeKey struct{}

// WithPurpose labels every call made with ctx in the event log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
