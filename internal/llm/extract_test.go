package llm

import (
	"errors"
	"math"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare object", `{"question":"Calcula: 8 x 7"}`, `{"question":"Calcula: 8 x 7"}`, false},
		{"markdown fence", "```json\n{\"a\":1}\n```", `{"a":1}`, false},
		{"prose around", `Aquí tienes: {"a":{"b":2}} ¡Suerte!`, `{"a":{"b":2}}`, false},
		{"first to last brace", `{"a":1} y {"b":2}`, `{"a":1} y {"b":2}`, false},
		{"no braces", "no hay JSON", "", true},
		{"only opening", `{"a":1`, "", true},
		{"reversed", `} texto {`, "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrNoJSON) {
					t.Fatalf("expected ErrNoJSON, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("ExtractJSON(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeContent(t *testing.T) {
	schema := &Schema{
		Name: "decode-test",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"question"},
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
			},
		},
	}

	raw, err := decodeContent(schema, "```json\n{\"question\":\"¿Cuántos?\"}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"question":"¿Cuántos?"}` {
		t.Fatalf("unexpected content: %s", raw)
	}

	_, err = decodeContent(schema, "lo siento")
	var llmErr *Error
	if !errors.As(err, &llmErr) || llmErr.Kind != KindInvalidResponse || string(llmErr.Content) != "lo siento" {
		t.Fatalf("missing JSON should be an invalid response carrying the text, got %v", err)
	}
	if _, err := decodeContent(schema, `{"hint":"x"}`); !IsKind(err, KindInvalidResponse) {
		t.Fatalf("expected invalid response for schema mismatch, got %v", err)
	}

	text, err := decodeContent(nil, "texto libre")
	if err != nil || string(text) != "texto libre" {
		t.Fatalf("schema-less content should pass through, got %q, %v", text, err)
	}
}

func TestLookupCost(t *testing.T) {
	if c := LookupCost("gemini-2.0-flash"); c == nil || math.Abs(c.Cost(1_000_000, 1_000_000)-0.5) > 1e-9 {
		t.Fatalf("unexpected gemini cost: %+v", c)
	}
	if c := LookupCost("google/gemini-2.0-flash-001"); c == nil {
		t.Fatal("expected OpenRouter ID to resolve to the bare model")
	}
	if c := LookupCost("mock"); c != nil {
		t.Fatalf("expected nil for unknown model, got %+v", c)
	}
}
