package problemgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/abhisek/mates/internal/exercise"
	"github.com/abhisek/mates/internal/llm"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func newTestGenerator(p llm.Provider) *LLMGenerator {
	return New(p, nil, testRand(), DefaultConfig())
}

func TestGenerate_Solve(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"type":"solve","question":"Un cohete lleva 125 litros en cada uno de sus 4 tanques. ¿Cuántos litros lleva?","hint":"Multiplica."}`),
	})
	gen := newTestGenerator(mock)

	ex, err := gen.Generate(context.Background(), exercise.CategorySolve)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Category != exercise.CategorySolve {
		t.Errorf("expected solve, got %q", ex.Category)
	}
	if !strings.HasPrefix(ex.Question, "Un cohete") {
		t.Errorf("unexpected question: %q", ex.Question)
	}
	if ex.Hint != "Multiplica." {
		t.Errorf("unexpected hint: %q", ex.Hint)
	}
	if ex.Origin != exercise.OriginModel {
		t.Errorf("expected model origin, got %q", ex.Origin)
	}
	if ex.Answer != "" {
		t.Errorf("solve exercises carry no ground truth, got %q", ex.Answer)
	}

	req := mock.Calls[0]
	if req.Schema != ExerciseSchema {
		t.Error("expected exercise schema on request")
	}
	if !strings.HasSuffix(req.Messages[0].Content, promptSuffix) {
		t.Error("prompt should end with the JSON-only instruction")
	}
}

func TestGenerate_FencedReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("Aquí tienes:\n```json\n{\"type\":\"reformulate\",\"question\":\"Escribe todas las preguntas\",\"context\":\"Un tren lleva 240 pasajeros en 6 vagones.\"}\n```"),
	})
	gen := newTestGenerator(mock)

	ex, err := gen.Generate(context.Background(), exercise.CategoryReformulate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Origin != exercise.OriginModel {
		t.Fatalf("expected model exercise, got %q", ex.Origin)
	}
	if ex.Context != "Un tren lleva 240 pasajeros en 6 vagones." {
		t.Errorf("unexpected context: %q", ex.Context)
	}
}

func TestGenerate_CategoryFromRequest(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"type":"solve","question":"Calcula: 30 x 4","hint":""}`),
	})
	gen := newTestGenerator(mock)

	ex, err := gen.Generate(context.Background(), exercise.CategoryMental)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Category != exercise.CategoryMental {
		t.Errorf("expected mental, got %q", ex.Category)
	}
	if ex.Hint == "" || strings.HasPrefix(ex.Hint, "Pista") {
		t.Errorf("expected the bare strategy hint, got %q", ex.Hint)
	}
	if ex.Answer != "120" {
		t.Errorf("expected derived answer 120, got %q", ex.Answer)
	}
}

func TestGenerate_CreateDefaultsContext(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"type":"create","question":"Inventa un problema"}`),
	})
	gen := newTestGenerator(mock)

	ex, err := gen.Generate(context.Background(), exercise.CategoryCreate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Context == "" {
		t.Fatal("expected create target as context")
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, ex.Context) {
		t.Errorf("context %q should be the target named in the prompt", ex.Context)
	}
}

func TestGenerate_MultiplesDerived(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"type":"multiples","question":"¿Es 72 múltiplo de 8?"}`),
	})
	gen := newTestGenerator(mock)

	ex, err := gen.Generate(context.Background(), exercise.CategoryMultiples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Answer != "Sí" {
		t.Errorf("expected Sí, got %q", ex.Answer)
	}
	if ex.Hint != multiplesHint {
		t.Errorf("expected default multiples hint, got %q", ex.Hint)
	}
}

func TestGenerate_ProviderErrorFallsBack(t *testing.T) {
	tests := []struct {
		category exercise.Category
		want     exercise.Category
	}{
		{exercise.CategorySolve, exercise.CategoryArithmetic},
		{exercise.CategoryMental, exercise.CategoryArithmetic},
		{exercise.CategoryMultiples, exercise.CategoryMultiples},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("quota exceeded")})
			gen := newTestGenerator(mock)

			ex, err := gen.Generate(context.Background(), tt.category)
			if err != nil {
				t.Fatalf("fallback should not error: %v", err)
			}
			if ex.Origin != exercise.OriginLocal {
				t.Errorf("expected local origin, got %q", ex.Origin)
			}
			if ex.Category != tt.want {
				t.Errorf("expected %q, got %q", tt.want, ex.Category)
			}
			if ex.Answer == "" {
				t.Error("local exercises carry a ground-truth answer")
			}
			if mock.CallCount() != 1 {
				t.Errorf("provider errors should not retry here, got %d calls", mock.CallCount())
			}
		})
	}
}

func TestGenerate_InvalidJSONFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`no tengo ideas hoy`)})
	gen := newTestGenerator(mock)

	ex, err := gen.Generate(context.Background(), exercise.CategorySolve)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Origin != exercise.OriginLocal {
		t.Errorf("expected local fallback, got %q", ex.Origin)
	}
}

func TestGenerate_RetriesStructuralFailure(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"question":"  "}`)},
		llm.MockResponse{Content: json.RawMessage(`{"question":"Calcula: 450 + 30"}`)},
	)
	gen := newTestGenerator(mock)

	ex, err := gen.Generate(context.Background(), exercise.CategoryMental)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("expected 2 calls, got %d", mock.CallCount())
	}
	if ex.Origin != exercise.OriginModel || ex.Answer != "480" {
		t.Errorf("unexpected exercise: %+v", ex)
	}
}

func TestGenerate_RetriesExhausted(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"question":""}`)},
		llm.MockResponse{Content: json.RawMessage(`{"question":""}`)},
	)
	gen := newTestGenerator(mock)

	ex, err := gen.Generate(context.Background(), exercise.CategorySolve)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Origin != exercise.OriginLocal {
		t.Errorf("expected local fallback after retries, got %q", ex.Origin)
	}
	if mock.CallCount() != 2 {
		t.Errorf("expected one call per attempt, got %d", mock.CallCount())
	}
}

func TestGenerate_NilProvider(t *testing.T) {
	gen := newTestGenerator(nil)
	if gen.Online() {
		t.Fatal("expected offline generator")
	}

	ex, err := gen.Generate(context.Background(), exercise.CategoryCreate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Origin != exercise.OriginLocal || ex.Category != exercise.CategoryArithmetic {
		t.Errorf("unexpected exercise: %+v", ex)
	}
}

func TestGenerate_ArithmeticIsLocal(t *testing.T) {
	mock := llm.NewMockProvider()
	gen := newTestGenerator(mock)

	ex, err := gen.Generate(context.Background(), exercise.CategoryArithmetic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Category != exercise.CategoryArithmetic || ex.Operation == "" {
		t.Errorf("unexpected exercise: %+v", ex)
	}
	if mock.CallCount() != 0 {
		t.Errorf("arithmetic should never reach the provider, got %d calls", mock.CallCount())
	}
}

func TestGenerate_RandomResolves(t *testing.T) {
	gen := newTestGenerator(nil)
	models := exercise.ModelCategories()

	for i := range 20 {
		body := fmt.Sprintf(`{"question":"Calcula: %d x 3","context":"Un granjero tiene %d gallinas en 3 corrales."}`, 20+i, 20+i)
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(body)})
		gen.provider = mock

		ex, err := gen.Generate(context.Background(), exercise.CategoryRandom)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ex.Category == exercise.CategoryRandom {
			t.Fatal("random must be resolved")
		}
		if !slices.Contains(models, ex.Category) {
			t.Errorf("random resolved to %q", ex.Category)
		}
	}
}

func TestGenerate_UnknownCategory(t *testing.T) {
	gen := newTestGenerator(llm.NewMockProvider())

	_, err := gen.Generate(context.Background(), exercise.Category("geometry"))
	if !errors.Is(err, exercise.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	mock := llm.NewMockProvider()
	gen := newTestGenerator(mock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, exercise.CategorySolve)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("expected no provider calls, got %d", mock.CallCount())
	}
}

func TestGenerate_PriorQuestionsInPrompt(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"question":"Calcula: 450 + 30"}`)},
		llm.MockResponse{Content: json.RawMessage(`{"question":"Calcula: 900 - 200"}`)},
	)
	gen := newTestGenerator(mock)
	ctx := context.Background()

	if _, err := gen.Generate(ctx, exercise.CategoryMental); err != nil {
		t.Fatal(err)
	}
	if _, err := gen.Generate(ctx, exercise.CategoryMental); err != nil {
		t.Fatal(err)
	}

	first := mock.Calls[0].Messages[0].Content
	second := mock.Calls[1].Messages[0].Content
	if !strings.Contains(first, "Ninguna") {
		t.Error("first prompt should have no prior questions")
	}
	if !strings.Contains(second, "1. Calcula: 450 + 30") {
		t.Errorf("second prompt should list the first question:\n%s", second)
	}
}

func TestGenerate_RepeatedQuestionRetried(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"question":"Calcula: 450 + 30"}`)},
		llm.MockResponse{Content: json.RawMessage(`{"question":"calcula: 450 + 30"}`)},
		llm.MockResponse{Content: json.RawMessage(`{"question":"Calcula: 900 - 200"}`)},
	)
	gen := newTestGenerator(mock)
	ctx := context.Background()

	if _, err := gen.Generate(ctx, exercise.CategoryMental); err != nil {
		t.Fatal(err)
	}
	ex, err := gen.Generate(ctx, exercise.CategoryMental)
	if err != nil {
		t.Fatal(err)
	}
	if ex.Question != "Calcula: 900 - 200" || mock.CallCount() != 3 {
		t.Errorf("repeat not rejected: %q after %d calls", ex.Question, mock.CallCount())
	}
}

func TestGenerate_PriorQuestionsBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.History = 2
	gen := New(nil, nil, testRand(), cfg)

	for _, q := range []string{"a", "b", "c"} {
		gen.remember(q)
	}
	if !slices.Equal(gen.prior, []string{"b", "c"}) {
		t.Errorf("prior = %v, want [b c]", gen.prior)
	}
}

func TestStripHintLabel(t *testing.T) {
	tests := map[string]string{
		"Pista: Recuerda las tablas.": "Recuerda las tablas.",
		"  pista:Suma primero ":       "Suma primero",
		"Piensa en las decenas":       "Piensa en las decenas",
		"":                            "",
	}
	for in, want := range tests {
		if got := stripHintLabel(in); got != want {
			t.Errorf("stripHintLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
