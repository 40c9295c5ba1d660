package evaluate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/abhisek/mates/internal/exercise"
	"github.com/abhisek/mates/internal/llm"
	"github.com/abhisek/mates/internal/logging"
)

// PurposeEvaluation labels evaluation calls in the LLM event log.
const PurposeEvaluation = "evaluation"

// ErrEmptyAnswer is returned when the submitted answer is blank.
var ErrEmptyAnswer = errors.New("empty answer")

// Config holds configuration for model-judged evaluation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.3,
	}
}

// Service judges answers: locally when the exercise carries a ground truth,
// otherwise through the model. A nil provider means every open-ended answer
// gets the fallback result.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates an evaluation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// evaluationOutput is the raw model reply.
type evaluationOutput struct {
	IsCorrect  bool   `json:"isCorrect"`
	Feedback   string `json:"feedback"`
	Correction string `json:"correction"`
}

// Evaluate judges answer for ex. Remote failures never surface as errors;
// they produce a fallback result instead.
func (s *Service) Evaluate(ctx context.Context, ex *exercise.Exercise, answer string) (*exercise.EvaluationResult, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, ErrEmptyAnswer
	}

	if ex.HasGroundTruth() {
		return GroundTruthResult(ex, answer), nil
	}

	if s.provider == nil {
		return FallbackResult(errors.New("no hay conexión con el asistente")), nil
	}

	res, err := s.evaluateRemote(ctx, ex, answer)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logging.FromContext(ctx).WithError(err).
			WithField("category", ex.Category).
			Warn("answer evaluation failed, returning fallback")
		return FallbackResult(err), nil
	}
	return res, nil
}

// GroundTruthResult compares answer against the exercise's expected answer.
func GroundTruthResult(ex *exercise.Exercise, answer string) *exercise.EvaluationResult {
	if Equivalent(ex.Answer, answer) {
		return &exercise.EvaluationResult{
			Correct:  true,
			Feedback: fmt.Sprintf("¡Correcto! La respuesta es %s.", ex.Answer),
			Source:   exercise.SourceGroundTruth,
		}
	}
	return &exercise.EvaluationResult{
		Correct:    false,
		Feedback:   fmt.Sprintf("No es correcto. Tu respuesta fue %q, pero la respuesta correcta es %s.", answer, ex.Answer),
		Correction: ex.Answer,
		Source:     exercise.SourceGroundTruth,
	}
}

// FallbackResult is returned when the model could not judge the answer.
func FallbackResult(cause error) *exercise.EvaluationResult {
	return &exercise.EvaluationResult{
		Correct:  false,
		Feedback: fmt.Sprintf("Hubo un error técnico al evaluar tu respuesta: %v. Inténtalo de nuevo, por favor.", cause),
		Source:   exercise.SourceFallback,
	}
}

func (s *Service) evaluateRemote(ctx context.Context, ex *exercise.Exercise, answer string) (*exercise.EvaluationResult, error) {
	ctx = llm.WithPurpose(ctx, PurposeEvaluation)

	prompt, err := buildEvaluationPrompt(ex, answer)
	if err != nil {
		return nil, fmt.Errorf("build evaluation prompt: %w", err)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      EvaluationSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM evaluation failed: %w", err)
	}

	raw, err := llm.ExtractJSON(string(resp.Content))
	if err != nil {
		return nil, err
	}
	var out evaluationOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation response: %w", err)
	}
	if strings.TrimSpace(out.Feedback) == "" {
		return nil, errors.New("evaluation response has no feedback")
	}

	return &exercise.EvaluationResult{
		Correct:    out.IsCorrect,
		Feedback:   strings.TrimSpace(out.Feedback),
		Correction: strings.TrimSpace(out.Correction),
		Source:     exercise.SourceModel,
	}, nil
}

var evaluationTemplate = template.Must(template.New("evaluation").Parse(`Actúa como un maestro de matemáticas de primaria amable y constructivo.
Ejercicio ({{.Category}}):
Enunciado/Contexto: {{.Question}}{{if .Context}} {{.Context}}{{end}}

Respuesta del alumno: "{{.Answer}}"

Evalúa la respuesta.
- Si es correcta, felicítalo y explica brevemente por qué.
- Si es incorrecta o incompleta, explica el error y da la solución correcta de forma pedagógica.
- Si es un ejercicio abierto (inventar problema), valora la creatividad y si tiene sentido matemático.

Devuelve SOLO un JSON:
{
  "isCorrect": boolean,
  "feedback": "Tu explicación aquí...",
  "correction": "La solución ideal (si aplica)"
}`))

func buildEvaluationPrompt(ex *exercise.Exercise, answer string) (string, error) {
	var buf bytes.Buffer
	err := evaluationTemplate.Execute(&buf, struct {
		Category exercise.Category
		Question string
		Context  string
		Answer   string
	}{ex.Category, ex.Question, ex.Context, answer})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
