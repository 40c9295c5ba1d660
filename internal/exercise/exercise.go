package exercise

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownCategory is returned when a category name is not recognised.
var ErrUnknownCategory = errors.New("unknown exercise category")

// Category is the kind of exercise presented to the learner.
type Category string

const (
	// CategorySolve is a short word problem to solve.
	CategorySolve Category = "solve"

	// CategoryReformulate gives a statement without a question; the learner
	// writes the questions it can answer.
	CategoryReformulate Category = "reformulate"

	// CategoryCreate asks the learner to invent a problem.
	CategoryCreate Category = "create"

	// CategoryMultiples covers multiples and divisors.
	CategoryMultiples Category = "multiples"

	// CategoryMental is mental arithmetic using a named strategy.
	CategoryMental Category = "mental"

	// CategoryArithmetic is a raw operation produced by the local generator.
	CategoryArithmetic Category = "arithmetic"

	// CategoryRandom is only valid in requests. It is resolved to one of the
	// model categories before generation.
	CategoryRandom Category = "random"
)

// Categories returns the categories in menu order.
func Categories() []Category {
	return []Category{
		CategorySolve,
		CategoryReformulate,
		CategoryCreate,
		CategoryMultiples,
		CategoryMental,
		CategoryArithmetic,
		CategoryRandom,
	}
}

// ModelCategories returns the categories that are generated by the model
// and that CategoryRandom can resolve to.
func ModelCategories() []Category {
	return []Category{
		CategorySolve,
		CategoryReformulate,
		CategoryCreate,
		CategoryMultiples,
		CategoryMental,
	}
}

// ParseCategory converts a name into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Label returns the Spanish display label.
func (c Category) Label() string {
	switch c {
	case CategorySolve:
		return "Resolver problemas"
	case CategoryReformulate:
		return "Inventar preguntas"
	case CategoryCreate:
		return "Crear problemas"
	case CategoryMultiples:
		return "Múltiplos y divisores"
	case CategoryMental:
		return "Cálculo mental"
	case CategoryArithmetic:
		return "Operaciones"
	case CategoryRandom:
		return "Sorpréndeme"
	default:
		return string(c)
	}
}

// OpenEnded reports whether answers in this category can only be judged
// by the model.
func (c Category) OpenEnded() bool {
	return c == CategorySolve || c == CategoryReformulate || c == CategoryCreate
}

// NeedsContext reports whether exercises in this category carry a
// statement or target next to the question.
func (c Category) NeedsContext() bool {
	return c == CategoryReformulate || c == CategoryCreate
}

// Operation is a raw arithmetic operation of the local generator.
type Operation string

const (
	OpSum    Operation = "sum"
	OpSub    Operation = "sub"
	OpMult   Operation = "mult"
	OpDiv    Operation = "div"
	OpDouble Operation = "double"
	OpHalf   Operation = "half"
)

// Operations returns every local arithmetic operation.
func Operations() []Operation {
	return []Operation{OpSum, OpSub, OpMult, OpDiv, OpDouble, OpHalf}
}

// Origin records who produced an exercise.
type Origin string

const (
	OriginModel Origin = "model"
	OriginLocal Origin = "local"
)

// Exercise is a single problem shown to the learner. It is never mutated
// after the generator returns it.
type Exercise struct {
	ID        uuid.UUID `json:"id"`
	Category  Category  `json:"category"`
	Operation Operation `json:"operation,omitempty"`

	// Question is the prompt shown to the learner.
	Question string `json:"question"`

	// Context is supporting text: the statement to reformulate, or the
	// operation the invented problem must use.
	Context string `json:"context,omitempty"`

	Hint string `json:"hint,omitempty"`

	// Answer is the ground truth, when one can be computed locally.
	Answer string `json:"answer,omitempty"`

	Origin    Origin    `json:"origin"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasGroundTruth reports whether the exercise can be judged locally.
func (e *Exercise) HasGroundTruth() bool {
	return strings.TrimSpace(e.Answer) != ""
}

// Source identifies who judged an answer.
type Source string

const (
	SourceGroundTruth Source = "ground-truth"
	SourceModel       Source = "model"
	SourceFallback    Source = "fallback"
)

// EvaluationResult is the verdict for one submitted answer.
type EvaluationResult struct {
	Correct    bool   `json:"isCorrect"`
	Feedback   string `json:"feedback"`
	Correction string `json:"correction,omitempty"`
	Source     Source `json:"source"`
}
