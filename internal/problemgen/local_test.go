package problemgen

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/abhisek/mates/internal/exercise"
)

func TestLocalGenerator_Deterministic(t *testing.T) {
	a := NewLocalGenerator(rand.New(rand.NewPCG(1, 2)))
	b := NewLocalGenerator(rand.New(rand.NewPCG(1, 2)))

	for range 50 {
		ea, eb := a.RandomArithmetic(), b.RandomArithmetic()
		if ea.Question != eb.Question || ea.Answer != eb.Answer {
			t.Fatalf("same seed diverged: %q vs %q", ea.Question, eb.Question)
		}
	}
}

func TestLocalGenerator_ArithmeticAnswers(t *testing.T) {
	g := NewLocalGenerator(rand.New(rand.NewPCG(3, 4)))

	for _, op := range exercise.Operations() {
		for range 100 {
			ex := g.Arithmetic(op)
			if ex.Category != exercise.CategoryArithmetic || ex.Operation != op {
				t.Fatalf("unexpected category/operation: %+v", ex)
			}
			if ex.Origin != exercise.OriginLocal || ex.Hint == "" {
				t.Fatalf("unexpected exercise: %+v", ex)
			}
			want, ok := DeriveAnswer(ex.Question)
			if !ok {
				t.Fatalf("question %q is not derivable", ex.Question)
			}
			if ex.Answer != want {
				t.Fatalf("%q: answer %q, derived %q", ex.Question, ex.Answer, want)
			}
		}
	}
}

func TestLocalGenerator_DivisionIsExact(t *testing.T) {
	g := NewLocalGenerator(rand.New(rand.NewPCG(5, 6)))
	for range 200 {
		ex := g.Arithmetic(exercise.OpDiv)
		if !strings.HasPrefix(ex.Question, "Calcula: ") || !strings.Contains(ex.Question, " : ") {
			t.Fatalf("unexpected division question %q", ex.Question)
		}
	}
}

func TestLocalGenerator_UnknownOperationIsSum(t *testing.T) {
	g := NewLocalGenerator(rand.New(rand.NewPCG(1, 1)))
	ex := g.Arithmetic(exercise.Operation("pow"))
	if ex.Operation != exercise.OpSum || !strings.Contains(ex.Question, " + ") {
		t.Errorf("expected a sum, got %+v", ex)
	}
}

func TestLocalGenerator_Multiples(t *testing.T) {
	g := NewLocalGenerator(rand.New(rand.NewPCG(9, 9)))

	for range 200 {
		ex := g.Multiples()
		if ex.Category != exercise.CategoryMultiples {
			t.Fatalf("expected multiples, got %q", ex.Category)
		}
		if ex.Hint != multiplesHint {
			t.Fatalf("unexpected hint %q", ex.Hint)
		}
		want, ok := DeriveAnswer(ex.Question)
		if !ok {
			t.Fatalf("question %q is not derivable", ex.Question)
		}
		if ex.Answer != want {
			t.Fatalf("%q: answer %q, derived %q", ex.Question, ex.Answer, want)
		}
	}
}

func TestLocalGenerator_Fallback(t *testing.T) {
	g := NewLocalGenerator(rand.New(rand.NewPCG(2, 2)))

	if ex := g.Fallback(exercise.CategoryMultiples); ex.Category != exercise.CategoryMultiples {
		t.Errorf("multiples fallback = %q", ex.Category)
	}
	for _, c := range []exercise.Category{exercise.CategorySolve, exercise.CategoryReformulate, exercise.CategoryCreate, exercise.CategoryMental} {
		if ex := g.Fallback(c); ex.Category != exercise.CategoryArithmetic {
			t.Errorf("fallback for %q = %q, want arithmetic", c, ex.Category)
		}
	}
}

func TestLocalGenerator_UniqueIDs(t *testing.T) {
	g := NewLocalGenerator(rand.New(rand.NewPCG(4, 4)))
	var ids []string
	for range 20 {
		id := g.RandomArithmetic().ID.String()
		if slices.Contains(ids, id) {
			t.Fatalf("duplicate id %s", id)
		}
		ids = append(ids, id)
	}
}
