package problemgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mates/internal/exercise"
)

// LocalGenerator produces ground-truth exercises without a model. It is
// deterministic for a given *rand.Rand and is not safe for concurrent use.
type LocalGenerator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewLocalGenerator creates a LocalGenerator drawing from r.
func NewLocalGenerator(r *rand.Rand) *LocalGenerator {
	return &LocalGenerator{rng: r, now: time.Now}
}

// RandomArithmetic produces an exercise for a uniformly chosen operation.
func (g *LocalGenerator) RandomArithmetic() *exercise.Exercise {
	ops := exercise.Operations()
	return g.Arithmetic(ops[g.rng.IntN(len(ops))])
}

// Arithmetic produces an exercise for op. Unknown operations fall back to
// a sum.
func (g *LocalGenerator) Arithmetic(op exercise.Operation) *exercise.Exercise {
	var question, hint string
	var answer int

	switch op {
	case exercise.OpSub:
		a, b := g.between(100, 899), g.between(10, 109)
		question, hint, answer = fmt.Sprintf("Calcula: %d - %d", a, b), "Resta primero las decenas.", a-b
	case exercise.OpMult:
		a, b := g.between(2, 21), g.between(2, 10)
		if g.rng.Float64() > 0.7 {
			b = 10
			if g.rng.Float64() > 0.5 {
				b = 100
			}
			hint = "Añade los ceros al final."
		} else {
			hint = "Usa las tablas de multiplicar."
		}
		question, answer = fmt.Sprintf("Calcula: %d x %d", a, b), a*b
	case exercise.OpDiv:
		divisor, quotient := g.between(2, 9), g.between(10, 59)
		question = fmt.Sprintf("Calcula: %d : %d", divisor*quotient, divisor)
		hint = "Busca un número que multiplicado por el divisor dé el dividendo."
		answer = quotient
	case exercise.OpDouble:
		n := g.between(10, 209)
		question, hint, answer = fmt.Sprintf("El doble de %d", n), "Multiplica por 2.", 2*n
	case exercise.OpHalf:
		n := g.between(10, 209) * 2
		question, hint, answer = fmt.Sprintf("La mitad de %d", n), "Divide entre 2.", n/2
	default:
		op = exercise.OpSum
		a, b := g.between(50, 449), g.between(50, 449)
		question, hint, answer = fmt.Sprintf("Calcula: %d + %d", a, b), "Suma las centenas, luego las decenas.", a+b
	}

	ex := g.newExercise(exercise.CategoryArithmetic, question, hint, strconv.Itoa(answer))
	ex.Operation = op
	return ex
}

// Multiples produces a multiples/divisors exercise with ground truth:
// a divisor list, a multiples-in-range list, or a yes/no question.
func (g *LocalGenerator) Multiples() *exercise.Exercise {
	var question, answer string

	switch g.rng.IntN(3) {
	case 0:
		n := g.between(10, 50)
		question = fmt.Sprintf("Escribe todos los divisores de %d", n)
		answer = joinInts(Divisors(n))
	case 1:
		k := g.between(2, 9)
		a := g.between(10, 60)
		b := a + g.between(20, 50)
		question = fmt.Sprintf("Escribe los múltiplos de %d que hay entre %d y %d", k, a, b)
		answer = joinInts(MultiplesBetween(k, a, b))
	default:
		k := g.between(2, 9)
		x := k * g.between(4, 20)
		if g.rng.IntN(2) == 0 {
			x += g.between(1, k-1)
		}
		if g.rng.IntN(2) == 0 {
			question = fmt.Sprintf("¿Es %d múltiplo de %d?", x, k)
		} else {
			question = fmt.Sprintf("¿Es %d divisor de %d?", k, x)
		}
		answer = yesNo(IsMultiple(x, k))
	}

	return g.newExercise(exercise.CategoryMultiples, question, multiplesHint, answer)
}

// Fallback produces the offline replacement for a category: a local
// multiples exercise for CategoryMultiples and arithmetic for everything else.
func (g *LocalGenerator) Fallback(category exercise.Category) *exercise.Exercise {
	if category == exercise.CategoryMultiples {
		return g.Multiples()
	}
	return g.RandomArithmetic()
}

// between returns a uniform integer in [lo, hi].
func (g *LocalGenerator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *LocalGenerator) newExercise(category exercise.Category, question, hint, answer string) *exercise.Exercise {
	return &exercise.Exercise{
		ID:        uuid.New(),
		Category:  category,
		Question:  question,
		Hint:      hint,
		Answer:    answer,
		Origin:    exercise.OriginLocal,
		CreatedAt: g.now(),
	}
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
