package problemgen

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/mates/internal/exercise"
)

// Check inspects a model exercise before it reaches the learner and returns
// a *Rejection when it must be discarded.
type Check func(ex *exercise.Exercise) *Rejection

// Rejection explains why a generated exercise was discarded. Final
// rejections are not worth another request.
type Rejection struct {
	Check  string
	Reason string
	Final  bool
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s check: %s", r.Check, r.Reason)
}

var fieldLimits = []struct {
	field string
	runes int
	get   func(*exercise.Exercise) string
}{
	{"question", 500, func(ex *exercise.Exercise) string { return ex.Question }},
	{"context", 800, func(ex *exercise.Exercise) string { return ex.Context }},
	{"hint", 300, func(ex *exercise.Exercise) string { return ex.Hint }},
}

// CheckShape rejects an empty question, oversized fields and a missing
// context for the categories that display one.
func CheckShape(ex *exercise.Exercise) *Rejection {
	reject := func(format string, args ...any) *Rejection {
		return &Rejection{Check: "shape", Reason: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(ex.Question) == "" {
		return reject("question is empty")
	}
	for _, l := range fieldLimits {
		if n := utf8.RuneCountInString(l.get(ex)); n > l.runes {
			return reject("%s has %d characters, limit %d", l.field, n, l.runes)
		}
	}
	if ex.Category.NeedsContext() && strings.TrimSpace(ex.Context) == "" {
		return reject("%s exercise without context", ex.Category)
	}
	return nil
}

// priorList numbers the questions for the "do not repeat" prompt block.
func priorList(questions []string) string {
	if len(questions) == 0 {
		return "Ninguna"
	}
	lines := make([]string, len(questions))
	for i, q := range questions {
		lines[i] = fmt.Sprintf("%d. %s", i+1, q)
	}
	return strings.Join(lines, "\n")
}
