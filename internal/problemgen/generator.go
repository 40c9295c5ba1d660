package problemgen

import (
	"context"

	"github.com/abhisek/mates/internal/exercise"
)

// Generator produces exercises for a category.
type Generator interface {
	// Generate produces a single exercise. CategoryRandom is resolved to a
	// concrete category first. Generation falls back to local exercises on
	// model failure, so errors are limited to unknown categories and
	// cancelled contexts.
	Generate(ctx context.Context, category exercise.Category) (*exercise.Exercise, error)
}
