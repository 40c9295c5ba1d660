package problemgen

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/mates/internal/catalog"
	"github.com/abhisek/mates/internal/exercise"
	"github.com/abhisek/mates/internal/llm"
	"github.com/abhisek/mates/internal/logging"
)

// PurposeExerciseGen labels generation calls in the LLM event log.
const PurposeExerciseGen = "exercise-gen"

// LLMGenerator implements Generator using a model, with the local generator
// as offline fallback. A nil provider means always offline.
type LLMGenerator struct {
	provider llm.Provider
	catalog  *catalog.Catalog
	config   Config

	mu    sync.Mutex // guards rng, local and prior
	rng   *rand.Rand
	local *LocalGenerator
	prior []string
}

// New creates an LLMGenerator. rng drives category, theme and seed choices
// and the fallback generator.
func New(provider llm.Provider, cat *catalog.Catalog, rng *rand.Rand, cfg Config) *LLMGenerator {
	if cat == nil {
		cat = catalog.Default()
	}
	return &LLMGenerator{
		provider: provider,
		catalog:  cat,
		config:   cfg,
		rng:      rng,
		local:    NewLocalGenerator(rng),
	}
}

// Online reports whether a model provider is configured.
func (g *LLMGenerator) Online() bool {
	return g.provider != nil
}

// Generate produces a single exercise for category.
func (g *LLMGenerator) Generate(ctx context.Context, category exercise.Category) (*exercise.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := exercise.ParseCategory(string(category)); err != nil {
		return nil, err
	}

	g.mu.Lock()
	if category == exercise.CategoryRandom {
		cats := exercise.ModelCategories()
		category = cats[g.rng.IntN(len(cats))]
	}
	if category == exercise.CategoryArithmetic {
		ex := g.local.RandomArithmetic()
		g.mu.Unlock()
		return ex, nil
	}
	input := g.promptInput()
	g.mu.Unlock()

	log := logging.FromContext(ctx).WithField("category", category)

	if g.provider == nil {
		log.Debug("no LLM provider, using local exercise")
		return g.fallback(category), nil
	}

	ex, err := g.generateRemote(ctx, category, input)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.WithError(err).Warn("exercise generation failed, using local exercise")
		return g.fallback(category), nil
	}

	g.remember(ex.Question)
	return ex, nil
}

func (g *LLMGenerator) generateRemote(ctx context.Context, category exercise.Category, input PromptInput) (*exercise.Exercise, error) {
	prompt, err := BuildPrompt(category, input)
	if err != nil {
		return nil, err
	}

	req := llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      ExerciseSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}
	ctx = llm.WithPurpose(ctx, PurposeExerciseGen)

	var last error
	for range max(g.config.Attempts, 1) {
		resp, err := g.provider.Generate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("LLM generation failed: %w", err)
		}

		ex, err := parseExercise(resp.Content, category, input)
		if err != nil {
			return nil, err
		}

		rej := g.inspect(ex)
		if rej == nil {
			return ex, nil
		}
		logging.FromContext(ctx).WithField("check", rej.Check).Debug(rej.Reason)
		last = rej
		if rej.Final {
			break
		}
	}
	return nil, last
}

// inspect runs the configured checks, then rejects a question the learner
// has already seen in this run.
func (g *LLMGenerator) inspect(ex *exercise.Exercise) *Rejection {
	for _, check := range g.config.Checks {
		if rej := check(ex); rej != nil {
			return rej
		}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	q := strings.ToLower(ex.Question)
	for _, seen := range g.prior {
		if strings.ToLower(seen) == q {
			return &Rejection{Check: "repeat", Reason: "question already asked"}
		}
	}
	return nil
}

// parseExercise cuts the reply to its JSON span and maps it onto an
// Exercise. The category always comes from the request, never the reply.
func parseExercise(content json.RawMessage, category exercise.Category, input PromptInput) (*exercise.Exercise, error) {
	raw, err := llm.ExtractJSON(string(content))
	if err != nil {
		return nil, err
	}
	var out exerciseOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	ex := &exercise.Exercise{
		ID:        uuid.New(),
		Category:  category,
		Question:  strings.TrimSpace(out.Question),
		Context:   strings.TrimSpace(out.Context),
		Hint:      stripHintLabel(out.Hint),
		Origin:    exercise.OriginModel,
		CreatedAt: time.Now(),
	}

	switch category {
	case exercise.CategoryCreate:
		if ex.Context == "" {
			ex.Context = input.CreateTarget
		}
	case exercise.CategoryMental:
		if ex.Hint == "" {
			ex.Hint = input.Strategy.Hint
		}
	case exercise.CategoryMultiples:
		if ex.Hint == "" {
			ex.Hint = multiplesHint
		}
	}

	if category == exercise.CategoryMental || category == exercise.CategoryMultiples {
		if answer, ok := DeriveAnswer(ex.Question); ok {
			ex.Answer = answer
		}
	}
	return ex, nil
}

// stripHintLabel drops a leading "Pista:" the model often adds. Front-ends
// print their own label.
func stripHintLabel(hint string) string {
	hint = strings.TrimSpace(hint)
	if len(hint) >= 6 && strings.EqualFold(hint[:6], "pista:") {
		hint = strings.TrimSpace(hint[6:])
	}
	return hint
}

// promptInput draws the variety data for one request. Callers hold g.mu.
func (g *LLMGenerator) promptInput() PromptInput {
	return PromptInput{
		Theme:          g.catalog.PickTheme(g.rng),
		CreateTarget:   g.catalog.PickCreateTarget(g.rng),
		Strategy:       g.catalog.PickStrategy(g.rng),
		Seed:           g.rng.IntN(1000),
		AvoidNumbers:   g.catalog.AvoidNumbers,
		PriorQuestions: slices.Clone(g.prior),
	}
}

func (g *LLMGenerator) remember(question string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prior = append(g.prior, question)
	if n := g.config.History; n > 0 && len(g.prior) > n {
		g.prior = g.prior[len(g.prior)-n:]
	}
}

func (g *LLMGenerator) fallback(category exercise.Category) *exercise.Exercise {
	g.mu.Lock()
	defer g.mu.Unlock()
	ex := g.local.Fallback(category)
	logging.Logger.WithFields(logrus.Fields{
		"requested": category,
		"question":  ex.Question,
	}).Debug("local exercise")
	return ex
}
