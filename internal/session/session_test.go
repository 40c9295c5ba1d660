package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mates/internal/evaluate"
	"github.com/abhisek/mates/internal/exercise"
	"github.com/abhisek/mates/internal/gamification"
	"github.com/abhisek/mates/internal/problemgen"
	"github.com/abhisek/mates/internal/store"
)

type testEnv struct {
	svc    *Service
	events store.EventRepo
}

func newTestEnv(t *testing.T, recorder AnswerRecorder) *testEnv {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	tracker := gamification.NewTracker(st.KV())
	require.NoError(t, tracker.Load(context.Background()))

	if recorder == nil {
		recorder = st.EventRepo()
	}
	gen := problemgen.New(nil, nil, rand.New(rand.NewPCG(1, 2)), problemgen.DefaultConfig())
	svc := NewService(gen, evaluate.NewService(nil, evaluate.DefaultConfig()), tracker, recorder)
	return &testEnv{svc: svc, events: st.EventRepo()}
}

func TestNextSetsCurrent(t *testing.T) {
	env := newTestEnv(t, nil)
	assert.Nil(t, env.svc.Current())

	ex, err := env.svc.Next(context.Background(), exercise.CategoryArithmetic)
	require.NoError(t, err)
	assert.Same(t, ex, env.svc.Current())
	assert.True(t, ex.HasGroundTruth())
}

func TestNextUnknownCategory(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.svc.Next(context.Background(), exercise.Category("geometry"))
	assert.ErrorIs(t, err, exercise.ErrUnknownCategory)
}

func TestSubmitCorrect(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	ex, err := env.svc.Next(ctx, exercise.CategoryArithmetic)
	require.NoError(t, err)

	sub, err := env.svc.Submit(ctx, nil, ex.Answer)
	require.NoError(t, err)
	assert.True(t, sub.Result.Correct)
	assert.Equal(t, exercise.SourceGroundTruth, sub.Result.Source)
	assert.Equal(t, gamification.XPPerCorrect, sub.Outcome.Awarded)
	assert.Equal(t, 10, sub.Progress.XP)
	assert.Equal(t, 1, sub.Progress.Streak)

	events, err := env.events.QueryAnswers(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ex.ID.String(), events[0].ExerciseID)
	assert.Equal(t, ex.Answer, events[0].Expected)
	assert.True(t, events[0].Correct)
}

func TestSubmitWrongResetsStreak(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	ex, err := env.svc.Next(ctx, exercise.CategoryArithmetic)
	require.NoError(t, err)
	_, err = env.svc.Submit(ctx, ex, ex.Answer)
	require.NoError(t, err)

	sub, err := env.svc.Submit(ctx, ex, "abc")
	require.NoError(t, err)
	assert.False(t, sub.Result.Correct)
	assert.Equal(t, ex.Answer, sub.Result.Correction)
	assert.Equal(t, 0, sub.Progress.Streak)
	assert.Equal(t, 10, sub.Progress.XP)
}

func TestSubmitWithoutExercise(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.svc.Submit(context.Background(), nil, "42")
	assert.ErrorIs(t, err, ErrNoExercise)
}

func TestSubmitEmptyAnswer(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	ex, err := env.svc.Next(ctx, exercise.CategoryArithmetic)
	require.NoError(t, err)

	_, err = env.svc.Submit(ctx, ex, "  ")
	assert.ErrorIs(t, err, evaluate.ErrEmptyAnswer)
	assert.Zero(t, env.svc.Summary().Attempted)
}

func TestSubmitFallbackResetsStreakOnly(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	ex, err := env.svc.Next(ctx, exercise.CategoryArithmetic)
	require.NoError(t, err)
	_, err = env.svc.Submit(ctx, ex, ex.Answer)
	require.NoError(t, err)

	open := &exercise.Exercise{
		Category: exercise.CategorySolve,
		Question: "Un tren lleva 240 pasajeros en 6 vagones. ¿Cuántos van en cada vagón?",
		Origin:   exercise.OriginModel,
	}
	sub, err := env.svc.Submit(ctx, open, "40")
	require.NoError(t, err)
	assert.Equal(t, exercise.SourceFallback, sub.Result.Source)
	assert.Equal(t, gamification.State{XP: 10, Level: 1, Streak: 0}, sub.Progress)
	assert.Equal(t, 1, env.svc.Summary().Attempted)

	events, err := env.events.QueryAnswers(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

type failingRecorder struct{}

func (failingRecorder) AppendAnswer(context.Context, store.AnswerEventData) error {
	return errors.New("database is locked")
}

func TestSubmitRecorderFailureIsIgnored(t *testing.T) {
	env := newTestEnv(t, failingRecorder{})
	ctx := context.Background()

	ex, err := env.svc.Next(ctx, exercise.CategoryArithmetic)
	require.NoError(t, err)

	sub, err := env.svc.Submit(ctx, ex, ex.Answer)
	require.NoError(t, err)
	assert.True(t, sub.Result.Correct)
}

func TestSummary(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	answers := []struct {
		category exercise.Category
		right    bool
	}{
		{exercise.CategoryArithmetic, true},
		{exercise.CategoryArithmetic, false},
		{exercise.CategoryMultiples, true},
		{exercise.CategoryArithmetic, true},
	}
	for _, a := range answers {
		ex, err := env.svc.Next(ctx, a.category)
		require.NoError(t, err)
		answer := ex.Answer
		if !a.right {
			answer = "no lo sé"
		}
		_, err = env.svc.Submit(ctx, ex, answer)
		require.NoError(t, err)
	}

	sum := env.svc.Summary()
	assert.Equal(t, 4, sum.Attempted)
	assert.Equal(t, 3, sum.Correct)
	assert.InDelta(t, 0.75, sum.Accuracy, 1e-9)
	require.Len(t, sum.Categories, 2)
	assert.Equal(t, exercise.CategoryArithmetic, sum.Categories[0].Category)
	assert.Equal(t, 3, sum.Categories[0].Attempted)
	assert.Equal(t, 2, sum.Categories[0].Correct)
	assert.Equal(t, exercise.CategoryMultiples, sum.Categories[1].Category)
	assert.Equal(t, "Múltiplos y divisores", sum.Categories[1].Label)
}
