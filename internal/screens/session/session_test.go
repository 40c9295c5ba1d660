package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mates/internal/evaluate"
	"github.com/abhisek/mates/internal/exercise"
	"github.com/abhisek/mates/internal/gamification"
	"github.com/abhisek/mates/internal/problemgen"
	"github.com/abhisek/mates/internal/router"
	sess "github.com/abhisek/mates/internal/session"
	"github.com/abhisek/mates/internal/store"
)

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, exercise.Category) (*exercise.Exercise, error) {
	return nil, errors.New("boom")
}

func newService(t *testing.T, gen problemgen.Generator) *sess.Service {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	tracker := gamification.NewTracker(st.KV())
	require.NoError(t, tracker.Load(context.Background()))

	if gen == nil {
		gen = problemgen.New(nil, nil, rand.New(rand.NewPCG(3, 4)), problemgen.DefaultConfig())
	}
	return sess.NewService(gen, evaluate.NewService(nil, evaluate.DefaultConfig()), tracker, st.EventRepo())
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// ready runs the screen's Init and delivers the generated exercise.
func ready(t *testing.T, s *SessionScreen) *SessionScreen {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
	require.Equal(t, PhaseAnswering, s.Phase())
	return s
}

func typeAnswer(s *SessionScreen, answer string) {
	for _, r := range answer {
		s.Update(keyPress(r))
	}
}

func TestCorrectAnswerShowsFeedback(t *testing.T) {
	s := ready(t, New(newService(t, nil), exercise.CategoryArithmetic))
	answer := s.exercise.Answer

	typeAnswer(s, answer)
	assert.Equal(t, answer, s.input.Value())

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, PhaseEvaluating, s.Phase())

	s.Update(cmd())
	require.Equal(t, PhaseFeedback, s.Phase())
	assert.True(t, s.submission.Result.Correct)

	view := s.View(100, 40)
	assert.Contains(t, view, "¡Muy bien!")
	assert.Contains(t, view, "+10 XP")
}

func TestWrongAnswerShowsSolution(t *testing.T) {
	s := ready(t, New(newService(t, nil), exercise.CategoryArithmetic))

	typeAnswer(s, "0")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	s.Update(cmd())

	require.Equal(t, PhaseFeedback, s.Phase())
	view := s.View(100, 40)
	assert.Contains(t, view, "Vamos a revisarlo")
	assert.Contains(t, view, "Solución sugerida")
}

func TestBlankAnswerIgnored(t *testing.T) {
	s := ready(t, New(newService(t, nil), exercise.CategoryArithmetic))

	typeAnswer(s, "  ")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, PhaseAnswering, s.Phase())
}

func TestHintToggle(t *testing.T) {
	s := ready(t, New(newService(t, nil), exercise.CategoryArithmetic))
	require.NotEmpty(t, s.exercise.Hint)

	assert.NotContains(t, s.View(100, 40), s.exercise.Hint)
	s.Update(tea.KeyPressMsg{Code: 'h', Mod: tea.ModCtrl})
	assert.True(t, s.showHint)
	assert.Empty(t, s.input.Value(), "ctrl+h must not reach the input")
}

func TestAnyKeyAfterFeedbackLoadsNext(t *testing.T) {
	s := ready(t, New(newService(t, nil), exercise.CategoryArithmetic))
	first := s.exercise

	typeAnswer(s, first.Answer)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	s.Update(cmd())

	_, cmd = s.Update(keyPress('x'))
	require.NotNil(t, cmd)
	assert.Equal(t, PhaseLoading, s.Phase())

	s.Update(cmd())
	assert.Equal(t, PhaseAnswering, s.Phase())
	assert.NotEqual(t, first.ID, s.exercise.ID)
	assert.Empty(t, s.input.Value())
	assert.False(t, s.input.Submitted())
}

func TestEscReturnsToMenu(t *testing.T) {
	s := ready(t, New(newService(t, nil), exercise.CategoryArithmetic))

	_, cmd := s.Update(specialKey(tea.KeyEscape))
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

func TestGenerationErrorCanRetry(t *testing.T) {
	s := New(newService(t, failingGenerator{}), exercise.CategorySolve)
	s.Update(s.Init()())

	require.Equal(t, PhaseError, s.Phase())
	assert.Contains(t, s.View(100, 40), "No he podido preparar")

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, PhaseLoading, s.Phase())
}

func TestKeyHintsFollowPhase(t *testing.T) {
	s := ready(t, New(newService(t, nil), exercise.CategoryArithmetic))
	assert.Equal(t, "Enter", s.KeyHints()[0].Key)

	typeAnswer(s, s.exercise.Answer)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	s.Update(cmd())
	assert.Equal(t, "Siguiente", s.KeyHints()[0].Description)
}
