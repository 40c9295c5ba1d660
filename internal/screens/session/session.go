// Package session is the practice screen: one exercise at a time for a
// chosen category, with hint, answer input and feedback.
package session

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mates/internal/evaluate"
	"github.com/abhisek/mates/internal/exercise"
	"github.com/abhisek/mates/internal/logging"
	"github.com/abhisek/mates/internal/router"
	"github.com/abhisek/mates/internal/screen"
	sess "github.com/abhisek/mates/internal/session"
	"github.com/abhisek/mates/internal/ui/components"
	"github.com/abhisek/mates/internal/ui/layout"
)

// Phase is the practice screen's state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseAnswering
	PhaseEvaluating
	PhaseFeedback
	PhaseError
)

const answerCharLimit = 500

// SessionScreen implements screen.Screen for the practice loop.
type SessionScreen struct {
	service  *sess.Service
	category exercise.Category

	phase      Phase
	exercise   *exercise.Exercise
	submission *sess.Submission
	input      components.TextInput
	showHint   bool
	errMsg     string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.Hinter = (*SessionScreen)(nil)

// New creates a practice screen for category. CategoryRandom picks a new
// category for every exercise.
func New(svc *sess.Service, category exercise.Category) *SessionScreen {
	return &SessionScreen{
		service:  svc,
		category: category,
		input:    newAnswerInput(),
	}
}

func newAnswerInput() components.TextInput {
	return components.NewTextInput("Escribe tu respuesta...", answerCharLimit, 50)
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.generate()
}

func (s *SessionScreen) Title() string {
	return s.category.Label()
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case PhaseAnswering:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Responder"}}
		if s.exercise != nil && s.exercise.Hint != "" {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+H", Description: "Pista"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Menú"})
	case PhaseFeedback:
		return []layout.KeyHint{
			{Key: "cualquier tecla", Description: "Siguiente"},
			{Key: "Esc", Description: "Menú"},
		}
	case PhaseError:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Reintentar"},
			{Key: "Esc", Description: "Menú"},
		}
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Menú"}}
	}
}

// Phase returns the current phase.
func (s *SessionScreen) Phase() Phase {
	return s.phase
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exerciseReadyMsg:
		return s.handleExerciseReady(msg)
	case evaluatedMsg:
		return s.handleEvaluated(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == PhaseAnswering {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleExerciseReady(msg exerciseReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.phase = PhaseError
		s.errMsg = "No he podido preparar un ejercicio."
		return s, nil
	}
	s.exercise = msg.Exercise
	s.submission = nil
	s.showHint = false
	s.input = newAnswerInput()
	s.phase = PhaseAnswering
	return s, s.input.Init()
}

func (s *SessionScreen) handleEvaluated(msg evaluatedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.phase = PhaseAnswering
		if errors.Is(msg.Err, evaluate.ErrEmptyAnswer) {
			s.errMsg = "Escribe tu respuesta, por favor."
		} else {
			s.errMsg = "Algo ha fallado al corregir. Inténtalo de nuevo."
		}
		return s, nil
	}
	s.submission = msg.Submission
	s.input.Submit(msg.Submission.Result.Correct)
	s.phase = PhaseFeedback
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case PhaseLoading, PhaseEvaluating:
		if key == "esc" {
			return s, router.Back()
		}
		return s, nil

	case PhaseError:
		switch key {
		case "esc":
			return s, router.Back()
		case "enter":
			return s, s.generate()
		}
		return s, nil

	case PhaseFeedback:
		if key == "esc" {
			return s, router.Back()
		}
		return s, s.generate()
	}

	switch key {
	case "esc":
		return s, router.Back()
	case "ctrl+h":
		// ctrl+h is backspace for the text input; keep it for the hint.
		s.showHint = !s.showHint
		return s, nil
	case "enter":
		answer := s.input.Value()
		if strings.TrimSpace(answer) == "" {
			return s, nil
		}
		s.phase = PhaseEvaluating
		s.errMsg = ""
		return s, s.submit(s.exercise, answer)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// generate requests the next exercise asynchronously.
func (s *SessionScreen) generate() tea.Cmd {
	s.phase = PhaseLoading
	s.errMsg = ""
	svc, category := s.service, s.category
	return func() tea.Msg {
		ctx := context.Background()
		ex, err := svc.Next(ctx, category)
		if err != nil {
			logging.FromContext(ctx).WithError(err).WithField("category", category).Error("exercise generation failed")
		}
		return exerciseReadyMsg{Exercise: ex, Err: err}
	}
}

func (s *SessionScreen) submit(ex *exercise.Exercise, answer string) tea.Cmd {
	svc := s.service
	return func() tea.Msg {
		ctx := context.Background()
		sub, err := svc.Submit(ctx, ex, answer)
		if err != nil && !errors.Is(err, evaluate.ErrEmptyAnswer) {
			logging.FromContext(ctx).WithError(err).Error("answer evaluation failed")
		}
		return evaluatedMsg{Submission: sub, Err: err}
	}
}
