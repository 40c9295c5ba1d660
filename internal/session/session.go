// Package session runs the practice loop shared by every front-end: fetch
// an exercise, judge the answer, update progress and log the attempt.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abhisek/mates/internal/exercise"
	"github.com/abhisek/mates/internal/gamification"
	"github.com/abhisek/mates/internal/logging"
	"github.com/abhisek/mates/internal/problemgen"
	"github.com/abhisek/mates/internal/store"
)

// ErrNoExercise is returned when an answer is submitted without an exercise.
var ErrNoExercise = errors.New("no exercise to answer")

// Evaluator judges a learner's answer.
type Evaluator interface {
	Evaluate(ctx context.Context, ex *exercise.Exercise, answer string) (*exercise.EvaluationResult, error)
}

// AnswerRecorder appends evaluated answers to the event log.
type AnswerRecorder interface {
	AppendAnswer(ctx context.Context, data store.AnswerEventData) error
}

// Submission is the full response to one submitted answer.
type Submission struct {
	Exercise *exercise.Exercise         `json:"exercise"`
	Answer   string                     `json:"answer"`
	Result   *exercise.EvaluationResult `json:"result"`
	Outcome  gamification.Outcome       `json:"outcome"`
	Progress gamification.State         `json:"progress"`
}

// Service coordinates generation, evaluation and progress tracking. It is
// safe for concurrent use.
type Service struct {
	gen      problemgen.Generator
	eval     Evaluator
	tracker  *gamification.Tracker
	recorder AnswerRecorder // nil disables the answer log

	mu      sync.Mutex
	current *exercise.Exercise
	tally   map[exercise.Category]*CategoryResult
	order   []exercise.Category
	started time.Time
	now     func() time.Time
}

// NewService creates a practice session service.
func NewService(gen problemgen.Generator, eval Evaluator, tracker *gamification.Tracker, recorder AnswerRecorder) *Service {
	return &Service{
		gen:      gen,
		eval:     eval,
		tracker:  tracker,
		recorder: recorder,
		tally:    make(map[exercise.Category]*CategoryResult),
		started:  time.Now(),
		now:      time.Now,
	}
}

// Next generates an exercise for category and makes it the current one.
func (s *Service) Next(ctx context.Context, category exercise.Category) (*exercise.Exercise, error) {
	ex, err := s.gen.Generate(ctx, category)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = ex
	s.mu.Unlock()

	logging.FromContext(ctx).WithField("category", ex.Category).
		WithField("origin", ex.Origin).
		Debug("exercise ready")
	return ex, nil
}

// Current returns the exercise most recently produced by Next, or nil.
func (s *Service) Current() *exercise.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Progress returns the learner's current progress.
func (s *Service) Progress() gamification.State {
	return s.tracker.State()
}

// Submit judges answer for ex (the current exercise when ex is nil), updates
// the learner's progress and logs the attempt. Fallback results reset the
// streak but are neither counted toward the run nor logged.
func (s *Service) Submit(ctx context.Context, ex *exercise.Exercise, answer string) (*Submission, error) {
	if ex == nil {
		ex = s.Current()
	}
	if ex == nil {
		return nil, ErrNoExercise
	}

	res, err := s.eval.Evaluate(ctx, ex, answer)
	if err != nil {
		return nil, err
	}

	outcome, err := s.tracker.Record(ctx, res)
	if err != nil {
		return nil, err
	}

	if res.Source != exercise.SourceFallback {
		s.count(ex.Category, res.Correct)
		s.recordAnswer(ctx, ex, answer, res)
	}

	return &Submission{
		Exercise: ex,
		Answer:   answer,
		Result:   res,
		Outcome:  outcome,
		Progress: s.tracker.State(),
	}, nil
}

func (s *Service) count(category exercise.Category, correct bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cr, ok := s.tally[category]
	if !ok {
		cr = &CategoryResult{Category: category, Label: category.Label()}
		s.tally[category] = cr
		s.order = append(s.order, category)
	}
	cr.Record(correct)
}

// recordAnswer appends the attempt to the event log. Failures are logged
// and never fail the submission.
func (s *Service) recordAnswer(ctx context.Context, ex *exercise.Exercise, answer string, res *exercise.EvaluationResult) {
	if s.recorder == nil {
		return
	}
	err := s.recorder.AppendAnswer(context.WithoutCancel(ctx), store.AnswerEventData{
		ExerciseID: ex.ID.String(),
		Category:   string(ex.Category),
		Operation:  string(ex.Operation),
		Origin:     string(ex.Origin),
		Question:   ex.Question,
		Answer:     answer,
		Expected:   ex.Answer,
		Correct:    res.Correct,
		Source:     string(res.Source),
		Feedback:   res.Feedback,
	})
	if err != nil {
		logging.FromContext(ctx).WithError(err).Warn("failed to record answer event")
	}
}
