package gamification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/mates/internal/exercise"
	"github.com/abhisek/mates/internal/logging"
	"github.com/abhisek/mates/internal/store"
)

// KVKey is the key the progress document is stored under.
const KVKey = "mates_gamification"

// ErrEmptyNickname is returned when a blank nickname is set.
var ErrEmptyNickname = errors.New("empty nickname")

// Tracker owns the learner's State. Every mutation is persisted before it
// becomes visible; a failed write leaves the previous state in place.
type Tracker struct {
	kv store.KVStore

	mu    sync.Mutex
	state State
}

// NewTracker creates a Tracker with default state. Call Load to read the
// persisted document.
func NewTracker(kv store.KVStore) *Tracker {
	return &Tracker{kv: kv, state: DefaultState()}
}

// Load reads the persisted state. A missing document yields the defaults; a
// corrupt one is logged and replaced by the defaults.
func (t *Tracker) Load(ctx context.Context) error {
	data, ok, err := t.kv.Get(ctx, KVKey)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	state := DefaultState()
	if ok {
		if err := json.Unmarshal(data, &state); err != nil {
			logging.FromContext(ctx).WithError(err).Warn("corrupt progress document, starting fresh")
			state = DefaultState()
		}
	}

	t.mu.Lock()
	t.state = state.normalized()
	t.mu.Unlock()
	return nil
}

// State returns a copy of the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// SetNickname stores the learner's display name, trimmed and cut to
// MaxNicknameRunes.
func (t *Tracker) SetNickname(ctx context.Context, name string) (State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return State{}, ErrEmptyNickname
	}
	if r := []rune(name); len(r) > MaxNicknameRunes {
		name = strings.TrimSpace(string(r[:MaxNicknameRunes]))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	next := t.state
	next.Nickname = name
	if err := t.commit(ctx, next); err != nil {
		return State{}, err
	}
	return t.state, nil
}

// Record applies an evaluation result. Correct answers earn XPPerCorrect and
// extend the streak. Anything else resets the streak, including fallback
// results from a failed evaluation.
func (t *Tracker) Record(ctx context.Context, res *exercise.EvaluationResult) (Outcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if res == nil {
		return Outcome{
			PreviousLevel: t.state.Level,
			Level:         t.state.Level,
			Streak:        t.state.Streak,
		}, nil
	}

	next := t.state
	awarded := 0
	if res.Correct && res.Source != exercise.SourceFallback {
		awarded = XPPerCorrect
		next.XP += awarded
		next.Streak++
	} else {
		next.Streak = 0
	}
	next = next.normalized()

	out := Outcome{
		Awarded:         awarded,
		PreviousLevel:   t.state.Level,
		Level:           next.Level,
		LeveledUp:       next.Level > t.state.Level,
		Streak:          next.Streak,
		StreakMilestone: res.Correct && StreakMilestone(next.Streak),
	}
	if err := t.commit(ctx, next); err != nil {
		return Outcome{}, err
	}
	return out, nil
}

// Reset clears experience and streak. The nickname is kept.
func (t *Tracker) Reset(ctx context.Context) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	next := DefaultState()
	next.Nickname = t.state.Nickname
	if err := t.commit(ctx, next); err != nil {
		return State{}, err
	}
	return t.state, nil
}

// commit persists next and makes it current. Callers hold t.mu.
func (t *Tracker) commit(ctx context.Context, next State) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := t.kv.Put(ctx, KVKey, data); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	t.state = next
	return nil
}
