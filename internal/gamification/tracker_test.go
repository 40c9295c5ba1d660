package gamification

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mates/internal/exercise"
	"github.com/abhisek/mates/internal/store"
)

func openKV(t *testing.T) store.KVStore {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.KV()
}

func loadedTracker(t *testing.T, kv store.KVStore) *Tracker {
	t.Helper()
	tr := NewTracker(kv)
	require.NoError(t, tr.Load(context.Background()))
	return tr
}

func persisted(t *testing.T, kv store.KVStore) State {
	t.Helper()
	data, ok, err := kv.Get(context.Background(), KVKey)
	require.NoError(t, err)
	require.True(t, ok, "progress not persisted")
	var s State
	require.NoError(t, json.Unmarshal(data, &s))
	return s
}

var (
	correct   = &exercise.EvaluationResult{Correct: true, Source: exercise.SourceGroundTruth}
	incorrect = &exercise.EvaluationResult{Correct: false, Source: exercise.SourceModel}
	fallback  = &exercise.EvaluationResult{Correct: false, Source: exercise.SourceFallback}
)

func TestLoad_Missing(t *testing.T) {
	tr := loadedTracker(t, openKV(t))
	assert.Equal(t, State{Level: 1}, tr.State())
}

func TestLoad_Existing(t *testing.T) {
	kv := openKV(t)
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, KVKey, []byte(`{"nickname":"Lucía","xp":250,"level":1,"streak":4}`)))

	tr := loadedTracker(t, kv)
	assert.Equal(t, State{Nickname: "Lucía", XP: 250, Level: 3, Streak: 4}, tr.State(), "level is recomputed")
}

func TestLoad_Corrupt(t *testing.T) {
	kv := openKV(t)
	require.NoError(t, kv.Put(context.Background(), KVKey, []byte(`{"xp":`)))

	tr := loadedTracker(t, kv)
	assert.Equal(t, DefaultState(), tr.State())
}

func TestLoad_Negative(t *testing.T) {
	kv := openKV(t)
	require.NoError(t, kv.Put(context.Background(), KVKey, []byte(`{"xp":-40,"streak":-2}`)))

	tr := loadedTracker(t, kv)
	assert.Equal(t, State{Level: 1}, tr.State())
}

func TestRecord_Correct(t *testing.T) {
	kv := openKV(t)
	tr := loadedTracker(t, kv)

	out, err := tr.Record(context.Background(), correct)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Awarded: 10, PreviousLevel: 1, Level: 1, Streak: 1}, out)
	assert.Equal(t, State{XP: 10, Level: 1, Streak: 1}, persisted(t, kv))
}

func TestRecord_IncorrectResetsStreak(t *testing.T) {
	tr := loadedTracker(t, openKV(t))
	ctx := context.Background()

	for range 3 {
		_, err := tr.Record(ctx, correct)
		require.NoError(t, err)
	}
	out, err := tr.Record(ctx, incorrect)
	require.NoError(t, err)

	assert.Equal(t, 0, out.Awarded)
	assert.Equal(t, 0, out.Streak)
	assert.Equal(t, 30, tr.State().XP, "wrong answers keep earned xp")
}

func TestRecord_FallbackResetsStreak(t *testing.T) {
	kv := openKV(t)
	tr := loadedTracker(t, kv)
	ctx := context.Background()

	for range 3 {
		_, err := tr.Record(ctx, correct)
		require.NoError(t, err)
	}

	out, err := tr.Record(ctx, fallback)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Streak)
	assert.Equal(t, 0, out.Awarded)
	assert.False(t, out.StreakMilestone)
	assert.Equal(t, State{XP: 30, Level: 1, Streak: 0}, tr.State())
	assert.Equal(t, tr.State(), persisted(t, kv))
}

func TestRecord_LevelUp(t *testing.T) {
	kv := openKV(t)
	require.NoError(t, kv.Put(context.Background(), KVKey, []byte(`{"xp":95}`)))
	tr := loadedTracker(t, kv)

	out, err := tr.Record(context.Background(), correct)
	require.NoError(t, err)
	assert.True(t, out.LeveledUp)
	assert.Equal(t, 1, out.PreviousLevel)
	assert.Equal(t, 2, out.Level)
	assert.Equal(t, 2, persisted(t, kv).Level)
}

func TestRecord_StreakMilestones(t *testing.T) {
	tr := loadedTracker(t, openKV(t))
	ctx := context.Background()

	var milestones []int
	for range 12 {
		out, err := tr.Record(ctx, correct)
		require.NoError(t, err)
		if out.StreakMilestone {
			milestones = append(milestones, out.Streak)
		}
	}
	assert.Equal(t, []int{5, 10}, milestones)
}

func TestSetNickname(t *testing.T) {
	kv := openKV(t)
	tr := loadedTracker(t, kv)
	ctx := context.Background()

	s, err := tr.SetNickname(ctx, "  Leo  ")
	require.NoError(t, err)
	assert.Equal(t, "Leo", s.Nickname)
	assert.Equal(t, "Leo", persisted(t, kv).Nickname)

	s, err = tr.SetNickname(ctx, strings.Repeat("ñ", 30))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ñ", MaxNicknameRunes), s.Nickname)

	_, err = tr.SetNickname(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyNickname)
}

func TestReset(t *testing.T) {
	kv := openKV(t)
	tr := loadedTracker(t, kv)
	ctx := context.Background()

	_, err := tr.SetNickname(ctx, "Leo")
	require.NoError(t, err)
	for range 34 {
		_, err = tr.Record(ctx, correct)
		require.NoError(t, err)
	}
	require.Equal(t, 340, tr.State().XP)

	s, err := tr.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, State{Nickname: "Leo", Level: 1}, s)
	assert.Equal(t, s, persisted(t, kv))
}

type failingKV struct{ store.KVStore }

func (failingKV) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestRecord_PersistFailureKeepsState(t *testing.T) {
	tr := loadedTracker(t, failingKV{openKV(t)})

	_, err := tr.Record(context.Background(), correct)
	require.Error(t, err)
	assert.Equal(t, DefaultState(), tr.State())
}
