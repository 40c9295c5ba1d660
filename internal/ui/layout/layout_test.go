package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/mates/internal/gamification"
)

func TestSize(t *testing.T) {
	assert.True(t, Size{Width: Minimum.Width - 1, Height: 40}.TooSmall())
	assert.False(t, Minimum.TooSmall())
	assert.True(t, Size{Width: 80, Height: 40}.Compact())
	assert.True(t, Size{Width: 120, Height: 24}.Compact())
	assert.False(t, Roomy.Compact())
}

func TestXPBar(t *testing.T) {
	bar := XPBar(gamification.State{XP: 250, Level: 3}, 10)
	assert.Contains(t, bar, "50/100 XP")
	assert.Equal(t, 5, strings.Count(bar, "█"))
}

func TestHeader(t *testing.T) {
	st := gamification.State{Nickname: "Leo", XP: 120, Level: 2, Streak: 4}

	wide := Header("Menú", st, Size{Width: 120, Height: 40})
	for _, want := range []string{"Mates", "Menú", "Leo", "Nv 2", "20/100 XP", "🔥 4"} {
		assert.Contains(t, wide, want)
	}

	narrow := Header("Menú", st, Size{Width: Roomy.Width - 1, Height: 40})
	assert.NotContains(t, narrow, "XP", "narrow header drops the XP bar")
}

func TestFrameFillsHeight(t *testing.T) {
	s := Size{Width: 70, Height: 30}
	hints := []KeyHint{{Key: "Enter", Description: "Elegir"}}
	footer := Footer(hints, s)
	assert.Contains(t, footer, "Enter")
	assert.Contains(t, footer, "Elegir")

	out := Frame(Header("", gamification.DefaultState(), s), "hola", footer, s)
	assert.Equal(t, s.Height, lipgloss.Height(out))
}

func TestTooSmallNotice(t *testing.T) {
	assert.Contains(t, TooSmallNotice(Size{Width: 40, Height: 10}), "Ahora: 40 x 10")
}
