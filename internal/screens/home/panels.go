package home

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mates/internal/gamification"
	"github.com/abhisek/mates/internal/screens/welcome"
	"github.com/abhisek/mates/internal/ui/layout"
	"github.com/abhisek/mates/internal/ui/theme"
)

// mood picks the robot face shown above the menu.
type mood int

const (
	calm mood = iota
	cheering
	sleeping
)

// cheerStreak is the streak from which the robot cheers.
const cheerStreak = 5

var faces = map[mood]struct {
	eyes, mouth string
	fg          color.Color
}{
	calm:     {"◉ ◉", " ◡ ", theme.Primary},
	cheering: {"★ ★", " ▿ ", theme.Gold},
	sleeping: {"- -", " ▽ ", theme.TextDim},
}

func moodFor(streak int, online bool) mood {
	switch {
	case !online:
		return sleeping
	case streak >= cheerStreak:
		return cheering
	}
	return calm
}

func robotFace(m mood) string {
	f := faces[m]
	art := strings.Join([]string{
		"┌─────┐",
		"│ " + f.eyes + " │",
		"│ " + f.mouth + " │",
		"│+−×÷ │",
		"└─────┘",
	}, "\n")
	if m == sleeping {
		art += "\n  z z"
	}
	return lipgloss.NewStyle().Foreground(f.fg).Render(art)
}

// statsBadge shows level, XP and streak. The roomy variant draws the XP
// bar inside a card.
func statsBadge(s gamification.State, compact bool) string {
	if compact {
		return fmt.Sprintf("%s  %s  %s",
			theme.Level.Render(fmt.Sprintf("Nv%d", s.Level)),
			theme.XP.Render(fmt.Sprintf("%dXP", s.XP)),
			theme.Streak.Render(fmt.Sprintf("🔥%d", s.Streak)))
	}
	line := strings.Join([]string{
		theme.Level.Render(fmt.Sprintf("NIVEL %d", s.Level)),
		layout.XPBar(s, 12),
		theme.Streak.Render(fmt.Sprintf("🔥 RACHA %d", s.Streak)),
	}, "  ")
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Sky).
		Padding(0, 1).
		Render(line)
}

func offlineNotice() string {
	return lipgloss.NewStyle().Foreground(theme.Accent).
		Render("⚠ Sin asistente: se practican ejercicios con solución conocida")
}

// menuPage stacks the sections centred in cw.
func menuPage(cw int, compact bool, sections ...string) string {
	if compact {
		return lipgloss.PlaceHorizontal(cw, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Center, sections...))
	}
	spaced := make([]string, 0, 2*len(sections))
	for i, s := range sections {
		if i > 0 {
			spaced = append(spaced, "")
		}
		spaced = append(spaced, s)
	}
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Center, spaced...))
}

func title(cw int, compact bool) string {
	if compact {
		return theme.XP.Render("M · A · T · E · S")
	}
	return welcome.Banner(cw)
}
