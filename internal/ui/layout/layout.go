// Package layout draws the chrome around every screen: a HUD with the
// learner's progress on top and key hints at the bottom.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mates/internal/gamification"
	"github.com/abhisek/mates/internal/ui/theme"
)

// Size is a terminal size in cells.
type Size struct {
	Width, Height int
}

var (
	// Minimum is the smallest terminal the app draws in.
	Minimum = Size{Width: 60, Height: 20}
	// Roomy is the size from which decorations are shown.
	Roomy = Size{Width: 90, Height: 28}
)

// ChromeHeight is the number of rows taken by the HUD and the footer.
const ChromeHeight = 6

// TooSmall reports whether s is below Minimum in either dimension.
func (s Size) TooSmall() bool {
	return s.Width < Minimum.Width || s.Height < Minimum.Height
}

// Narrow reports whether s is below Roomy in width.
func (s Size) Narrow() bool { return s.Width < Roomy.Width }

// Compact reports whether s is below Roomy in either dimension.
func (s Size) Compact() bool {
	return s.Narrow() || s.Height < Roomy.Height
}

// KeyHint is one "key description" pair of the footer.
type KeyHint struct {
	Key         string
	Description string
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// TooSmallNotice asks the learner to enlarge the terminal.
func TooSmallNotice(s Size) string {
	msg := fmt.Sprintf("¡La ventana es muy pequeña!\n\nAgrándala hasta al menos\n%d x %d\n\nAhora: %d x %d",
		Minimum.Width, Minimum.Height, s.Width, s.Height)
	return lipgloss.Place(s.Width, s.Height, lipgloss.Center, lipgloss.Center, theme.Body.Render(msg))
}

// XPBar shows the XP earned inside the current level on cells cells,
// followed by "in/span XP".
func XPBar(st gamification.State, cells int) string {
	in, span := st.LevelProgress()
	filled := 0
	if span > 0 {
		filled = min(max(in*cells/span, 0), cells)
	}
	return lipgloss.NewStyle().Foreground(theme.Gold).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", cells-filled)) +
		theme.Hint.UnsetItalic().Render(fmt.Sprintf(" %d/%d XP", in, span))
}

// Header is the HUD: app and screen title on the left, the learner's
// nickname, level, XP bar and streak on the right. Narrow terminals drop
// the XP bar.
func Header(title string, st gamification.State, s Size) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Mates")
	if title != "" {
		left += theme.Hint.UnsetItalic().Render(" · ") + theme.Body.Render(title)
	}

	var right []string
	if st.Nickname != "" {
		right = append(right, theme.Body.Bold(true).Render(st.Nickname))
	}
	right = append(right, theme.Level.UnsetBold().Render(fmt.Sprintf("Nv %d", st.Level)))
	if !s.Narrow() {
		right = append(right, XPBar(st, 10))
	}
	right = append(right, theme.Streak.Render(fmt.Sprintf("🔥 %d", st.Streak)))
	r := strings.Join(right, "  ")

	gap := max(s.Width-4-lipgloss.Width(left)-lipgloss.Width(r), 1)
	return bar.Width(s.Width).Render(left + strings.Repeat(" ", gap) + r)
}

// Footer lists the key hints.
func Footer(hints []KeyHint, s Size) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = theme.Body.Bold(true).Render(h.Key) + " " + theme.Hint.UnsetItalic().Render(h.Description)
	}
	return bar.Width(s.Width).Render("  " + strings.Join(parts, "   "))
}

// Frame stacks header, content and footer, padding the content to fill
// the rows between them.
func Frame(header, content, footer string, s Size) string {
	rows := max(s.Height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(s.Width).Height(rows).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
