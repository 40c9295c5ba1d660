package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mates/internal/ui/theme"
)

// AccuracyBar renders "label ▰▰▰▱▱  60%" in width cells. The filled part
// is coloured by theme.AccuracyColor. Nothing attempted renders an empty bar
// with a dash instead of a percentage.
func AccuracyBar(label string, correct, attempted, width int) string {
	ratio := 0.0
	pct := "   -"
	if attempted > 0 {
		ratio = min(max(float64(correct)/float64(attempted), 0), 1)
		pct = fmt.Sprintf("%3d%%", int(ratio*100+0.5))
	}

	head := ""
	if label != "" {
		head = theme.Body.Render(label) + " "
	}
	cells := max(width-lipgloss.Width(head)-len(pct)-1, 4)
	filled := int(float64(cells)*ratio + 0.5)

	on := lipgloss.NewStyle().Foreground(theme.AccuracyColor(ratio))
	off := lipgloss.NewStyle().Foreground(theme.Border)
	return head +
		on.Render(strings.Repeat("▰", filled)) +
		off.Render(strings.Repeat("▱", cells-filled)) +
		" " + theme.Hint.Render(pct)
}
