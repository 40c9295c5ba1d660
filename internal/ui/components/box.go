package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mates/internal/ui/theme"
)

// ContentWidth is the inner width shared by every boxed section of a screen
// so cards line up: the frame minus border and padding, clamped to 20..64.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 64)
}

// Frame draws the double violet border around a whole screen body and
// centres content inside it.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card draws a rounded box cw columns wide. A nil accent uses the neutral
// border colour.
func Card(content string, cw int, accent color.Color) string {
	if accent == nil {
		accent = theme.Border
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Width(cw-2).
		Padding(1, 2).
		Align(lipgloss.Center).
		Render(content)
}
