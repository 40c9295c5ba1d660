// Package theme holds the colours and shared styles of the terminal UI.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Chalkboard palette.
var (
	Primary   = lipgloss.Color("#8B5CF6") // violet: titles, frame, selection
	Secondary = lipgloss.Color("#14B8A6") // teal: categories, contexts
	Accent    = lipgloss.Color("#F97316") // orange: streaks
	Gold      = lipgloss.Color("#FACC15") // XP and hints
	Sky       = lipgloss.Color("#22D3EE") // levels
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")

	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#94A3B8")
	BgDark  = lipgloss.Color("#0F172A")
	BgCard  = lipgloss.Color("#1E293B")
	Border  = lipgloss.Color("#334155")
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body     = lipgloss.NewStyle().Foreground(Text)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Quote    = lipgloss.NewStyle().Foreground(Secondary).Italic(true)

	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Streak    = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	XP        = lipgloss.NewStyle().Foreground(Gold).Bold(true)
	Level     = lipgloss.NewStyle().Foreground(Sky).Bold(true)
)

// AccuracyColor grades a 0..1 success ratio: green from 80%, orange from
// 50%, red below.
func AccuracyColor(ratio float64) color.Color {
	switch {
	case ratio >= 0.8:
		return Success
	case ratio >= 0.5:
		return Accent
	default:
		return Error
	}
}
