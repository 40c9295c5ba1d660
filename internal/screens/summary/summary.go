// Package summary shows the tally of the current run.
package summary

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/mates/internal/router"
	"github.com/abhisek/mates/internal/screen"
	"github.com/abhisek/mates/internal/session"
	"github.com/abhisek/mates/internal/ui/components"
	"github.com/abhisek/mates/internal/ui/layout"
	"github.com/abhisek/mates/internal/ui/theme"
)

var back = key.NewBinding(key.WithKeys("enter", "esc"))

// SummaryScreen is a read-only view of a session.Summary.
type SummaryScreen struct {
	sum *session.Summary
}

var (
	_ screen.Screen = (*SummaryScreen)(nil)
	_ screen.Hinter = (*SummaryScreen)(nil)
)

func New(sum *session.Summary) *SummaryScreen {
	return &SummaryScreen{sum: sum}
}

func (s *SummaryScreen) Init() tea.Cmd  { return nil }
func (s *SummaryScreen) Title() string { return "Resumen" }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Volver"}, {Key: "Esc", Description: "Menú"}}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if press, ok := msg.(tea.KeyPressMsg); ok && key.Matches(press, back) {
		return s, router.Back()
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	if s.sum == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	parts := []string{
		theme.Title.Render("¡Buen trabajo!"),
		theme.Subtitle.Render(fmt.Sprintf("Tiempo: %d:%02d",
			int(s.sum.Duration.Minutes()), int(s.sum.Duration.Seconds())%60)),
	}
	if s.sum.Attempted == 0 {
		parts = append(parts, theme.Hint.Render("Todavía no has respondido ningún ejercicio."))
	} else {
		parts = append(parts,
			theme.Body.Render(fmt.Sprintf("Ejercicios: %d     Aciertos: %d     Precisión: %.0f%%",
				s.sum.Attempted, s.sum.Correct, s.sum.Accuracy*100)),
			s.breakdown(cw),
		)
	}

	out := lipgloss.JoinVertical(lipgloss.Center, spaced(parts)...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, out)
}

// breakdown tabulates the run per category with an accuracy bar each.
func (s *SummaryScreen) breakdown(cw int) string {
	barWidth := max(cw-44, 12)
	rows := make([][]string, len(s.sum.Categories))
	for i, cr := range s.sum.Categories {
		rows[i] = []string{
			cr.Label,
			fmt.Sprintf("%d/%d", cr.Correct, cr.Attempted),
			components.AccuracyBar("", cr.Correct, cr.Attempted, barWidth),
		}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("Tipo de ejercicio", "Aciertos", "Precisión").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			st := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return st.Foreground(theme.TextDim).Bold(true)
			}
			if col == 1 {
				return st.Align(lipgloss.Right)
			}
			return st
		}).
		String()
}

// spaced puts a blank line between parts.
func spaced(parts []string) []string {
	out := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, p)
	}
	return out
}
