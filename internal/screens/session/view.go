package session

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mates/internal/ui/components"
	"github.com/abhisek/mates/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.phase {
	case PhaseLoading:
		body = theme.Hint.Render("Preparando ejercicio...")
	case PhaseError:
		body = theme.Incorrect.Render(s.errMsg) + "\n\n" +
			theme.Hint.Render("Pulsa Enter para reintentar o Esc para volver al menú.")
	default:
		body = s.renderExercise(cw)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, s.renderInfoLine(cw), "", body))
}

// renderInfoLine shows the exercise category on the left and the run tally
// on the right.
func (s *SessionScreen) renderInfoLine(cw int) string {
	label := s.category.Label()
	if s.exercise != nil {
		label = s.exercise.Category.Label()
	}
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(label)

	sum := s.service.Summary()
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s %d/%d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			sum.Correct, sum.Attempted))

	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (s *SessionScreen) renderExercise(cw int) string {
	ex := s.exercise
	textWidth := cw - 6

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(textWidth).Render(ex.Question))
	if ex.Context != "" {
		lines = append(lines, "", theme.Quote.Width(textWidth).Render("«"+ex.Context+"»"))
	}
	if s.showHint && ex.Hint != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Gold).Width(textWidth).Render("💡 "+ex.Hint))
	}
	var accent color.Color
	if s.phase == PhaseFeedback && s.submission != nil {
		accent = theme.Error
		if s.submission.Result.Correct {
			accent = theme.Success
		}
	}
	card := components.Card(strings.Join(lines, "\n"), cw, accent)

	parts := []string{card, "", s.input.View()}
	if s.errMsg != "" {
		parts = append(parts, "", theme.Incorrect.Render(s.errMsg))
	}
	switch s.phase {
	case PhaseEvaluating:
		parts = append(parts, "", theme.Hint.Render("Corrigiendo..."))
	case PhaseFeedback:
		parts = append(parts, "", s.renderFeedback(cw))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (s *SessionScreen) renderFeedback(cw int) string {
	sub := s.submission
	res := sub.Result
	textWidth := cw - 2

	var lines []string
	if res.Correct {
		lines = append(lines, theme.Correct.Render("✅ ¡Muy bien!"))
	} else {
		lines = append(lines, theme.Incorrect.Render("🔎 Vamos a revisarlo"))
	}
	lines = append(lines, theme.Body.Width(textWidth).Render(res.Feedback))
	if res.Correction != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Secondary).Width(textWidth).
			Render("Solución sugerida: "+res.Correction))
	}

	out := sub.Outcome
	var notes []string
	if out.Awarded > 0 {
		notes = append(notes, theme.XP.Render(fmt.Sprintf("+%d XP", out.Awarded)))
	}
	if out.LeveledUp {
		notes = append(notes, theme.Level.Render(fmt.Sprintf("🎉 ¡Nivel %d!", out.Level)))
	}
	if out.StreakMilestone {
		notes = append(notes, theme.Streak.Render(fmt.Sprintf("🔥 ¡Racha de %d!", out.Streak)))
	}
	if len(notes) > 0 {
		lines = append(lines, "", strings.Join(notes, "   "))
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
}
