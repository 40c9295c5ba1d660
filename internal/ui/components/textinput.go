package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mates/internal/ui/theme"
)

// verdict is the mark shown after an answer is judged.
type verdict int

const (
	pending verdict = iota
	right
	wrong
)

// TextInput is a single-line answer field. Once submitted it ignores input
// and shows a ✓ or ✗ after the text.
type TextInput struct {
	field   textinput.Model
	verdict verdict
}

// NewTextInput returns a focused field. limit <= 0 leaves the length
// unbounded and width <= 0 the width unset.
func NewTextInput(placeholder string, limit, width int) TextInput {
	f := textinput.New()
	f.Prompt = "› "
	f.Placeholder = placeholder
	if limit > 0 {
		f.CharLimit = limit
	}
	if width > 0 {
		f.SetWidth(width)
	}
	f.Focus()
	return TextInput{field: f}
}

func (t TextInput) Init() tea.Cmd { return t.field.Focus() }

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Submitted() {
		return t, nil
	}
	var cmd tea.Cmd
	t.field, cmd = t.field.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	switch t.verdict {
	case right:
		return t.field.View() + lipgloss.NewStyle().Foreground(theme.Success).Render(" ✓")
	case wrong:
		return t.field.View() + lipgloss.NewStyle().Foreground(theme.Error).Render(" ✗")
	}
	return t.field.View()
}

func (t TextInput) Value() string { return t.field.Value() }

// SetValue replaces the text, e.g. to prefill a current value.
func (t *TextInput) SetValue(s string) { t.field.SetValue(s) }

// Submit freezes the field with the given verdict.
func (t *TextInput) Submit(correct bool) {
	t.verdict = wrong
	if correct {
		t.verdict = right
	}
	t.field.Blur()
}

func (t TextInput) Submitted() bool { return t.verdict != pending }
