// Package nickname asks the learner for the name shown in the HUD.
package nickname

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mates/internal/gamification"
	"github.com/abhisek/mates/internal/logging"
	"github.com/abhisek/mates/internal/router"
	"github.com/abhisek/mates/internal/screen"
	"github.com/abhisek/mates/internal/ui/components"
	"github.com/abhisek/mates/internal/ui/layout"
	"github.com/abhisek/mates/internal/ui/theme"
)

type savedMsg struct {
	err error
}

// NicknameScreen edits the learner's nickname. When next is nil the
// screen pops itself after saving, otherwise it is replaced by next().
type NicknameScreen struct {
	tracker *gamification.Tracker
	next    func() screen.Screen
	input   components.TextInput
	saving  bool
	errMsg  string
}

var _ screen.Screen = (*NicknameScreen)(nil)
var _ screen.Hinter = (*NicknameScreen)(nil)

// New creates a NicknameScreen prefilled with the current nickname.
func New(tracker *gamification.Tracker, next func() screen.Screen) *NicknameScreen {
	input := components.NewTextInput("Tu apodo", gamification.MaxNicknameRunes, 30)
	input.SetValue(tracker.State().Nickname)
	return &NicknameScreen{tracker: tracker, next: next, input: input}
}

func (n *NicknameScreen) Init() tea.Cmd {
	return n.input.Init()
}

func (n *NicknameScreen) Title() string {
	return "Apodo"
}

func (n *NicknameScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Guardar"}}
	if n.next == nil {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Volver"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Salir"})
}

func (n *NicknameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		n.saving = false
		if msg.err != nil {
			if errors.Is(msg.err, gamification.ErrEmptyNickname) {
				n.errMsg = "Escribe un apodo para empezar."
			} else {
				n.errMsg = "No se ha podido guardar el apodo."
			}
			return n, nil
		}
		if n.next == nil {
			return n, router.Back()
		}
		nextScreen := n.next()
		return n, router.Swap(nextScreen)

	case tea.KeyMsg:
		if n.saving {
			return n, nil
		}
		switch msg.String() {
		case "enter":
			n.saving = true
			n.errMsg = ""
			return n, n.save(n.input.Value())
		case "esc":
			if n.next == nil {
				return n, router.Back()
			}
			return n, nil
		}
	}

	var cmd tea.Cmd
	n.input, cmd = n.input.Update(msg)
	return n, cmd
}

func (n *NicknameScreen) save(name string) tea.Cmd {
	tracker := n.tracker
	return func() tea.Msg {
		ctx := context.Background()
		_, err := tracker.SetNickname(ctx, name)
		if err != nil && !errors.Is(err, gamification.ErrEmptyNickname) {
			logging.FromContext(ctx).WithError(err).Error("failed to save nickname")
		}
		return savedMsg{err: err}
	}
}

func (n *NicknameScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	lines := []string{
		theme.Title.Render("¿Cómo te llamas?"),
		"",
		theme.Subtitle.Render("Elige un apodo para tu marcador."),
		"",
		n.input.View(),
	}
	if n.errMsg != "" {
		lines = append(lines, "", theme.Incorrect.Render(n.errMsg))
	}
	if n.saving {
		lines = append(lines, "", theme.Hint.Render("Guardando..."))
	}

	card := components.Card(strings.Join(lines, "\n"), cw, nil)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
