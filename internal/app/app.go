// Package app wires the screens of the terminal UI into a Bubble Tea
// program.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mates/internal/gamification"
	"github.com/abhisek/mates/internal/router"
	"github.com/abhisek/mates/internal/screen"
	"github.com/abhisek/mates/internal/screens/home"
	"github.com/abhisek/mates/internal/screens/nickname"
	"github.com/abhisek/mates/internal/screens/welcome"
	"github.com/abhisek/mates/internal/session"
	"github.com/abhisek/mates/internal/ui/layout"
)

// Deps holds the services the screens need.
type Deps struct {
	Session *session.Service
	Tracker *gamification.Tracker
	// Online reports whether a model provider is configured.
	Online bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	tracker *gamification.Tracker
	width   int
	height  int
}

// newAppModel starts on the splash screen, which hands over to the
// nickname screen on first run and to the menu afterwards.
func newAppModel(deps Deps) AppModel {
	menu := func() screen.Screen {
		return home.New(deps.Session, deps.Tracker, deps.Online)
	}
	next := func() screen.Screen {
		if deps.Tracker.State().Nickname == "" {
			return nickname.New(deps.Tracker, menu)
		}
		return menu()
	}
	return AppModel{
		router:  router.New(welcome.New(next)),
		tracker: deps.Tracker,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	size := layout.Size{Width: m.width, Height: m.height}
	if size.TooSmall() {
		return layout.TooSmallNotice(size)
	}

	active := m.router.Active()
	title := ""
	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Salir"}}
	if active != nil {
		title = active.Title()
		if p, ok := active.(screen.Hinter); ok {
			hints = p.KeyHints()
		}
	}

	header := layout.Header(title, m.tracker.State(), size)
	footer := layout.Footer(hints, size)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.Frame(header, content, footer, size)
}

// Run starts the Bubble Tea program and blocks until the learner quits or
// ctx is cancelled.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(newAppModel(deps), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}
	return nil
}
