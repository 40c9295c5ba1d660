// Package home is the main menu: pick a category to practise, review the
// run summary, change the nickname or quit.
package home

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mates/internal/exercise"
	"github.com/abhisek/mates/internal/gamification"
	"github.com/abhisek/mates/internal/router"
	"github.com/abhisek/mates/internal/screen"
	"github.com/abhisek/mates/internal/screens/nickname"
	practice "github.com/abhisek/mates/internal/screens/session"
	"github.com/abhisek/mates/internal/screens/summary"
	"github.com/abhisek/mates/internal/session"
	"github.com/abhisek/mates/internal/ui/components"
	"github.com/abhisek/mates/internal/ui/layout"
)

// HomeScreen is the category menu.
type HomeScreen struct {
	tracker *gamification.Tracker
	online  bool
	menu    components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Hinter = (*HomeScreen)(nil)

// New creates the menu. online reports whether a model provider is
// configured.
func New(svc *session.Service, tracker *gamification.Tracker, online bool) *HomeScreen {
	var items []components.MenuItem
	for _, c := range exercise.Categories() {
		items = append(items, components.MenuItem{
			Label:  c.Label(),
			Action: push(func() screen.Screen { return practice.New(svc, c) }),
		})
	}
	items = append(items,
		components.MenuItem{Label: "Resumen", Action: push(func() screen.Screen { return summary.New(svc.Summary()) })},
		components.MenuItem{Label: "Cambiar apodo", Action: push(func() screen.Screen { return nickname.New(tracker, nil) })},
		components.MenuItem{Label: "Salir", Action: func() tea.Cmd { return tea.Quit }},
	)

	return &HomeScreen{
		tracker: tracker,
		online:  online,
		menu:    components.NewMenu(items),
	}
}

func push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd { return router.Open(build()) }
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Menú"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Moverse"},
		{Key: "Enter", Description: "Elegir"},
		{Key: "1-9", Description: "Atajo"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.Size{Width: width, Height: height + layout.ChromeHeight}.Compact()
	cw := components.ContentWidth(width)
	state := h.tracker.State()

	sections := []string{title(cw, compact)}
	if !compact {
		sections = append(sections, robotFace(moodFor(state.Streak, h.online)))
	}
	sections = append(sections, statsBadge(state, compact))
	if !h.online {
		sections = append(sections, offlineNotice())
	}
	sections = append(sections, h.menu.View(cw))

	return components.Frame(menuPage(cw, compact, sections...), width, height)
}
