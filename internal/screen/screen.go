// Package screen is the contract between the router and the screens of the
// terminal UI.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mates/internal/ui/layout"
)

// Screen is one full-window view. Screens never touch the router directly;
// they navigate by returning router messages from Update.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between the header and the footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// Hinter is implemented by screens whose footer hints differ from the
// default.
type Hinter interface {
	KeyHints() []layout.KeyHint
}
