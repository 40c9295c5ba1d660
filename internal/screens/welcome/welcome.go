// Package welcome is the splash screen shown at start-up.
package welcome

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mates/internal/router"
	"github.com/abhisek/mates/internal/screen"
	"github.com/abhisek/mates/internal/ui/theme"
)

// The animation advances one frame per frameRate. Sparkles appear at
// sparkleFrame, the banner at bannerFrame and the splash hands over at
// lastFrame.
const (
	frameRate    = 100 * time.Millisecond
	sparkleFrame = 4
	bannerFrame  = 10
	lastFrame    = 25
)

var robot = []string{
	"╭───────────╮",
	"│  ┌─────┐  │",
	"│  │ ◉ ◉ │  │",
	"│  │  ◡  │  │",
	"│  ├─────┤  │",
	"│  │ +−×÷│  │",
	"│  └─────┘  │",
	"╰───────────╯",
}

// sparkleRows are the robot rows flanked by sparkles.
var sparkleRows = map[int]bool{0: true, 3: true, 6: true}

type frameMsg struct{}

// WelcomeScreen animates the robot and banner, then swaps itself for the
// screen returned by next. A key press skips ahead.
type WelcomeScreen struct {
	next  func() screen.Screen
	frame int
	done  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.done {
			return w, nil
		}
		if w.frame++; w.frame >= lastFrame {
			return w, w.leave()
		}
		return w, nextFrame()
	case tea.KeyPressMsg:
		return w, w.leave()
	}
	return w, nil
}

func (w *WelcomeScreen) leave() tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	return router.Swap(w.next())
}

func (w *WelcomeScreen) View(width, height int) string {
	body := lipgloss.NewStyle().Foreground(theme.Primary)
	rows := make([]string, len(robot))
	for i, r := range robot {
		rows[i] = body.Render(r)
		if w.frame >= sparkleFrame && sparkleRows[i] {
			rows[i] = w.sparkle(i) + "  " + rows[i] + "  " + w.sparkle(i+1)
		} else {
			rows[i] = "   " + rows[i] + "   "
		}
	}
	out := lipgloss.JoinVertical(lipgloss.Center, rows...)

	if w.frame >= bannerFrame {
		out = lipgloss.JoinVertical(lipgloss.Center,
			out, "",
			Banner(width), "",
			theme.Body.Bold(true).Render("¡Vamos a practicar matemáticas!"), "",
			theme.Hint.Render("pulsa cualquier tecla para continuar"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, out)
}

// sparkle alternates glyph and colour with the frame and position.
func (w *WelcomeScreen) sparkle(pos int) string {
	glyph, fg := "★", theme.Accent
	if (w.frame+pos)%2 == 1 {
		glyph, fg = "✦", theme.Secondary
	}
	return lipgloss.NewStyle().Foreground(fg).Render(glyph)
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameRate, func(time.Time) tea.Msg { return frameMsg{} })
}
