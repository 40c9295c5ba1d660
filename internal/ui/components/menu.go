package components

import (
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mates/internal/ui/theme"
)

var menuKeys = struct {
	Up, Down, Pick key.Binding
}{
	Up:   key.NewBinding(key.WithKeys("up", "k")),
	Down: key.NewBinding(key.WithKeys("down", "j")),
	Pick: key.NewBinding(key.WithKeys("enter")),
}

// MenuItem is one entry of a Menu. Disabled entries are shown dimmed and
// can be neither selected nor picked.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of items navigated with the arrows (or j/k) and
// picked with enter or the item's digit.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// move selects the next enabled item in direction dir, if any.
func (m *Menu) move(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m *Menu) pick(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) || m.Items[i].Disabled || m.Items[i].Action == nil {
		return nil
	}
	m.Selected = i
	return m.Items[i].Action()
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	press, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(press, menuKeys.Up):
		m.move(-1)
	case key.Matches(press, menuKeys.Down):
		m.move(1)
	case key.Matches(press, menuKeys.Pick):
		return m, m.pick(m.Selected)
	default:
		if d, err := strconv.Atoi(press.Text); err == nil && d >= 1 && d <= 9 {
			return m, m.pick(d - 1)
		}
	}
	return m, nil
}

// View centres the numbered items in width with the selection highlighted.
func (m Menu) View(width int) string {
	plain := lipgloss.NewStyle().Foreground(theme.Text)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	active := lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Gold).Bold(true)

	rows := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		num := "   "
		if i < 9 {
			num = strconv.Itoa(i+1) + "  "
		}
		text := num + item.Label + " "
		switch {
		case item.Disabled:
			rows = append(rows, dim.Render("   "+text))
		case i == m.Selected:
			rows = append(rows, active.Render(" ▸ "+text))
		default:
			rows = append(rows, plain.Render("   "+text))
		}
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Left, rows...))
}
