package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mates/internal/ui/theme"
)

const (
	bannerWide = ` ███╗   ███╗ █████╗ ████████╗███████╗███████╗
 ████╗ ████║██╔══██╗╚══██╔══╝██╔════╝██╔════╝
 ██╔████╔██║███████║   ██║   █████╗  ███████╗
 ██║╚██╔╝██║██╔══██║   ██║   ██╔══╝  ╚════██║
 ██║ ╚═╝ ██║██║  ██║   ██║   ███████╗███████║
 ╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝   ╚══════╝╚══════╝`
	bannerNarrow = "M A T E S"
)

// Banner is the MATES logo, in block letters when width allows.
func Banner(width int) string {
	text := bannerWide
	if width < lipgloss.Width(bannerWide)+2 {
		text = bannerNarrow
	}
	return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(text)
}
