package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hashboard/internal/ui/theme"
)

const bannerArt = `
 ██╗  ██╗ █████╗ ███████╗██╗  ██╗██████╗  ██████╗  █████╗ ██████╗ ██████╗
 ██║  ██║██╔══██╗██╔════╝██║  ██║██╔══██╗██╔═══██╗██╔══██╗██╔══██╗██╔══██╗
 ███████║███████║███████╗███████║██████╔╝██║   ██║███████║██████╔╝██║  ██║
 ██╔══██║██╔══██║╚════██║██╔══██║██╔══██╗██║   ██║██╔══██║██╔══██╗██║  ██║
 ██║  ██║██║  ██║███████║██║  ██║██████╔╝╚██████╔╝██║  ██║██║  ██║██████╔╝
 ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝`

const bannerCompact = "H A S H B O A R D"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 76

// RenderBanner returns the banner styled in the primary color, or a compact
// fallback when the terminal is too narrow for the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
