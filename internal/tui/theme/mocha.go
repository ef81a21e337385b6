package theme

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// NewMochaTheme creates a Catppuccin palette: Mocha in dark terminals,
// Latte in light ones.
func NewMochaTheme() *BaseTheme {
	dark := catppuccin.Mocha
	light := catppuccin.Latte

	adaptive := func(d, l catppuccin.Color) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Dark: d.Hex, Light: l.Hex}
	}

	return &BaseTheme{
		PrimaryColor:   adaptive(dark.Mauve(), light.Mauve()),
		SecondaryColor: adaptive(dark.Lavender(), light.Lavender()),
		TextColor:      adaptive(dark.Text(), light.Text()),
		MutedColor:     adaptive(dark.Overlay1(), light.Overlay1()),
		SuccessColor:   adaptive(dark.Green(), light.Green()),
		WarningColor:   adaptive(dark.Peach(), light.Peach()),
		ErrorColor:     adaptive(dark.Red(), light.Red()),
		BorderColor:    adaptive(dark.Surface1(), light.Surface1()),
		SurfaceColor:   adaptive(dark.Surface0(), light.Surface0()),
	}
}
