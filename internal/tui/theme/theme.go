// Package theme defines the color themes for the DeepRetrieve TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme exposes the styles the TUI components draw with.
type Theme interface {
	// Base styles
	Base() lipgloss.Style
	Title() lipgloss.Style
	Text() lipgloss.Style
	Muted() lipgloss.Style

	// Emphasis inside assistant answers
	Bold() lipgloss.Style

	// Chat styles
	UserLabel() lipgloss.Style
	AssistantLabel() lipgloss.Style
	UserBubble() lipgloss.Style

	// Status styles
	Success() lipgloss.Style
	Warning() lipgloss.Style
	Error() lipgloss.Style

	// UI chrome
	Border() lipgloss.Style
	Badge() lipgloss.Style
	StatusBar() lipgloss.Style
}

// BaseTheme implements Theme from a palette of adaptive colors.
type BaseTheme struct {
	PrimaryColor   lipgloss.AdaptiveColor
	SecondaryColor lipgloss.AdaptiveColor
	TextColor      lipgloss.AdaptiveColor
	MutedColor     lipgloss.AdaptiveColor
	SuccessColor   lipgloss.AdaptiveColor
	WarningColor   lipgloss.AdaptiveColor
	ErrorColor     lipgloss.AdaptiveColor
	BorderColor    lipgloss.AdaptiveColor
	SurfaceColor   lipgloss.AdaptiveColor
}

func (t *BaseTheme) Base() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.TextColor)
}

func (t *BaseTheme) Title() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.PrimaryColor).Bold(true)
}

func (t *BaseTheme) Text() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.TextColor)
}

func (t *BaseTheme) Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.MutedColor)
}

func (t *BaseTheme) Bold() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.SecondaryColor).Bold(true)
}

func (t *BaseTheme) UserLabel() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.PrimaryColor).Bold(true)
}

func (t *BaseTheme) AssistantLabel() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.SecondaryColor).Bold(true)
}

func (t *BaseTheme) UserBubble() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.TextColor).Background(t.SurfaceColor).Padding(0, 1)
}

func (t *BaseTheme) Success() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.SuccessColor)
}

func (t *BaseTheme) Warning() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.WarningColor)
}

func (t *BaseTheme) Error() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.ErrorColor)
}

func (t *BaseTheme) Border() lipgloss.Style {
	return lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(t.BorderColor)
}

func (t *BaseTheme) Badge() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.PrimaryColor).Background(t.SurfaceColor).Padding(0, 1)
}

func (t *BaseTheme) StatusBar() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.MutedColor).Background(t.SurfaceColor)
}

// GetTheme returns the named theme, falling back to the default.
func GetTheme(name string) Theme {
	switch name {
	case "mocha":
		return NewMochaTheme()
	default:
		return NewDefaultTheme()
	}
}
