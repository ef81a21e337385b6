package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// NewDefaultTheme creates the stock DeepRetrieve palette: indigo and purple
// accents on a near-black surface, with sensible light-mode variants.
func NewDefaultTheme() *BaseTheme {
	return &BaseTheme{
		PrimaryColor: lipgloss.AdaptiveColor{
			Dark:  "#818CF8", // indigo-400
			Light: "#4F46E5", // indigo-600
		},
		SecondaryColor: lipgloss.AdaptiveColor{
			Dark:  "#C4B5FD", // purple-300
			Light: "#7C3AED", // purple-600
		},
		TextColor: lipgloss.AdaptiveColor{
			Dark:  "#CBD5E1", // slate-300
			Light: "#1E293B", // slate-800
		},
		MutedColor: lipgloss.AdaptiveColor{
			Dark:  "#64748B", // slate-500
			Light: "#94A3B8", // slate-400
		},
		SuccessColor: lipgloss.AdaptiveColor{
			Dark:  "#4ADE80", // green-400
			Light: "#16A34A", // green-600
		},
		WarningColor: lipgloss.AdaptiveColor{
			Dark:  "#FB923C", // orange-400
			Light: "#EA580C", // orange-600
		},
		ErrorColor: lipgloss.AdaptiveColor{
			Dark:  "#F87171", // red-400
			Light: "#DC2626", // red-600
		},
		BorderColor: lipgloss.AdaptiveColor{
			Dark:  "#1E293B", // slate-800
			Light: "#E2E8F0", // slate-200
		},
		SurfaceColor: lipgloss.AdaptiveColor{
			Dark:  "#13131F",
			Light: "#F1F5F9",
		},
	}
}
