// Package status renders the backend availability indicator.
package status

import (
	"github.com/deepretrieve/deepretrieve/internal/monitor"
	"github.com/deepretrieve/deepretrieve/internal/tui/theme"
)

// Pill renders the backend status as a one-line indicator. checking is true
// while a manual retry is in flight.
func Pill(th theme.Theme, s monitor.Status, checking bool) string {
	if checking {
		return th.Muted().Render("◌ Checking backend...")
	}
	switch s {
	case monitor.StatusOnline:
		return th.Success().Render("● Backend Online")
	case monitor.StatusOffline:
		return th.Error().Render("● Backend Offline") + th.Muted().Render("  (ctrl+r to retry)")
	default:
		return th.Muted().Render("◌ Checking backend...")
	}
}
