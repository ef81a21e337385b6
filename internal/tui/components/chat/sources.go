package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/deepretrieve/deepretrieve/internal/api"
	"github.com/deepretrieve/deepretrieve/internal/tui/theme"
)

// SourcesModel renders the latest retrieval context in a side panel.
type SourcesModel struct {
	theme theme.Theme

	sources []api.SourceRef
	usedWeb bool

	width  int
	height int
}

// NewSources creates the sources panel.
func NewSources(th theme.Theme) *SourcesModel {
	return &SourcesModel{theme: th}
}

// SetSources replaces the panel content with the latest relay value.
func (m *SourcesModel) SetSources(sources []api.SourceRef, usedWeb bool) {
	m.sources = sources
	m.usedWeb = usedWeb
}

// SetSize resizes the panel.
func (m *SourcesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *SourcesModel) View() string {
	var b strings.Builder

	title := m.theme.Title().Render("Retrieval Sources")
	count := m.theme.Muted().Render(fmt.Sprintf("%d found", len(m.sources)))
	b.WriteString(title + " " + count + "\n")

	if m.usedWeb {
		b.WriteString(m.theme.Badge().Render("web search") + "\n")
	}
	b.WriteString("\n")

	if len(m.sources) == 0 {
		b.WriteString(m.theme.Muted().Render("Sources appear here as you chat."))
	} else {
		for i, src := range m.sources {
			if i > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(m.renderSource(src))
		}
	}

	return m.theme.Border().
		Width(m.width - 2).
		Height(m.height - 2).
		Padding(0, 1).
		Render(b.String())
}

func (m *SourcesModel) renderSource(src api.SourceRef) string {
	var meta []string
	meta = append(meta, sourceIcon(src.Type)+" "+string(src.Type))
	if src.Page != nil {
		meta = append(meta, fmt.Sprintf("page %d", *src.Page))
	}
	meta = append(meta, m.confidence(src))

	header := m.theme.Muted().Render(strings.Join(meta, " · "))

	var lines []string
	lines = append(lines, header)
	if src.Source != "" {
		lines = append(lines, m.theme.Text().Render(truncate(src.Source, m.innerWidth())))
	}
	lines = append(lines, m.theme.Muted().Render(truncate(src.Content, m.innerWidth()*2)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *SourcesModel) confidence(src api.SourceRef) string {
	c := src.Confidence()
	switch c {
	case api.ConfidenceHigh:
		return m.theme.Success().Render(string(c))
	case api.ConfidenceMedium:
		return m.theme.Warning().Render(string(c))
	default:
		return m.theme.Error().Render(string(c))
	}
}

func (m *SourcesModel) innerWidth() int {
	w := m.width - 4
	if w < 16 {
		w = 16
	}
	return w
}

func sourceIcon(t api.SourceType) string {
	switch t {
	case api.SourceTable:
		return "▦"
	case api.SourceImage:
		return "🖼"
	case api.SourceWeb:
		return "🌐"
	default:
		return "📄"
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if max < 4 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
