// Package chat holds the chat workspace components: the transcript view,
// the message editor and the retrieval-sources panel.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepretrieve/deepretrieve/internal/markdown"
	"github.com/deepretrieve/deepretrieve/internal/session"
	"github.com/deepretrieve/deepretrieve/internal/tui/theme"
)

// TranscriptModel renders the conversation inside a scrollable viewport.
type TranscriptModel struct {
	theme    theme.Theme
	renderer *markdown.InlineRenderer
	viewport viewport.Model

	messages  []session.Message
	composing bool
	spinner   string

	width  int
	height int
	ready  bool
}

// NewTranscript creates the transcript component.
func NewTranscript(th theme.Theme) *TranscriptModel {
	return &TranscriptModel{
		theme:    th,
		renderer: markdown.NewInlineRenderer(th.Bold()),
		viewport: viewport.New(0, 0),
	}
}

func (m *TranscriptModel) Init() tea.Cmd {
	return nil
}

func (m *TranscriptModel) Update(msg tea.Msg) (*TranscriptModel, tea.Cmd) {
	var cmd tea.Cmd

	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		if !m.ready {
			m.viewport = viewport.New(ws.Width, ws.Height)
			m.ready = true
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *TranscriptModel) View() string {
	if !m.ready {
		return "Loading conversation..."
	}
	return m.viewport.View()
}

// SetSize resizes the viewport and re-renders the content.
func (m *TranscriptModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.ready = true
	m.refresh()
}

// Refresh replaces the rendered transcript. spinner is the current frame of
// the composing indicator, shown only while the assistant is composing.
func (m *TranscriptModel) Refresh(messages []session.Message, composing bool, spinner string) {
	m.messages = messages
	m.composing = composing
	m.spinner = spinner
	m.refresh()
	m.viewport.GotoBottom()
}

func (m *TranscriptModel) refresh() {
	var content strings.Builder

	for i, msg := range m.messages {
		if i > 0 {
			content.WriteString("\n\n")
		}
		switch msg.Role {
		case session.RoleUser:
			content.WriteString(m.renderUser(msg))
		case session.RoleAssistant:
			content.WriteString(m.renderAssistant(msg))
		}
	}

	if m.composing {
		if len(m.messages) > 0 {
			content.WriteString("\n\n")
		}
		content.WriteString(m.theme.AssistantLabel().Render("DeepRetrieve:"))
		content.WriteString("\n  " + m.spinner + " " + m.theme.Muted().Render("Thinking..."))
	}

	m.viewport.SetContent(content.String())
}

func (m *TranscriptModel) renderUser(msg session.Message) string {
	header := m.theme.UserLabel().Render("You:")
	body := m.theme.UserBubble().Width(m.bodyWidth()).Render(msg.Content)
	return header + "\n" + indent(body)
}

func (m *TranscriptModel) renderAssistant(msg session.Message) string {
	header := m.theme.AssistantLabel().Render("DeepRetrieve:")

	body := m.renderer.Render(msg.Content)
	body = m.theme.Text().Width(m.bodyWidth()).Render(body)

	var footer []string
	if n := len(msg.Sources); n > 0 {
		label := fmt.Sprintf("%d source", n)
		if n > 1 {
			label += "s"
		}
		footer = append(footer, label)
	}
	if msg.UsedWeb {
		footer = append(footer, "web search used")
	}

	out := header + "\n" + indent(body)
	if len(footer) > 0 {
		out += "\n" + indent(m.theme.Muted().Render(strings.Join(footer, " · ")))
	}
	return out
}

func (m *TranscriptModel) bodyWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}

// ScrollUp scrolls the viewport up a few lines.
func (m *TranscriptModel) ScrollUp() {
	m.viewport.LineUp(3)
}

// ScrollDown scrolls the viewport down a few lines.
func (m *TranscriptModel) ScrollDown() {
	m.viewport.LineDown(3)
}
