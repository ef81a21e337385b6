package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deepretrieve/deepretrieve/internal/tui/theme"
)

// SubmitMsg is emitted when the user sends the editor content.
type SubmitMsg struct {
	Content string
}

// EditorModel is the chat input. While the assistant is composing the
// editor stays visible but refuses to send, which serializes queries.
type EditorModel struct {
	textarea textarea.Model
	theme    theme.Theme
	width    int
	locked   bool
}

type editorKeyMap struct {
	Send    key.Binding
	NewLine key.Binding
}

var editorKeys = editorKeyMap{
	Send: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "send message"),
	),
	NewLine: key.NewBinding(
		key.WithKeys("ctrl+j"),
		key.WithHelp("ctrl+j", "new line"),
	),
}

// NewEditor creates the chat input component.
func NewEditor(th theme.Theme) *EditorModel {
	ta := textarea.New()
	ta.Placeholder = "Ask anything about the document..."
	ta.CharLimit = 4000
	ta.SetWidth(80)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	return &EditorModel{
		textarea: ta,
		theme:    th,
	}
}

func (m *EditorModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *EditorModel) Update(msg tea.Msg) (*EditorModel, tea.Cmd) {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.textarea.Focused() {
		switch {
		case key.Matches(keyMsg, editorKeys.NewLine):
			m.textarea.InsertString("\n")
			return m, nil

		case key.Matches(keyMsg, editorKeys.Send):
			return m, m.send()
		}
	}

	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m *EditorModel) send() tea.Cmd {
	if m.locked {
		return nil
	}
	value := strings.TrimSpace(m.textarea.Value())
	if value == "" {
		return nil
	}

	m.textarea.Reset()
	return func() tea.Msg {
		return SubmitMsg{Content: value}
	}
}

func (m *EditorModel) View() string {
	prompt := m.theme.Title().Padding(0, 1, 0, 1).Render(">")
	if m.locked {
		prompt = m.theme.Muted().Padding(0, 1, 0, 1).Render("…")
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		prompt,
		m.textarea.View(),
	)
}

// Value returns the current input buffer.
func (m *EditorModel) Value() string {
	return m.textarea.Value()
}

// SetValue replaces the input buffer.
func (m *EditorModel) SetValue(v string) {
	m.textarea.SetValue(v)
	m.textarea.CursorEnd()
}

// SetLocked blocks sends while a response is pending.
func (m *EditorModel) SetLocked(locked bool) {
	m.locked = locked
}

// Locked reports whether sends are currently blocked.
func (m *EditorModel) Locked() bool {
	return m.locked
}

// SetWidth resizes the editor.
func (m *EditorModel) SetWidth(width int) {
	m.width = width
	m.textarea.SetWidth(width - 3)
}

// Focus gives the editor keyboard focus.
func (m *EditorModel) Focus() tea.Cmd {
	return m.textarea.Focus()
}

// Blur removes keyboard focus.
func (m *EditorModel) Blur() {
	m.textarea.Blur()
}
