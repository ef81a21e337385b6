package chat

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepretrieve/deepretrieve/internal/tui/theme"
)

func TestEditorSendEmitsSubmit(t *testing.T) {
	m := NewEditor(theme.NewDefaultTheme())
	m.SetValue("  how did revenue do?  ")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(SubmitMsg)
	require.True(t, ok)
	assert.Equal(t, "how did revenue do?", msg.Content)
	assert.Empty(t, m.Value(), "send clears the buffer")
}

func TestEditorBlankSendIsNoop(t *testing.T) {
	m := NewEditor(theme.NewDefaultTheme())
	m.SetValue("   ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestEditorLockedSendKeepsValue(t *testing.T) {
	m := NewEditor(theme.NewDefaultTheme())
	m.SetLocked(true)
	m.SetValue("a question")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "a question", m.Value(), "locked editor must not discard input")

	m.SetLocked(false)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd, "unlocking re-enables send")
}

func TestEditorCtrlJInsertsNewline(t *testing.T) {
	m := NewEditor(theme.NewDefaultTheme())
	m.SetValue("first line")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	assert.Nil(t, cmd)
	assert.Equal(t, "first line\n", m.Value())
}
