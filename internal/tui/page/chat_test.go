package page

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepretrieve/deepretrieve/internal/api"
	"github.com/deepretrieve/deepretrieve/internal/session"
	chatcomp "github.com/deepretrieve/deepretrieve/internal/tui/components/chat"
	"github.com/deepretrieve/deepretrieve/internal/tui/theme"
)

type slowQuerier struct {
	release chan struct{}
}

func (q *slowQuerier) Query(ctx context.Context, query string, topK int) (*api.QueryResponse, error) {
	if q.release != nil {
		<-q.release
	}
	return &api.QueryResponse{Success: true, Answer: "ok"}, nil
}

func TestChatPageLocksEditorOnSubmit(t *testing.T) {
	relay := session.NewSourcesRelay()
	chat := session.NewChatSession(&slowQuerier{release: make(chan struct{})}, relay, 5, time.Second)
	p := NewChatPage(theme.NewDefaultTheme(), chat, relay, "report.pdf")

	// The lock must close before the send command ever runs, not on the
	// next refresh tick.
	p, _ = p.Update(chatcomp.SubmitMsg{Content: "first question"})
	assert.True(t, p.editor.Locked())

	// A refresh landing before the send command starts composing must not
	// reopen the window.
	p, _ = p.Update(refreshMsg{})
	assert.True(t, p.editor.Locked())

	// A second enter inside that window keeps its text instead of clearing
	// it into a dropped send.
	p.editor.SetValue("second question")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "second question", p.editor.Value())
}

func TestChatPageUnlocksAfterResponse(t *testing.T) {
	relay := session.NewSourcesRelay()
	chat := session.NewChatSession(&slowQuerier{}, relay, 5, time.Second)
	p := NewChatPage(theme.NewDefaultTheme(), chat, relay, "report.pdf")

	require.True(t, chat.Send(context.Background(), "question"))
	p, _ = p.Update(sendDoneMsg{})
	assert.False(t, p.editor.Locked())
	assert.Equal(t, 2, chat.Len())
}
