package page

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/deepretrieve/deepretrieve/internal/session"
	chatcomp "github.com/deepretrieve/deepretrieve/internal/tui/components/chat"
	"github.com/deepretrieve/deepretrieve/internal/tui/theme"
)

// suggestions offered in the empty-state greeting.
var suggestions = []string{
	"Summarize the key financial highlights",
	"What are the risks mentioned in section 4?",
	"Compare Q4 revenue with Q3",
}

type sendDoneMsg struct{}

type refreshMsg struct{}

// ChatPage is the workspace: transcript, input editor and sources panel.
type ChatPage struct {
	theme theme.Theme
	chat  *session.ChatSession
	relay *session.SourcesRelay

	transcript *chatcomp.TranscriptModel
	editor     *chatcomp.EditorModel
	sources    *chatcomp.SourcesModel
	spin       spinner.Model

	docName string
	sending bool
	width   int
	height  int
}

type chatKeyMap struct {
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Complete   key.Binding
}

var chatKeys = chatKeyMap{
	ScrollUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdown", "scroll down"),
	),
	Complete: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "use suggestion"),
	),
}

// NewChatPage creates the workspace. docName personalizes the empty-state
// greeting; it comes from the local store, written by the upload flow.
func NewChatPage(th theme.Theme, chat *session.ChatSession, relay *session.SourcesRelay, docName string) *ChatPage {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

	return &ChatPage{
		theme:      th,
		chat:       chat,
		relay:      relay,
		transcript: chatcomp.NewTranscript(th),
		editor:     chatcomp.NewEditor(th),
		sources:    chatcomp.NewSources(th),
		spin:       sp,
		docName:    docName,
	}
}

func (p *ChatPage) Init() tea.Cmd {
	return tea.Batch(p.editor.Init(), p.refreshTick())
}

// refreshTick drives periodic re-reads of the controllers so state mutated
// by in-flight sends shows up without explicit plumbing.
func (p *ChatPage) refreshTick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func (p *ChatPage) Update(msg tea.Msg) (*ChatPage, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.layout()
		p.refresh()
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, chatKeys.ScrollUp):
			p.transcript.ScrollUp()
			return p, nil
		case key.Matches(msg, chatKeys.ScrollDown):
			p.transcript.ScrollDown()
			return p, nil
		case key.Matches(msg, chatKeys.Complete):
			if p.chat.Len() == 0 {
				if match := p.topSuggestion(); match != "" {
					p.editor.SetValue(match)
				}
				return p, nil
			}
		}

	case chatcomp.SubmitMsg:
		content := msg.Content
		// The send command has not started composing yet; relying on the
		// controller here would leave a window where a second enter clears
		// the textarea into a dropped send.
		p.sending = true
		cmds = append(cmds,
			p.spin.Tick,
			func() tea.Msg {
				p.chat.Send(context.Background(), content)
				return sendDoneMsg{}
			},
		)
		p.refresh()
		return p, tea.Batch(cmds...)

	case sendDoneMsg:
		p.sending = false
		p.refresh()
		return p, nil

	case refreshMsg:
		p.refresh()
		return p, p.refreshTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(msg)
		if p.chat.Composing() || p.sending {
			p.refresh()
			return p, cmd
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(msg)
	cmds = append(cmds, cmd)

	p.transcript, cmd = p.transcript.Update(msg)
	cmds = append(cmds, cmd)

	return p, tea.Batch(cmds...)
}

// refresh pulls the latest controller state into the components.
func (p *ChatPage) refresh() {
	composing := p.chat.Composing() || p.sending
	p.editor.SetLocked(composing)
	p.transcript.Refresh(p.chat.Messages(), composing, p.spin.View())
	p.sources.SetSources(p.relay.Latest())
}

func (p *ChatPage) layout() {
	sourcesWidth := p.width / 4
	if sourcesWidth < 28 {
		sourcesWidth = 28
	}
	mainWidth := p.width - sourcesWidth

	editorHeight := 4
	footerHeight := 2
	transcriptHeight := p.height - editorHeight - footerHeight
	if transcriptHeight < 4 {
		transcriptHeight = 4
	}

	p.transcript.SetSize(mainWidth-2, transcriptHeight)
	p.editor.SetWidth(mainWidth - 2)
	p.sources.SetSize(sourcesWidth, p.height-footerHeight)
}

func (p *ChatPage) View() string {
	var main string
	if p.chat.Len() == 0 && !p.chat.Composing() && !p.sending {
		main = p.renderGreeting()
	} else {
		main = p.transcript.View()
	}

	left := lipgloss.JoinVertical(
		lipgloss.Left,
		main,
		"",
		p.editor.View(),
	)

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		left,
		" ",
		p.sources.View(),
	)

	footer := p.theme.Muted().Render("DEEPRETRIEVE AGENT · enter to send · ctrl+j for a new line · pgup/pgdn to scroll · ctrl+c to quit")

	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (p *ChatPage) renderGreeting() string {
	var b strings.Builder

	b.WriteString(p.theme.Title().Render("Welcome back") + "\n\n")
	if p.docName != "" {
		b.WriteString(p.theme.Text().Render("Ready to analyze ") +
			p.theme.Bold().Render(p.docName) +
			p.theme.Text().Render(". Ask me anything about the document.") + "\n\n")
	} else {
		b.WriteString(p.theme.Text().Render("Ask me anything about your document.") + "\n\n")
	}

	b.WriteString(p.theme.Muted().Render("Suggestions (tab to use):") + "\n")
	for _, s := range p.matchingSuggestions() {
		b.WriteString("  " + p.theme.Muted().Render("→ ") + p.theme.Text().Render(s) + "\n")
	}

	return b.String()
}

// matchingSuggestions filters the canned prompts against the current input.
func (p *ChatPage) matchingSuggestions() []string {
	input := strings.TrimSpace(p.editor.Value())
	if input == "" {
		return suggestions
	}

	ranks := fuzzy.RankFindNormalizedFold(input, suggestions)
	if len(ranks) == 0 {
		return suggestions
	}
	sort.Sort(ranks)

	out := make([]string, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, r.Target)
	}
	return out
}

func (p *ChatPage) topSuggestion() string {
	matches := p.matchingSuggestions()
	if len(matches) == 0 {
		return ""
	}
	return matches[0]
}
