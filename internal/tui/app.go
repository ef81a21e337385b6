// Package tui is the terminal front end: an upload landing view and a chat
// workspace, navigated in that order. All observable state lives in the
// controllers under internal/session; the TUI only renders and forwards.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepretrieve/deepretrieve/internal/api"
	"github.com/deepretrieve/deepretrieve/internal/config"
	"github.com/deepretrieve/deepretrieve/internal/monitor"
	"github.com/deepretrieve/deepretrieve/internal/session"
	"github.com/deepretrieve/deepretrieve/internal/storage"
	"github.com/deepretrieve/deepretrieve/internal/tui/page"
	"github.com/deepretrieve/deepretrieve/internal/tui/theme"
)

type view int

const (
	viewUpload view = iota
	viewChat
)

// Model is the root TUI model.
type Model struct {
	cfg   *config.Config
	theme theme.Theme
	store storage.Store

	uploadPage *page.UploadPage
	chatPage   *page.ChatPage

	chat  *session.ChatSession
	relay *session.SourcesRelay

	active view
	width  int
	height int
}

var keys = struct {
	Quit key.Binding
}{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// New assembles the root model from already-wired controllers.
func New(cfg *config.Config, th theme.Theme, store storage.Store, upload *session.UploadSession, mon *monitor.Monitor, chat *session.ChatSession, relay *session.SourcesRelay) *Model {
	return &Model{
		cfg:        cfg,
		theme:      th,
		store:      store,
		uploadPage: page.NewUploadPage(th, upload, mon),
		chat:       chat,
		relay:      relay,
		active:     viewUpload,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.uploadPage.Init()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Both pages track size so navigation needs no re-measure.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.uploadPage, cmd = m.uploadPage.Update(msg)
		cmds = append(cmds, cmd)
		if m.chatPage != nil {
			m.chatPage, cmd = m.chatPage.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}

	case page.UploadedMsg:
		return m, m.openChat()
	}

	switch m.active {
	case viewChat:
		if m.chatPage != nil {
			var cmd tea.Cmd
			m.chatPage, cmd = m.chatPage.Update(msg)
			return m, cmd
		}
	default:
		var cmd tea.Cmd
		m.uploadPage, cmd = m.uploadPage.Update(msg)
		return m, cmd
	}
	return m, nil
}

// openChat navigates to the workspace, reading the stored document name
// once to personalize the greeting.
func (m *Model) openChat() tea.Cmd {
	docName, err := m.store.Get(storage.KeyLastDocument)
	if err != nil {
		docName = ""
	}

	m.chatPage = page.NewChatPage(m.theme, m.chat, m.relay, docName)
	m.active = viewChat

	cmds := []tea.Cmd{m.chatPage.Init()}
	if m.width > 0 {
		cmds = append(cmds, func() tea.Msg {
			return tea.WindowSizeMsg{Width: m.width, Height: m.height}
		})
	}
	return tea.Batch(cmds...)
}

func (m *Model) View() string {
	switch m.active {
	case viewChat:
		if m.chatPage != nil {
			return m.chatPage.View()
		}
		return ""
	default:
		return m.uploadPage.View()
	}
}

// Run wires the controllers and runs the program until the user quits.
func Run(cfg *config.Config) error {
	client := api.NewClient(cfg.BackendURL)

	store, err := storage.NewDefaultFileStore()
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}

	mon := monitor.New(client, cfg.PollInterval, cfg.PingTimeout)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mon.Start(ctx)
	defer mon.Stop()

	upload := session.NewUploadSession(client, store, mon.Status, cfg.UploadTimeout)
	relay := session.NewSourcesRelay()
	chat := session.NewChatSession(client, relay, cfg.TopK, cfg.QueryTimeout)

	model := New(cfg, theme.GetTheme(cfg.Theme), store, upload, mon, chat, relay)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
