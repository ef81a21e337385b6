// Package page holds the two top-level TUI views: the upload landing page
// and the chat workspace.
package page

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deepretrieve/deepretrieve/internal/monitor"
	"github.com/deepretrieve/deepretrieve/internal/session"
	"github.com/deepretrieve/deepretrieve/internal/tui/components/status"
	"github.com/deepretrieve/deepretrieve/internal/tui/theme"
)

// UploadedMsg tells the app to navigate to the chat workspace.
type UploadedMsg struct{}

type uploadResultMsg struct {
	navigated bool
}

type retryDoneMsg struct{}

// UploadPage is the landing view: pick a document, watch the backend
// status, submit the upload.
type UploadPage struct {
	theme   theme.Theme
	upload  *session.UploadSession
	monitor *monitor.Monitor

	pathInput textinput.Model
	spin      spinner.Model

	retrying bool
	width    int
	height   int
}

type uploadKeyMap struct {
	Submit key.Binding
	Remove key.Binding
	Retry  key.Binding
}

var uploadKeys = uploadKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select / upload"),
	),
	Remove: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "remove file"),
	),
	Retry: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "retry backend"),
	),
}

// NewUploadPage creates the landing view.
func NewUploadPage(th theme.Theme, upload *session.UploadSession, mon *monitor.Monitor) *UploadPage {
	in := textinput.New()
	in.Placeholder = "Path to a PDF or image..."
	in.Prompt = "📄 "
	in.Focus()
	in.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

	return &UploadPage{
		theme:     th,
		upload:    upload,
		monitor:   mon,
		pathInput: in,
		spin:      sp,
	}
}

func (p *UploadPage) Init() tea.Cmd {
	return textinput.Blink
}

func (p *UploadPage) Update(msg tea.Msg) (*UploadPage, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.pathInput.Width = min(60, msg.Width-10)
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, uploadKeys.Submit):
			return p, p.handleEnter()

		case key.Matches(msg, uploadKeys.Remove):
			p.upload.Remove()
			return p, nil

		case key.Matches(msg, uploadKeys.Retry):
			p.retrying = true
			return p, func() tea.Msg {
				p.monitor.Retry(context.Background())
				return retryDoneMsg{}
			}
		}

	case retryDoneMsg:
		p.retrying = false
		return p, nil

	case uploadResultMsg:
		if msg.navigated {
			return p, func() tea.Msg { return UploadedMsg{} }
		}
		return p, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(msg)
		if p.upload.Phase() == session.PhaseUploading {
			return p, cmd
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.pathInput, cmd = p.pathInput.Update(msg)
	return p, cmd
}

func (p *UploadPage) handleEnter() tea.Cmd {
	switch p.upload.Phase() {
	case session.PhaseEmpty:
		p.selectFromInput()
		return nil

	case session.PhaseFailed:
		// A typed path replaces the failed file; an empty input retries it.
		if p.pathInput.Value() != "" {
			p.selectFromInput()
			return nil
		}
		file := p.upload.File()
		if file == nil || !p.upload.Select(*file) {
			return nil
		}
		return p.submit()

	case session.PhaseSelected:
		return p.submit()
	}
	return nil
}

func (p *UploadPage) selectFromInput() {
	path := p.pathInput.Value()
	if path == "" {
		return
	}
	candidate, err := session.NewCandidate(path)
	if err != nil {
		// Unreadable path; leave the input as typed.
		return
	}
	// A candidate of an unsupported type is silently ignored.
	if p.upload.Select(candidate) {
		p.pathInput.Reset()
	}
}

func (p *UploadPage) submit() tea.Cmd {
	return tea.Batch(
		p.spin.Tick,
		func() tea.Msg {
			return uploadResultMsg{navigated: p.upload.Submit(context.Background())}
		},
	)
}

func (p *UploadPage) View() string {
	var b []string

	title := p.theme.Title().Render("DeepRetrieve")
	subtitle := p.theme.Muted().Render("Chat with your documents. Start by picking a file.")
	b = append(b, title, subtitle, "")

	b = append(b, status.Pill(p.theme, p.monitor.Status(), p.retrying || p.monitor.Checking()), "")

	switch p.upload.Phase() {
	case session.PhaseEmpty:
		b = append(b, p.renderPicker())
	default:
		b = append(b, p.renderCard())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, b...)

	boxed := p.theme.Border().Padding(1, 2).Render(content)
	if p.width > 0 && p.height > 0 {
		return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, boxed)
	}
	return boxed
}

func (p *UploadPage) renderPicker() string {
	hints := p.theme.Muted().Render("PDF and image files · up to 500 MB · instant processing")
	return lipgloss.JoinVertical(
		lipgloss.Left,
		p.pathInput.View(),
		"",
		hints,
	)
}

func (p *UploadPage) renderCard() string {
	file := p.upload.File()
	if file == nil {
		return ""
	}

	name := p.theme.Text().Bold(true).Render(file.Name)
	size := p.theme.Muted().Render(fmt.Sprintf("%.2f MB · ready to analyze", float64(file.Size)/1024/1024))

	lines := []string{name, size}

	switch p.upload.Phase() {
	case session.PhaseUploading:
		lines = append(lines, "", p.spin.View()+" Processing your document...")
	case session.PhaseFailed:
		lines = append(lines, "", p.theme.Error().Render(p.upload.Err()))
		lines = append(lines, p.theme.Muted().Render("enter to retry · ctrl+x to remove"))
	default:
		if p.monitor.Status() == monitor.StatusOnline {
			lines = append(lines, "", p.theme.Success().Render("enter to analyze")+p.theme.Muted().Render(" · ctrl+x to remove"))
		} else {
			lines = append(lines, "", p.theme.Warning().Render("Backend is offline. Start the backend server first."))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
