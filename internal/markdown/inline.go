package markdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Assistant answers may only use a fixed markdown subset: line breaks and
// **bold** spans. The text is parsed into spans and rendered through styles;
// raw markup from the backend is never passed through, and escape sequences
// are stripped before rendering so untrusted text cannot inject terminal
// control codes.

// Span is one run of transcript text.
type Span struct {
	Text string
	Bold bool
}

// Sanitize removes ANSI escape sequences and non-printable control
// characters from untrusted text. Newlines and tabs survive.
func Sanitize(content string) string {
	content = ansi.Strip(content)

	var b strings.Builder
	b.Grow(len(content))
	for _, r := range content {
		if r == '\n' || r == '\t' || r >= 0x20 && r != 0x7f {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseSpans tokenizes content into plain and bold spans. A ** without a
// closing pair stays literal text.
func ParseSpans(content string) []Span {
	var spans []Span
	for content != "" {
		open := strings.Index(content, "**")
		if open < 0 {
			spans = append(spans, Span{Text: content})
			break
		}
		close := strings.Index(content[open+2:], "**")
		if close < 0 {
			spans = append(spans, Span{Text: content})
			break
		}
		if open > 0 {
			spans = append(spans, Span{Text: content[:open]})
		}
		spans = append(spans, Span{Text: content[open+2 : open+2+close], Bold: true})
		content = content[open+4+close:]
	}
	return spans
}

// InlineRenderer renders the restricted subset with lipgloss styles.
type InlineRenderer struct {
	bold lipgloss.Style
}

// NewInlineRenderer creates a renderer using bold for emphasized spans.
func NewInlineRenderer(bold lipgloss.Style) *InlineRenderer {
	return &InlineRenderer{bold: bold}
}

// Render sanitizes content and renders its spans. Line breaks in the input
// are preserved as-is.
func (r *InlineRenderer) Render(content string) string {
	var b strings.Builder
	for _, span := range ParseSpans(Sanitize(content)) {
		if span.Bold {
			b.WriteString(r.bold.Render(span.Text))
		} else {
			b.WriteString(span.Text)
		}
	}
	return b.String()
}
