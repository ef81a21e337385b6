// Package markdown renders assistant answers for the terminal: a glamour
// renderer for full answers in one-shot commands, and a restricted inline
// renderer for chat transcript bubbles.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer wraps glamour for standalone answer rendering.
type Renderer struct {
	glamourRenderer *glamour.TermRenderer
	width           int
}

// NewRenderer creates a glamour-backed renderer wrapped at width columns.
func NewRenderer(width int) (*Renderer, error) {
	if width <= 0 {
		width = 80
	}
	gr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("create glamour renderer: %w", err)
	}
	return &Renderer{glamourRenderer: gr, width: width}, nil
}

// Render converts markdown to styled terminal output. The input is
// sanitized first; on a rendering error the sanitized text is returned
// verbatim so the answer is never lost.
func (r *Renderer) Render(content string) string {
	content = Sanitize(content)
	rendered, err := r.glamourRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(rendered)
}
