// Package markdown renders menu titles, which hosts send as markdown, into a
// single styled terminal line.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
)

// DefaultStyle is used when no style is configured.
const DefaultStyle = "dark"

// Renderer caches one glamour renderer per style.
type Renderer struct {
	style string

	mu     sync.Mutex
	term   *glamour.TermRenderer
	failed bool
}

// New returns a renderer for the named glamour standard style ("dark",
// "light", "notty", "ascii", ...). An empty name selects DefaultStyle.
func New(style string) *Renderer {
	style = strings.TrimSpace(style)
	if style == "" {
		style = DefaultStyle
	}
	return &Renderer{style: style}
}

// Style returns the configured style name.
func (r *Renderer) Style() string {
	return r.style
}

// Inline renders text and collapses the result to one line. Rendering
// failures fall back to the source text.
func (r *Renderer) Inline(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	term := r.renderer()
	if term == nil {
		return collapse(text)
	}
	out, err := term.Render(text)
	if err != nil {
		return collapse(text)
	}
	line := collapse(out)
	if ansi.Strip(line) == "" {
		return collapse(text)
	}
	return line
}

func (r *Renderer) renderer() *glamour.TermRenderer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.term != nil || r.failed {
		return r.term
	}
	term, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		r.failed = true
		return nil
	}
	r.term = term
	return term
}

// collapse joins non-blank lines with single spaces.
func collapse(text string) string {
	var parts []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(ansi.Strip(line)) == "" {
			continue
		}
		parts = append(parts, strings.TrimSpace(line))
	}
	return strings.Join(parts, " ")
}
