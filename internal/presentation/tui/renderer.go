package tui

import (
	"github.com/charmbracelet/glamour"
)

// Renderer turns markdown into terminal output.
type Renderer func(markdown string) (string, error)

// NewRenderer returns a glamour renderer that adapts to the terminal
// background. wrap sets the word-wrap width; zero keeps glamour's default.
func NewRenderer(wrap int) (Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if wrap > 0 {
		opts = append(opts, glamour.WithWordWrap(wrap))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}

// Plain returns markdown untouched. Used when stdout is not a terminal.
func Plain(markdown string) (string, error) {
	return markdown, nil
}
