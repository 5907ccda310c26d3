// Package renderer turns wallet accounts into text for a terminal: account
// cards drawn with their accent color, and markdown reports (history,
// summary) that can be printed as is or through Terminal.
package renderer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdown accumulates a markdown report.
type markdown struct {
	strings.Builder
}

// Printf formats according to a format specifier and writes to the report.
func (m *markdown) Printf(format string, args ...any) {
	fmt.Fprintf(m, format, args...)
}

// cell escapes the characters that would break a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// Terminal renders markdown for display in a terminal, wrapping at width
// columns (no wrapping when width is not positive).
func Terminal(md string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("cannot create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("cannot render markdown: %w", err)
	}
	return out, nil
}
