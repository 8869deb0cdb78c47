package shell

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles used for shell output
type Styles struct {
	Dir    lipgloss.Style
	File   lipgloss.Style
	Tag    lipgloss.Style
	Error  lipgloss.Style
	Prompt lipgloss.Style
	Muted  lipgloss.Style
}

// DefaultStyles returns the colored styles rendered for out
func DefaultStyles(out io.Writer) Styles {
	r := lipgloss.NewRenderer(out)
	return Styles{
		Dir:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		File:   r.NewStyle().Foreground(lipgloss.Color("252")),
		Tag:    r.NewStyle().Foreground(lipgloss.Color("240")),
		Error:  r.NewStyle().Foreground(lipgloss.Color("196")),
		Prompt: r.NewStyle().Foreground(lipgloss.Color("245")),
		Muted:  r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// PlainStyles returns styles that render text unchanged
func PlainStyles() Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	plain := r.NewStyle()
	return Styles{
		Dir:    plain,
		File:   plain,
		Tag:    plain,
		Error:  plain,
		Prompt: plain,
		Muted:  plain,
	}
}
