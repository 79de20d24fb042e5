package main

import "github.com/charmbracelet/lipgloss"

var (
	colorError = lipgloss.Color("#EF4444") // Red
	colorWarn  = lipgloss.Color("#F59E0B") // Amber
	colorMuted = lipgloss.Color("#6B7280") // Gray

	errorLabelStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	warnLabelStyle = lipgloss.NewStyle().
			Foreground(colorWarn).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	headerStyle = lipgloss.NewStyle().
			Bold(true)
)

// palette renders diagnostics, falling back to plain text without color.
type palette struct {
	color bool
}

func (p palette) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

func (p palette) errorLabel(s string) string { return p.render(errorLabelStyle, s) }
func (p palette) warnLabel(s string) string  { return p.render(warnLabelStyle, s) }
func (p palette) muted(s string) string      { return p.render(mutedStyle, s) }
func (p palette) header(s string) string     { return p.render(headerStyle, s) }
