package ui

import "github.com/charmbracelet/lipgloss"

// Formatter styles terminal output. With color disabled every method
// returns its input decorated only with plain status markers.
type Formatter struct {
	color   bool
	header  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	muted   lipgloss.Style
}

// NewFormatter creates a formatter. noColor disables all styling.
func NewFormatter(noColor bool) *Formatter {
	return &Formatter{
		color:   !noColor,
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Header renders a section heading.
func (f *Formatter) Header(s string) string {
	if !f.color {
		return "== " + s + " =="
	}
	return f.header.Render(s)
}

// Success renders a success line.
func (f *Formatter) Success(s string) string {
	if !f.color {
		return "OK " + s
	}
	return f.success.Render("✓ " + s)
}

// Error renders a failure line.
func (f *Formatter) Error(s string) string {
	if !f.color {
		return "ERROR " + s
	}
	return f.failure.Render("✗ " + s)
}

// Warning renders a warning line.
func (f *Formatter) Warning(s string) string {
	if !f.color {
		return "WARN " + s
	}
	return f.warning.Render("! " + s)
}

// Info renders an informational line.
func (f *Formatter) Info(s string) string {
	if !f.color {
		return s
	}
	return f.info.Render(s)
}

// Muted renders de-emphasized detail text.
func (f *Formatter) Muted(s string) string {
	if !f.color {
		return s
	}
	return f.muted.Render(s)
}
