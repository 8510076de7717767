package ui

import "github.com/charmbracelet/lipgloss"

// Status colors for transfer outcomes; titles share the accent color.
const (
	colorAccent  = "#7D56F4"
	colorAdded   = "#04B575"
	colorFailed  = "#FF5555"
	colorWarning = "#FFA500"
	colorMuted   = "#626262"
)

// Palette is the stylesheet for the transfer TUI, one [lipgloss.Style]
// per semantic role.
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

var styles = Palette{
	title: fg(colorAccent).Bold(true).MarginBottom(1),
	ok:    fg(colorAdded).Bold(true),
	err:   fg(colorFailed).Bold(true),
	warn:  fg(colorWarning),
	help:  fg(colorMuted).Italic(true),
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
