package ui

import "github.com/charmbracelet/lipgloss"

const (
	colorAmber  = "#FBBF24"
	colorYellow = "#FDE047"
	colorOrange = "#FB923C"
	colorViolet = "#A78BFA"
	colorPink   = "#F472B6"
	colorRose   = "#FB7185"
	colorMuted  = "#94A3B8"
	colorSlate  = "#334155"
)

var (
	Primary   = lipgloss.Color(colorAmber)
	Secondary = lipgloss.Color(colorViolet)
	Accent    = lipgloss.Color(colorPink)
	Muted     = lipgloss.Color(colorMuted)
	Shade     = lipgloss.Color(colorSlate)
	Palette   = []lipgloss.Color{Primary, lipgloss.Color(colorYellow), lipgloss.Color(colorOrange), Secondary, Accent, lipgloss.Color(colorRose)}
)

// RevealStyle highlights revealed characters.
func RevealStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Primary).Bold(true)
}

// MaskStyle draws redaction markers.
func MaskStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Shade)
}

// HeaderStyle draws per-file and per-cue headers.
func HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Secondary).Bold(true)
}

// ErrorStyle draws per-file failures.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(colorRose))
}
