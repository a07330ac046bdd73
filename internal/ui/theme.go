package ui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Theme returns the subspot form theme.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Form.Base = t.Form.Base.PaddingLeft(1)
	t.Group.Title = HeaderStyle()
	t.Group.Description = lipgloss.NewStyle().Foreground(Muted)

	t.Focused.Title = RevealStyle()
	t.Focused.Description = lipgloss.NewStyle().Foreground(Muted)
	t.Focused.ErrorMessage = ErrorStyle()
	t.Focused.ErrorIndicator = ErrorStyle().SetString(" *")

	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(Primary).SetString("› ")
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(Primary)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(Primary).SetString("› ")
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(Accent)
	t.Focused.TextInput.Placeholder = MaskStyle()

	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(Primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(Primary).Background(lipgloss.Color("0"))

	t.Blurred.Title = lipgloss.NewStyle().Foreground(Muted)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(Muted)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(Muted).SetString("  ")

	t.Focused.NoteTitle = HeaderStyle()
	return t
}
