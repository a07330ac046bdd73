package main

import (
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/suryansh-23/subspot/internal/ui"
)

const wizardTagline = "spell it out, one subtitle at a time"

type frameMsg struct{}

// wizardModel wraps a huh form with the animated logo header.
type wizardModel struct {
	form     *huh.Form
	frame    int
	interval time.Duration
	width    int
}

func newWizardModel(form *huh.Form) wizardModel {
	return wizardModel{
		form:     form,
		interval: 160 * time.Millisecond,
	}
}

func (m wizardModel) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), nextFrame(m.interval))
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = (m.frame + 1) % len(ui.Palette)
		return m, nextFrame(m.interval)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.form = m.form.WithWidth(min(msg.Width, 80))
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}
	return m, cmd
}

func (m wizardModel) View() string {
	tagline := lipgloss.NewStyle().Foreground(ui.Muted).Italic(true).Render(wizardTagline)
	return ui.LogoFrame(m.frame) + "\n" + tagline + "\n\n" + m.form.View()
}

func nextFrame(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return frameMsg{} })
}

func runAnimatedForm(form *huh.Form) error {
	if os.Getenv("TERM") == "dumb" || !isTerminal(os.Stderr) {
		return form.Run()
	}

	form.SubmitCmd = tea.Quit
	form.CancelCmd = tea.Interrupt

	p := tea.NewProgram(newWizardModel(form), tea.WithOutput(os.Stderr), tea.WithInput(os.Stdin), tea.WithReportFocus())
	m, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrInterrupted) {
			return huh.ErrUserAborted
		}
		return err
	}
	if wm, ok := m.(wizardModel); ok && wm.form.State == huh.StateAborted {
		return huh.ErrUserAborted
	}
	return nil
}
