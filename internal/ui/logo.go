package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var logoLines = []string{
	`            __                    __ `,
	`  ___ __ __/ /  ___ ___  ___  ___/ /_`,
	` (_-</ // / _ \(_-</ _ \/ _ \/ _  __/`,
	`/___/\_,_/_.__/___/ .__/\___/\__/\__/ `,
	`                 /_/                  `,
}

// LogoFrame renders a single animated frame.
func LogoFrame(frame int) string {
	lines := make([]string, len(logoLines))
	for i, line := range logoLines {
		color := Palette[(frame+i)%len(Palette)]
		lines[i] = lipgloss.NewStyle().Foreground(color).Render(line)
	}
	return strings.Join(lines, "\n")
}

