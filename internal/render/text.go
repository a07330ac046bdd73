package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/suryansh-23/subspot/internal/redact"
	"github.com/suryansh-23/subspot/internal/types"
	"github.com/suryansh-23/subspot/internal/ui"
)

// TextLayer prints each overlay line as the visible layer followed by the
// mask layer, aligned column for column.
type TextLayer struct {
	renderer *lipgloss.Renderer
	plain    bool
	reveal   lipgloss.Style
	mask     lipgloss.Style
}

// NewTextLayer builds a text renderer. terminal is consulted for ColorAuto.
func NewTextLayer(mode types.ColorMode, terminal bool) *TextLayer {
	profile := colorProfile(mode, terminal)
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	return &TextLayer{
		renderer: r,
		plain:    profile == termenv.Ascii,
		reveal:   r.NewStyle().Inherit(ui.RevealStyle()),
		mask:     r.NewStyle().Inherit(ui.MaskStyle()),
	}
}

func colorProfile(mode types.ColorMode, terminal bool) termenv.Profile {
	switch mode {
	case types.ColorAlways:
		return termenv.ANSI256
	case types.ColorNever:
		return termenv.Ascii
	}
	if terminal {
		return termenv.EnvColorProfile()
	}
	return termenv.Ascii
}

// Render writes the two layers of every line of the cue.
func (t *TextLayer) Render(w io.Writer, cue Cue) error {
	bw := bufio.NewWriter(w)
	for _, line := range cue.Overlay.Lines() {
		bw.WriteString(t.visible(line))
		bw.WriteByte('\n')
		bw.WriteString(t.maskLine(line))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func (t *TextLayer) visible(line redact.Line) string {
	if t.plain {
		return line.Visible
	}
	var b strings.Builder
	var run strings.Builder
	i := 0
	for _, r := range line.Visible {
		if line.Kinds[i] == redact.Revealed {
			run.WriteRune(r)
		} else {
			if run.Len() > 0 {
				b.WriteString(t.reveal.Render(run.String()))
				run.Reset()
			}
			b.WriteRune(r)
		}
		i++
	}
	if run.Len() > 0 {
		b.WriteString(t.reveal.Render(run.String()))
	}
	return b.String()
}

func (t *TextLayer) maskLine(line redact.Line) string {
	if t.plain || strings.TrimSpace(line.Mask) == "" {
		return line.Mask
	}
	return t.mask.Render(line.Mask)
}
