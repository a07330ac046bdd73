package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/suryansh-23/subspot/internal/config"
	"github.com/suryansh-23/subspot/internal/redact"
)

var markColor = color.RGBA{R: 24, G: 24, B: 27, A: 255}

// PixelMask rasterizes the mask layer as a transparent frame where every
// redacted cell is a filled rectangle. Glyph drawing is left to the caller.
type PixelMask struct {
	Width       int
	Height      int
	CharWidth   int
	LineHeight  int
	LineSpacing int
	Baseline    int
	Dir         string
}

// NewPixelMask builds a pixel renderer that writes frames into dir.
func NewPixelMask(cfg config.Render, dir string) *PixelMask {
	return &PixelMask{
		Width:       cfg.Frame.Width,
		Height:      cfg.Frame.Height,
		CharWidth:   cfg.CharWidth,
		LineHeight:  cfg.LineHeight,
		LineSpacing: cfg.LineSpacing,
		Baseline:    cfg.Baseline,
		Dir:         dir,
	}
}

// Mask draws the overlay onto a new frame.
func (p *PixelMask) Mask(overlay redact.Overlay) *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	y := p.Baseline
	if y == 0 {
		y = 3 * p.Height / 4
	}
	for _, line := range overlay.Lines() {
		x := p.Width/2 - utf8.RuneCountInString(line.Original)*p.CharWidth/2
		for _, kind := range line.Kinds {
			if kind == redact.Redacted {
				cell := image.Rect(x, y-p.LineHeight, x+p.CharWidth, y).Intersect(frame.Bounds())
				draw.Draw(frame, cell, image.NewUniform(markColor), image.Point{}, draw.Src)
			}
			x += p.CharWidth
		}
		y += p.LineSpacing
	}
	return frame
}

// Encode writes the frame for overlay as PNG.
func (p *PixelMask) Encode(w io.Writer, overlay redact.Overlay) error {
	if err := png.Encode(w, p.Mask(overlay)); err != nil {
		return fmt.Errorf("encode mask: %w", err)
	}
	return nil
}

// FrameName names the PNG written for a cue.
func FrameName(cue Cue) string {
	name := cue.Name
	if name == "" {
		name = SourceName(cue.Source)
	}
	return fmt.Sprintf("frame-%s-%d.png", name, cue.Index)
}

// SourceName is the subtitle base name without extension.
func SourceName(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SourceNames returns one file name label per source. Sources sharing a base
// name get their 1-based position appended so their frames never collide.
func SourceNames(sources []string) []string {
	counts := make(map[string]int, len(sources))
	for _, src := range sources {
		counts[SourceName(src)]++
	}
	names := make([]string, len(sources))
	for i, src := range sources {
		name := SourceName(src)
		if counts[name] > 1 {
			name = fmt.Sprintf("%s.%d", name, i+1)
		}
		names[i] = name
	}
	return names
}

// Render writes the cue frame into Dir and reports the path on w.
func (p *PixelMask) Render(w io.Writer, cue Cue) error {
	dir := p.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create frame dir: %w", err)
	}
	path := filepath.Join(dir, FrameName(cue))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	if err := p.Encode(f, cue.Overlay); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close frame: %w", err)
	}
	_, err = fmt.Fprintf(w, "wrote %s (%d cells masked)\n", path, cue.Overlay.RedactedCount())
	return err
}
