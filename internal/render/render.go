package render

import (
	"fmt"
	"io"

	"github.com/suryansh-23/subspot/internal/config"
	"github.com/suryansh-23/subspot/internal/redact"
	"github.com/suryansh-23/subspot/internal/subtitle"
	"github.com/suryansh-23/subspot/internal/types"
)

// Cue is one matched record together with its overlay.
type Cue struct {
	// Source is the subtitle file the record came from.
	Source string
	// Name distinguishes Source in file names; empty means the source base
	// name without extension.
	Name string
	// Index is the 1-based position of the match within Source.
	Index   int
	Record  subtitle.Record
	Overlay redact.Overlay
}

// Renderer draws the visible and mask layers of a cue.
type Renderer interface {
	Render(w io.Writer, cue Cue) error
}

// Options carries the runtime facts a renderer needs beyond config.
type Options struct {
	// OutDir receives files written by file-producing renderers.
	OutDir string
	// Terminal reports whether the text output is a terminal.
	Terminal bool
}

// New selects the renderer for the configured strategy.
func New(cfg config.Render, opts Options) (Renderer, error) {
	switch cfg.Strategy {
	case types.RenderText, "":
		return NewTextLayer(cfg.Color, opts.Terminal), nil
	case types.RenderPixel:
		return NewPixelMask(cfg, opts.OutDir), nil
	default:
		return nil, fmt.Errorf("render: unsupported strategy %q", cfg.Strategy)
	}
}
