package render

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/suryansh-23/subspot/internal/config"
	"github.com/suryansh-23/subspot/internal/match"
	"github.com/suryansh-23/subspot/internal/redact"
	"github.com/suryansh-23/subspot/internal/subtitle"
	"github.com/suryansh-23/subspot/internal/types"
)

func sampleCue(t *testing.T) Cue {
	t.Helper()
	rec := subtitle.NewRecord(7, "00:00:01.000", "00:00:02.000", "I have a bad feeling", "about this.")
	overlay, err := redact.NewRedactor(config.DefaultConfig()).RedactRecord(rec, match.NewPattern("bat"))
	if err != nil {
		t.Fatalf("redact: %v", err)
	}
	return Cue{Source: "/srv/subs/4.A.New.Hope.srt", Index: 2, Record: rec, Overlay: overlay}
}

func TestTextLayerPlain(t *testing.T) {
	cue := sampleCue(t)
	var buf bytes.Buffer
	if err := NewTextLayer(types.ColorNever, true).Render(&buf, cue); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %q", lines)
	}
	want := cue.Overlay.Lines()
	if lines[0] != want[0].Visible || lines[1] != want[0].Mask {
		t.Fatalf("first line pair = %q / %q", lines[0], lines[1])
	}
	if lines[2] != want[1].Visible || lines[3] != want[1].Mask {
		t.Fatalf("second line pair = %q / %q", lines[2], lines[3])
	}
}

func TestTextLayerAutoWithoutTerminalIsPlain(t *testing.T) {
	cue := sampleCue(t)
	var buf bytes.Buffer
	if err := NewTextLayer(types.ColorAuto, false).Render(&buf, cue); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("unexpected escape sequences: %q", buf.String())
	}
}

func TestTextLayerColorKeepsVisibleCharacters(t *testing.T) {
	cue := sampleCue(t)
	var buf bytes.Buffer
	if err := NewTextLayer(types.ColorAlways, false).Render(&buf, cue); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected escape sequences: %q", out)
	}
	stripped := stripANSI(out)
	var plain bytes.Buffer
	if err := NewTextLayer(types.ColorNever, false).Render(&plain, cue); err != nil {
		t.Fatalf("render: %v", err)
	}
	if stripped != plain.String() {
		t.Fatalf("stripped = %q, plain = %q", stripped, plain.String())
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			i += 2
			for i < len(s) && (s[i] < 0x40 || s[i] > 0x7e) {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func testPixelMask() *PixelMask {
	cfg := config.DefaultConfig().Render
	cfg.Frame = config.Frame{Width: 400, Height: 200}
	cfg.CharWidth = 10
	cfg.LineHeight = 12
	cfg.LineSpacing = 20
	return NewPixelMask(cfg, "")
}

func TestPixelMaskMarksRedactedCells(t *testing.T) {
	cue := sampleCue(t)
	img := testPixelMask().Mask(cue.Overlay)

	opaque := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A != 0 {
				opaque++
			}
		}
	}
	want := cue.Overlay.RedactedCount() * 10 * 12
	if opaque != want {
		t.Fatalf("opaque pixels = %d, want %d", opaque, want)
	}
}

func TestPixelMaskGeometry(t *testing.T) {
	rec := subtitle.NewRecord(1, "00:00:01.000", "00:00:02.000", "ab")
	overlay, err := redact.Redact(rec.Lines(), match.NewPattern("b"))
	if err != nil {
		t.Fatalf("redact: %v", err)
	}
	img := testPixelMask().Mask(overlay)
	// line width 20 centred in 400 starts at x=190; baseline 150.
	if img.RGBAAt(190, 149).A == 0 || img.RGBAAt(199, 138).A == 0 {
		t.Fatalf("redacted cell not filled")
	}
	if img.RGBAAt(190, 150).A != 0 || img.RGBAAt(190, 137).A != 0 {
		t.Fatalf("fill leaked outside the cell")
	}
	if img.RGBAAt(200, 149).A != 0 {
		t.Fatalf("revealed cell was filled")
	}
}

func TestPixelMaskRenderWritesPNG(t *testing.T) {
	cue := sampleCue(t)
	p := testPixelMask()
	p.Dir = filepath.Join(t.TempDir(), "frames")

	var buf bytes.Buffer
	if err := p.Render(&buf, cue); err != nil {
		t.Fatalf("render: %v", err)
	}
	path := filepath.Join(p.Dir, "frame-4.A.New.Hope-2.png")
	if !strings.Contains(buf.String(), path) {
		t.Fatalf("output = %q", buf.String())
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open frame: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 200 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}

func TestNewSelectsStrategy(t *testing.T) {
	cfg := config.DefaultConfig().Render
	r, err := New(cfg, Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := r.(*TextLayer); !ok {
		t.Fatalf("renderer = %T", r)
	}
	cfg.Strategy = types.RenderPixel
	r, err = New(cfg, Options{OutDir: "out"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if pm, ok := r.(*PixelMask); !ok || pm.Dir != "out" {
		t.Fatalf("renderer = %#v", r)
	}
	cfg.Strategy = "hologram"
	if _, err := New(cfg, Options{}); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestFrameNamesAvoidCollisions(t *testing.T) {
	names := SourceNames([]string{"/a/hope.srt", "/b/hope.srt", "/c/empire.vtt"})
	want := []string{"hope.1", "hope.2", "empire"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %q, want %q", names, want)
		}
	}
	if got := FrameName(Cue{Source: "/b/hope.srt", Name: names[1], Index: 3}); got != "frame-hope.2-3.png" {
		t.Fatalf("frame name = %q", got)
	}
	if got := FrameName(Cue{Source: "/c/empire.vtt", Index: 1}); got != "frame-empire-1.png" {
		t.Fatalf("frame name = %q", got)
	}
}
