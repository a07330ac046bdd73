package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/asticode/go-astisub"
	"github.com/suryansh-23/subspot/internal/subtitle"
	"github.com/suryansh-23/subspot/internal/types"
)

// Subtitles converts records to an astisub document. Each record line
// becomes one subtitle line.
func Subtitles(records []subtitle.Record) (*astisub.Subtitles, error) {
	subs := astisub.NewSubtitles()
	for i, rec := range records {
		begin, err := rec.BeginDuration()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		end, err := rec.EndDuration()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		item := &astisub.Item{
			Index:   i + 1,
			StartAt: begin,
			EndAt:   end,
		}
		if id, ok := rec.ID(); ok {
			item.Index = id
		}
		for _, line := range rec.Lines() {
			item.Lines = append(item.Lines, astisub.Line{Items: []astisub.LineItem{{Text: line}}})
		}
		subs.Items = append(subs.Items, item)
	}
	return subs, nil
}

// WriteSRT writes records as SubRip. Nothing is written for zero records.
func WriteSRT(w io.Writer, records []subtitle.Record) error {
	if len(records) == 0 {
		return nil
	}
	subs, err := Subtitles(records)
	if err != nil {
		return err
	}
	if err := subs.WriteToSRT(w); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

// WriteVTT writes records as WebVTT. Nothing is written for zero records.
func WriteVTT(w io.Writer, records []subtitle.Record) error {
	if len(records) == 0 {
		return nil
	}
	subs, err := Subtitles(records)
	if err != nil {
		return err
	}
	if err := subs.WriteToWebVTT(w); err != nil {
		return fmt.Errorf("write vtt: %w", err)
	}
	return nil
}

// Write dispatches on an export format.
func Write(w io.Writer, format types.OutputFormat, records []subtitle.Record) error {
	switch format {
	case types.FormatSRT:
		return WriteSRT(w, records)
	case types.FormatVTT:
		return WriteVTT(w, records)
	default:
		return fmt.Errorf("export: unsupported format %q", format)
	}
}

// FileName names the export of subtitlePath, e.g. movie.srt -> movie.matches.vtt.
func FileName(subtitlePath string, format types.OutputFormat) string {
	base := filepath.Base(subtitlePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + ".matches." + string(format)
}
