package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/suryansh-23/subspot/internal/config"
	"github.com/suryansh-23/subspot/internal/export"
	"github.com/suryansh-23/subspot/internal/library"
	"github.com/suryansh-23/subspot/internal/match"
	"github.com/suryansh-23/subspot/internal/redact"
	"github.com/suryansh-23/subspot/internal/render"
	"github.com/suryansh-23/subspot/internal/sourceset"
	"github.com/suryansh-23/subspot/internal/subtitle"
	"github.com/suryansh-23/subspot/internal/types"
)

type searchReport struct {
	Pattern string       `json:"pattern"`
	Files   []fileReport `json:"files"`
}

type fileReport struct {
	Subtitle string        `json:"subtitle"`
	Media    string        `json:"media,omitempty"`
	Error    string        `json:"error,omitempty"`
	Matches  []matchReport `json:"matches"`

	err  error
	cues []render.Cue
}

type matchReport struct {
	ID      *int     `json:"id"`
	Begin   string   `json:"begin"`
	End     string   `json:"end"`
	Lines   []string `json:"lines"`
	Visible string   `json:"visible"`
	Mask    string   `json:"mask"`
}

func (r searchReport) matchCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Matches)
	}
	return n
}

func (r searchReport) failed() int {
	n := 0
	for _, f := range r.Files {
		if f.err != nil {
			n++
		}
	}
	return n
}

// resolveSources turns CLI paths, or the configured sources when none are
// given, into the filtered list to search.
func resolveSources(cfg config.Config, paths, only []string) ([]config.Source, error) {
	sources := cfg.Sources
	if len(paths) > 0 {
		media := make([]string, 0, len(cfg.Sources))
		for _, src := range cfg.Sources {
			if src.Media != "" {
				media = append(media, src.Media)
			}
		}
		sources = sourceset.FromPaths(paths, media)
	}
	for _, glob := range only {
		if !config.ValidGlob(glob) {
			return nil, fmt.Errorf("invalid --only pattern %q", glob)
		}
	}
	filtered, err := sourceset.Filter(sources, only)
	if err != nil {
		return nil, err
	}
	if len(filtered) == 0 {
		return nil, errors.New("no subtitle sources; pass subtitle files or add sources to the config")
	}
	return filtered, nil
}

// buildReport searches every loaded file and computes an overlay per match.
func buildReport(files []library.File, pattern match.Pattern, redactor *redact.Redactor, logger *slog.Logger) searchReport {
	report := searchReport{Pattern: pattern.String(), Files: make([]fileReport, 0, len(files))}
	paths := make([]string, len(files))
	for i, file := range files {
		paths[i] = file.Subtitle
	}
	names := render.SourceNames(paths)
	for n, file := range files {
		fr := fileReport{Subtitle: file.Subtitle, Media: file.Media, Matches: []matchReport{}}
		if file.Err != nil {
			fr.fail(file.Err)
			report.Files = append(report.Files, fr)
			continue
		}
		for i, rec := range match.Search(file.Records, pattern) {
			overlay, err := redactor.RedactRecord(rec, pattern)
			if err != nil {
				logger.Warn("overlay incomplete", "file", file.Subtitle, "error", err)
			}
			fr.cues = append(fr.cues, render.Cue{Source: file.Subtitle, Name: names[n], Index: i + 1, Record: rec, Overlay: overlay})
			fr.Matches = append(fr.Matches, newMatchReport(rec, overlay))
		}
		logger.Debug("file searched", "file", file.Subtitle, "records", len(file.Records), "matches", len(fr.Matches))
		report.Files = append(report.Files, fr)
	}
	return report
}

func (f *fileReport) fail(err error) {
	f.err = err
	f.Error = err.Error()
}

func newMatchReport(rec subtitle.Record, overlay redact.Overlay) matchReport {
	m := matchReport{
		Begin:   rec.Begin(),
		End:     rec.End(),
		Lines:   rec.Lines(),
		Visible: overlay.Visible,
		Mask:    overlay.Mask,
	}
	if id, ok := rec.ID(); ok {
		m.ID = &id
	}
	return m
}

func writeText(out io.Writer, cmd *cobra.Command, report searchReport, renderer render.Renderer) error {
	for i, file := range report.Files {
		if file.err != nil {
			printFileError(cmd, file.err)
			continue
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		header := file.Subtitle
		if file.Media != "" {
			header += " (" + file.Media + ")"
		}
		fmt.Fprintln(out, header)
		for _, cue := range file.cues {
			fmt.Fprintf(out, "#%s %s --> %s\n", cueID(cue.Record), cue.Record.Begin(), cue.Record.End())
			if err := renderer.Render(out, cue); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTable(out io.Writer, cmd *cobra.Command, report searchReport) {
	var rows [][]string
	for _, file := range report.Files {
		if file.err != nil {
			printFileError(cmd, file.err)
			continue
		}
		for _, cue := range file.cues {
			rows = append(rows, []string{
				filepath.Base(file.Subtitle),
				cueID(cue.Record),
				cue.Record.Begin(),
				cue.Record.End(),
				strings.Join(cue.Record.Lines(), " / "),
			})
		}
	}
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(out, renderTable(matchColumns, rows))
}

// writeExports writes one export per file. A file that fails to export is
// marked failed on the report and the remaining files are still written.
func writeExports(out io.Writer, cmd *cobra.Command, report *searchReport, format types.OutputFormat, dir string) error {
	for i := range report.Files {
		file := &report.Files[i]
		if file.err != nil {
			printFileError(cmd, file.err)
			continue
		}
		records := make([]subtitle.Record, len(file.cues))
		for j, cue := range file.cues {
			records[j] = cue.Record
		}
		if dir == "" {
			if err := export.Write(out, format, records); err != nil {
				file.fail(fmt.Errorf("export %s: %w", file.Subtitle, err))
				printFileError(cmd, file.err)
			}
			continue
		}
		if len(records) == 0 {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		path := filepath.Join(dir, export.FileName(file.Subtitle, format))
		if err := writeExportFile(path, format, records); err != nil {
			file.fail(fmt.Errorf("export %s: %w", file.Subtitle, err))
			printFileError(cmd, file.err)
			continue
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
	}
	return nil
}

// writeExportFile leaves no partial file behind when encoding fails.
func writeExportFile(path string, format types.OutputFormat, records []subtitle.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	if err := export.Write(f, format, records); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func cueID(rec subtitle.Record) string {
	if id, ok := rec.ID(); ok {
		return strconv.Itoa(id)
	}
	return "-"
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
