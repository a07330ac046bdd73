package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suryansh-23/subspot/internal/library"
	"github.com/suryansh-23/subspot/internal/match"
	"github.com/suryansh-23/subspot/internal/redact"
	"github.com/suryansh-23/subspot/internal/render"
	"github.com/suryansh-23/subspot/internal/types"
	"github.com/suryansh-23/subspot/internal/ui"
)

type searchFlags struct {
	format string
	render string
	outDir string
	only   []string
}

func newSearchCmd(state *appState) *cobra.Command {
	var flags searchFlags
	cmd := &cobra.Command{
		Use:   "search PATTERN [SUBTITLE...]",
		Short: "Find cues whose text contains PATTERN as a subsequence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, state, args[0], args[1:], flags)
		},
	}
	cmd.Flags().StringVar(&flags.format, "format", "", "output format (text|table|json|srt|vtt)")
	cmd.Flags().StringVar(&flags.render, "render", "", "overlay renderer (text|pixel)")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "directory for frames and exported subtitles")
	cmd.Flags().StringArrayVar(&flags.only, "only", nil, "only search subtitle files matching this glob (repeatable)")
	return cmd
}

func runSearch(cmd *cobra.Command, state *appState, rawPattern string, paths []string, flags searchFlags) error {
	cfg := state.cfg
	if flags.format != "" {
		cfg.Output.Format = types.OutputFormat(flags.format)
	}
	if flags.render != "" {
		cfg.Render.Strategy = types.RenderStrategy(flags.render)
	}
	if flags.outDir != "" {
		cfg.Output.Dir = flags.outDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sources, err := resolveSources(cfg, paths, flags.only)
	if err != nil {
		return err
	}
	format := cfg.Output.Format
	if (format == types.FormatSRT || format == types.FormatVTT) && cfg.Output.Dir == "" && len(sources) > 1 {
		return fmt.Errorf("--out-dir is required to export %d subtitle files", len(sources))
	}

	files, err := library.Load(cmd.Context(), sources, library.OptionsFromConfig(cfg.Library, state.cache, state.logger))
	if err != nil {
		return err
	}
	pattern := match.NewPattern(rawPattern)
	report := buildReport(files, pattern, redact.NewRedactor(cfg), state.logger)

	out := cmd.OutOrStdout()
	switch format {
	case types.FormatJSON:
		if err := writeJSON(cmd, report); err != nil {
			return err
		}
	case types.FormatTable:
		writeTable(out, cmd, report)
	case types.FormatSRT, types.FormatVTT:
		if err := writeExports(out, cmd, &report, format, cfg.Output.Dir); err != nil {
			return err
		}
	default:
		renderer, err := render.New(cfg.Render, render.Options{OutDir: cfg.Output.Dir, Terminal: isTerminal(out)})
		if err != nil {
			return err
		}
		if err := writeText(out, cmd, report, renderer); err != nil {
			return err
		}
	}

	if format == types.FormatText || format == types.FormatTable {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.SummaryLine(report.matchCount(), len(report.Files), report.failed()))
	}
	if report.failed() > 0 {
		return &exitCodeError{code: 1}
	}
	return nil
}
