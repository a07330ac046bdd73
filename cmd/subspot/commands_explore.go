package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/suryansh-23/subspot/internal/library"
	"github.com/suryansh-23/subspot/internal/match"
	"github.com/suryansh-23/subspot/internal/redact"
	"github.com/suryansh-23/subspot/internal/render"
	"github.com/suryansh-23/subspot/internal/ui"
)

func newExploreCmd(state *appState) *cobra.Command {
	var only []string
	cmd := &cobra.Command{
		Use:   "explore [SUBTITLE...]",
		Short: "Try patterns interactively against the same subtitle files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd, state, args, only, promptPattern)
		},
	}
	cmd.Flags().StringArrayVar(&only, "only", nil, "only search subtitle files matching this glob (repeatable)")
	return cmd
}

// promptPattern asks for the next pattern. An empty answer ends the loop.
func promptPattern(previous string) (string, error) {
	pattern := ""
	input := huh.NewInput().
		Title("Pattern").
		Description("Characters to spell, in order. Leave empty to quit.").
		Placeholder(previous).
		Value(&pattern)
	if err := huh.NewForm(huh.NewGroup(input)).WithTheme(ui.Theme()).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(pattern), nil
}

func runExplore(cmd *cobra.Command, state *appState, paths, only []string, prompt func(string) (string, error)) error {
	cfg := state.cfg
	sources, err := resolveSources(cfg, paths, only)
	if err != nil {
		return err
	}
	opts := library.OptionsFromConfig(cfg.Library, state.cache, state.logger)
	renderer, err := render.New(cfg.Render, render.Options{OutDir: cfg.Output.Dir, Terminal: isTerminal(cmd.OutOrStdout())})
	if err != nil {
		return err
	}
	redactor := redact.NewRedactor(cfg)

	previous := ""
	for {
		raw, err := prompt(previous)
		if err != nil {
			return err
		}
		if raw == "" {
			return nil
		}
		files, err := library.Load(cmd.Context(), sources, opts)
		if err != nil {
			return err
		}
		hits, misses := state.cache.Stats()
		state.logger.Debug("subtitle cache", "hits", hits, "misses", misses)
		report := buildReport(files, match.NewPattern(raw), redactor, state.logger)
		if err := writeText(cmd.OutOrStdout(), cmd, report, renderer); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), ui.SummaryLine(report.matchCount(), len(report.Files), report.failed()))
		previous = raw
	}
}
