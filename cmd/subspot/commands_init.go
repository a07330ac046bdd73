package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/suryansh-23/subspot/internal/config"
	"github.com/suryansh-23/subspot/internal/match"
	"github.com/suryansh-23/subspot/internal/redact"
	"github.com/suryansh-23/subspot/internal/render"
	"github.com/suryansh-23/subspot/internal/sourceset"
	"github.com/suryansh-23/subspot/internal/subtitle"
	"github.com/suryansh-23/subspot/internal/types"
	"github.com/suryansh-23/subspot/internal/ui"
)

func newInitCmd(cfgPath *string) *cobra.Command {
	var useDefaults bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Run the first-time setup wizard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(*cfgPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			cfg := config.DefaultConfig()
			if useDefaults {
				if exists(path) {
					fmt.Fprintf(out, "Config exists, overwriting: %s\n", path)
				}
				return finishInit(out, path, cfg)
			}

			format := string(cfg.Output.Format)
			strategy := string(cfg.Render.Strategy)
			color := string(cfg.Render.Color)
			marker := cfg.Redaction.Marker
			subtitles := ""
			outDir := ""
			overwrite := false

			envNote := huh.NewNote().
				Title("Environment").
				Description(envSummary()).
				Next(true)

			form := huh.NewForm(
				huh.NewGroup(envNote),
				huh.NewGroup(
					huh.NewConfirm().Title("Config exists. Overwrite?").Value(&overwrite),
				).WithHideFunc(func() bool { return !exists(path) }),
				huh.NewGroup(
					huh.NewInput().
						Title("Subtitle files (comma-separated)").
						Description("Searched when no files are passed to subspot search.").
						Value(&subtitles),
				),
				huh.NewGroup(
					huh.NewSelect[string]().Title("Default output").Value(&format).Options(
						huh.NewOption("Overlay text (default)", string(types.FormatText)),
						huh.NewOption("Table", string(types.FormatTable)),
						huh.NewOption("JSON report", string(types.FormatJSON)),
						huh.NewOption("SubRip export", string(types.FormatSRT)),
						huh.NewOption("WebVTT export", string(types.FormatVTT)),
					),
				),
				huh.NewGroup(
					huh.NewSelect[string]().Title("Overlay renderer").Value(&strategy).Options(
						huh.NewOption("Terminal layers (default)", string(types.RenderText)),
						huh.NewOption("Pixel mask PNG frames", string(types.RenderPixel)),
					),
				),
				huh.NewGroup(
					huh.NewInput().Title("Frame output directory").Value(&outDir),
				).WithHideFunc(func() bool { return strategy != string(types.RenderPixel) }),
				huh.NewGroup(
					huh.NewSelect[string]().Title("Colors").Value(&color).Options(
						huh.NewOption("Auto (default)", string(types.ColorAuto)),
						huh.NewOption("Always", string(types.ColorAlways)),
						huh.NewOption("Never", string(types.ColorNever)),
					),
				),
				huh.NewGroup(
					huh.NewInput().Title("Redaction marker").Value(&marker).Validate(func(v string) error {
						probe := config.DefaultConfig()
						probe.Redaction.Marker = v
						if err := probe.Validate(); err != nil {
							return errors.New("enter exactly one visible character")
						}
						return nil
					}),
				),
			).WithTheme(ui.Theme())

			if err := runAnimatedForm(form); err != nil {
				return err
			}
			if exists(path) && !overwrite {
				return errors.New("init cancelled")
			}

			cfg.Output.Format = types.OutputFormat(format)
			cfg.Output.Dir = strings.TrimSpace(outDir)
			cfg.Render.Strategy = types.RenderStrategy(strategy)
			cfg.Render.Color = types.ColorMode(color)
			cfg.Redaction.Marker = marker
			cfg.Sources = sourceset.FromPaths(splitList(subtitles), nil)
			return finishInit(out, path, cfg)
		},
	}
	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "write default config without prompts")
	return cmd
}

func finishInit(out io.Writer, path string, cfg config.Config) error {
	if err := runSelfTest(out, cfg); err != nil {
		return err
	}
	sources, err := absoluteSources(cfg.Sources)
	if err != nil {
		return err
	}
	cfg.Sources = sources
	if err := config.Write(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote config to %s\n", path)
	return nil
}

// absoluteSources anchors paths typed relative to the working directory,
// since Load resolves relative sources against the config file instead.
func absoluteSources(sources []config.Source) ([]config.Source, error) {
	out := make([]config.Source, len(sources))
	for i, src := range sources {
		subtitlePath, err := filepath.Abs(src.Subtitle)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", src.Subtitle, err)
		}
		out[i] = config.Source{Subtitle: subtitlePath}
		if src.Media != "" {
			mediaPath, err := filepath.Abs(src.Media)
			if err != nil {
				return nil, fmt.Errorf("resolve %s: %w", src.Media, err)
			}
			out[i].Media = mediaPath
		}
	}
	return out, nil
}

func splitList(value string) []string {
	var out []string
	for _, entry := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(entry); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// runSelfTest redacts a known cue with the chosen settings and checks that
// only the pattern survives.
func runSelfTest(out io.Writer, cfg config.Config) error {
	lines, raw := config.SelfTestCue()
	pattern := match.NewPattern(raw)
	rec := subtitle.NewRecord(1, "00:00:01.000", "00:00:03.000", lines...)
	overlay, err := redact.NewRedactor(cfg).RedactRecord(rec, pattern)
	if err != nil {
		return fmt.Errorf("self-test failed: %w", err)
	}
	if !strings.EqualFold(overlay.Revealed(), raw) {
		return fmt.Errorf("self-test failed: revealed %q", overlay.Revealed())
	}
	fmt.Fprintln(out, "Self-test output:")
	return render.NewTextLayer(types.ColorNever, false).Render(out, render.Cue{Source: "self-test", Index: 1, Record: rec, Overlay: overlay})
}
