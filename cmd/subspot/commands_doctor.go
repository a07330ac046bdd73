package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newDoctorCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Print environment and config diagnostics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.OutOrStdout(), state)
		},
	}
}

func runDoctor(out io.Writer, state *appState) error {
	info := readEnvInfo()
	cfg := state.cfg
	fmt.Fprintf(out, "platform=%s\n", info.platform)
	fmt.Fprintf(out, "term=%s\n", info.term)
	fmt.Fprintf(out, "tty=%t\n", info.tty)
	fmt.Fprintf(out, "no_color=%t\n", info.noColor)
	fmt.Fprintf(out, "size=%dx%d\n", info.cols, info.rows)
	fmt.Fprintf(out, "config_path=%s\n", state.cfgPath)
	fmt.Fprintf(out, "config_found=%t\n", state.cfgFound)
	fmt.Fprintf(out, "output_format=%s\n", cfg.Output.Format)
	fmt.Fprintf(out, "output_dir=%s\n", cfg.Output.Dir)
	fmt.Fprintf(out, "redaction_marker=%q\n", cfg.Redaction.Marker)
	fmt.Fprintf(out, "redaction_blank=%q\n", cfg.Redaction.Blank)
	fmt.Fprintf(out, "render_strategy=%s\n", cfg.Render.Strategy)
	fmt.Fprintf(out, "render_color=%s\n", cfg.Render.Color)
	fmt.Fprintf(out, "render_frame=%dx%d\n", cfg.Render.Frame.Width, cfg.Render.Frame.Height)
	fmt.Fprintf(out, "library_parallelism=%d\n", cfg.Library.Parallelism)
	fmt.Fprintf(out, "cache_ttl_seconds=%d\n", cfg.Library.CacheTTLSeconds)
	fmt.Fprintf(out, "cache_entries=%d\n", cfg.Library.CacheEntries)
	fmt.Fprintf(out, "log=%s/%s\n", cfg.Log.Level, cfg.Log.Format)
	fmt.Fprintf(out, "sources=%d\n", len(cfg.Sources))
	for i, src := range cfg.Sources {
		fmt.Fprintf(out, "source[%d]=%s subtitle_ok=%t", i, src.Subtitle, exists(src.Subtitle))
		if src.Media != "" {
			fmt.Fprintf(out, " media_ok=%t", mediaExists(src.Media))
		}
		fmt.Fprintln(out)
	}
	return nil
}

func mediaExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
