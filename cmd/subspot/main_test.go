package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/suryansh-23/subspot/internal/config"
	"github.com/suryansh-23/subspot/internal/sourceset"
)

const hopeSRT = `1
00:00:01,000 --> 00:00:03,000
I have a bad feeling
about this.

2
00:00:04,000 --> 00:00:05,000
Hello there.

3
00:00:06,000 --> 00:00:08,500
It's a trap!
`

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&appState{})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeSubtitle(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "config.yaml")
}

func TestSearchJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeSubtitle(t, dir, "hope.srt", hopeSRT)

	res := runCLI(t, "--config", missingConfig(t), "search", "bat", path, "--format", "json")
	if res.err != nil {
		t.Fatalf("search: %v (stderr %q)", res.err, res.stderr)
	}
	var report struct {
		Pattern string `json:"pattern"`
		Files   []struct {
			Subtitle string `json:"subtitle"`
			Error    string `json:"error"`
			Matches  []struct {
				ID      *int     `json:"id"`
				Begin   string   `json:"begin"`
				Lines   []string `json:"lines"`
				Visible string   `json:"visible"`
				Mask    string   `json:"mask"`
			} `json:"matches"`
		} `json:"files"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, res.stdout)
	}
	if report.Pattern != "bat" || len(report.Files) != 1 {
		t.Fatalf("report = %+v", report)
	}
	matches := report.Files[0].Matches
	if len(matches) != 1 {
		t.Fatalf("matches = %+v", matches)
	}
	m := matches[0]
	if m.ID == nil || *m.ID != 1 || m.Begin != "00:00:01.000" {
		t.Fatalf("match = %+v", m)
	}
	if len([]rune(m.Visible)) != len([]rune(m.Mask)) {
		t.Fatalf("visible/mask misaligned: %q / %q", m.Visible, m.Mask)
	}
	if !strings.Contains(m.Visible, "\n") {
		t.Fatalf("visible lost its line break: %q", m.Visible)
	}
}

func TestSearchTextRendersLayers(t *testing.T) {
	dir := t.TempDir()
	path := writeSubtitle(t, dir, "hope.srt", hopeSRT)

	res := runCLI(t, "--config", missingConfig(t), "search", "hello", path)
	if res.err != nil {
		t.Fatalf("search: %v", res.err)
	}
	if !strings.Contains(res.stdout, "#2 00:00:04.000 --> 00:00:05.000") {
		t.Fatalf("missing cue header: %q", res.stdout)
	}
	// "Hello" revealed, "there." blanked; the space stays structural.
	if !strings.Contains(res.stdout, "Hello"+strings.Repeat(" ", 7)+"\n") {
		t.Fatalf("missing visible layer: %q", res.stdout)
	}
	if !strings.Contains(res.stdout, strings.Repeat(" ", 6)+strings.Repeat("█", 6)+"\n") {
		t.Fatalf("missing mask layer: %q", res.stdout)
	}
	if !strings.Contains(res.stderr, "subspot: 1 match in 1 file") {
		t.Fatalf("missing summary: %q", res.stderr)
	}
}

func TestSearchIsolatesBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeSubtitle(t, dir, "hope.srt", hopeSRT)
	broken := writeSubtitle(t, dir, "broken.srt", "1\n00:00:01,000\nhello\n")

	res := runCLI(t, "--config", missingConfig(t), "search", "trap", broken, good, "--format", "table")
	var exitErr *exitCodeError
	if !errors.As(res.err, &exitErr) || exitErr.code != 1 {
		t.Fatalf("err = %v", res.err)
	}
	if !strings.Contains(res.stdout, "It's a trap!") {
		t.Fatalf("good file not searched: %q", res.stdout)
	}
	if !strings.Contains(res.stderr, "malformed time range") {
		t.Fatalf("missing file error: %q", res.stderr)
	}
	if !strings.Contains(res.stderr, "(1 failed)") {
		t.Fatalf("missing failure summary: %q", res.stderr)
	}
}

func TestSearchExportsSRT(t *testing.T) {
	dir := t.TempDir()
	path := writeSubtitle(t, dir, "hope.srt", hopeSRT)
	outDir := filepath.Join(dir, "out")

	res := runCLI(t, "--config", missingConfig(t), "search", "ht", path, "--format", "srt", "--out-dir", outDir)
	if res.err != nil {
		t.Fatalf("search: %v", res.err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "hope.matches.srt"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "Hello there.") || strings.Contains(string(data), "trap") {
		t.Fatalf("export = %q", data)
	}
}

func TestSearchPixelFrames(t *testing.T) {
	dir := t.TempDir()
	path := writeSubtitle(t, dir, "hope.srt", hopeSRT)
	outDir := filepath.Join(dir, "frames")

	res := runCLI(t, "--config", missingConfig(t), "search", "trap", path, "--render", "pixel", "--out-dir", outDir)
	if res.err != nil {
		t.Fatalf("search: %v", res.err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "frame-hope-1.png")); err != nil {
		t.Fatalf("frame missing: %v (stdout %q)", err, res.stdout)
	}
}

func TestSearchOnlyFilter(t *testing.T) {
	dir := t.TempDir()
	a := writeSubtitle(t, dir, "a.srt", hopeSRT)
	b := writeSubtitle(t, dir, "b.srt", hopeSRT)

	res := runCLI(t, "--config", missingConfig(t), "search", "trap", a, b, "--only", "b.*", "--format", "json")
	if res.err != nil {
		t.Fatalf("search: %v", res.err)
	}
	if strings.Contains(res.stdout, "a.srt") || !strings.Contains(res.stdout, "b.srt") {
		t.Fatalf("filter not applied: %q", res.stdout)
	}
}

func TestSearchUsesConfiguredSources(t *testing.T) {
	dir := t.TempDir()
	writeSubtitle(t, dir, "hope.srt", hopeSRT)
	cfg := config.DefaultConfig()
	cfg.Sources = []config.Source{{Subtitle: "hope.srt", Media: "hope.mp4"}}
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := config.Write(cfgPath, cfg); err != nil {
		t.Fatalf("write config: %v", err)
	}

	res := runCLI(t, "--config", cfgPath, "search", "trap", "--format", "json")
	if res.err != nil {
		t.Fatalf("search: %v", res.err)
	}
	if !strings.Contains(res.stdout, filepath.Join(dir, "hope.mp4")) {
		t.Fatalf("media not reported: %q", res.stdout)
	}
}

func TestSearchWithoutSources(t *testing.T) {
	res := runCLI(t, "--config", missingConfig(t), "search", "x")
	if res.err == nil || !strings.Contains(res.err.Error(), "no subtitle sources") {
		t.Fatalf("err = %v", res.err)
	}
}

func TestSearchRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeSubtitle(t, dir, "hope.srt", hopeSRT)
	res := runCLI(t, "--config", missingConfig(t), "search", "x", path, "--format", "yaml")
	if !errors.Is(res.err, config.ErrInvalidConfig) {
		t.Fatalf("err = %v", res.err)
	}
}

func TestInitDefaultsWritesConfig(t *testing.T) {
	cfgPath := missingConfig(t)
	res := runCLI(t, "--config", cfgPath, "init", "--defaults")
	if res.err != nil {
		t.Fatalf("init: %v", res.err)
	}
	if !strings.Contains(res.stdout, "Self-test output:") {
		t.Fatalf("missing self-test: %q", res.stdout)
	}
	cfg, found, err := config.Load(cfgPath)
	if err != nil || !found {
		t.Fatalf("load: found=%t err=%v", found, err)
	}
	if cfg.Redaction.Marker != config.DefaultMarker {
		t.Fatalf("marker = %q", cfg.Redaction.Marker)
	}
}

func TestDoctorReportsConfig(t *testing.T) {
	cfgPath := missingConfig(t)
	res := runCLI(t, "--config", cfgPath, "doctor")
	if res.err != nil {
		t.Fatalf("doctor: %v", res.err)
	}
	for _, want := range []string{"config_path=" + cfgPath, "config_found=false", "render_strategy=text", "sources=0"} {
		if !strings.Contains(res.stdout, want) {
			t.Fatalf("missing %q in %q", want, res.stdout)
		}
	}
}

func TestVersionShort(t *testing.T) {
	res := runCLI(t, "--config", missingConfig(t), "version", "--short")
	if res.err != nil {
		t.Fatalf("version: %v", res.err)
	}
	if strings.TrimSpace(res.stdout) == "" {
		t.Fatalf("empty version")
	}
}

func TestExploreLoopsUntilEmptyPattern(t *testing.T) {
	dir := t.TempDir()
	path := writeSubtitle(t, dir, "hope.srt", hopeSRT)

	state := &appState{}
	cmd := newRootCmd(state)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--config", missingConfig(t), "doctor"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("prime state: %v", err)
	}
	stdout.Reset()

	answers := []string{"trap", "hello", ""}
	var seen []string
	prompt := func(previous string) (string, error) {
		seen = append(seen, previous)
		next := answers[0]
		answers = answers[1:]
		return next, nil
	}
	if err := runExplore(cmd, state, []string{path}, nil, prompt); err != nil {
		t.Fatalf("explore: %v", err)
	}
	if len(seen) != 3 || seen[1] != "trap" || seen[2] != "hello" {
		t.Fatalf("prompts = %q", seen)
	}
	if !strings.Contains(stdout.String(), "#3 00:00:06.000 --> 00:00:08.500") || !strings.Contains(stdout.String(), "Hello") {
		t.Fatalf("output = %q", stdout.String())
	}
	if hits, _ := state.cache.Stats(); hits != 1 {
		t.Fatalf("cache hits = %d", hits)
	}
}

func TestSearchExportContinuesPastBadTimestamps(t *testing.T) {
	dir := t.TempDir()
	// Three tokens decode fine, but the timestamps cannot be exported.
	bad := writeSubtitle(t, dir, "a.srt", "1\n0:0:1,5 --> 0:0:2,5\nIt's a trap!\n")
	good := writeSubtitle(t, dir, "b.srt", hopeSRT)
	outDir := filepath.Join(dir, "out")

	res := runCLI(t, "--config", missingConfig(t), "search", "trap", bad, good, "--format", "srt", "--out-dir", outDir)
	var exitErr *exitCodeError
	if !errors.As(res.err, &exitErr) || exitErr.code != 1 {
		t.Fatalf("err = %v", res.err)
	}
	if !strings.Contains(res.stderr, "invalid timestamp") {
		t.Fatalf("missing export error: %q", res.stderr)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "b.matches.srt"))
	if err != nil {
		t.Fatalf("good file not exported: %v", err)
	}
	if !strings.Contains(string(data), "It's a trap!") {
		t.Fatalf("export = %q", data)
	}
	if _, err := os.Stat(filepath.Join(outDir, "a.matches.srt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("partial export left behind: %v", err)
	}
}

func TestInitSourcesResolveFromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeSubtitle(t, dir, "hope.srt", hopeSRT)
	cfgPath := filepath.Join(t.TempDir(), "cfg", "config.yaml")
	t.Chdir(dir)

	cfg := config.DefaultConfig()
	cfg.Sources = sourceset.FromPaths([]string{"hope.srt"}, nil)
	var out bytes.Buffer
	if err := finishInit(&out, cfgPath, cfg); err != nil {
		t.Fatalf("init: %v", err)
	}

	res := runCLI(t, "--config", cfgPath, "search", "trap", "--format", "json")
	if res.err != nil {
		t.Fatalf("search: %v (stdout %q)", res.err, res.stdout)
	}
	if !strings.Contains(res.stdout, "It's a trap!") {
		t.Fatalf("configured source not searched: %q", res.stdout)
	}
}

func TestSearchPixelFramesKeepSameNamedSources(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"one", "two"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	first := writeSubtitle(t, filepath.Join(dir, "one"), "hope.srt", hopeSRT)
	second := writeSubtitle(t, filepath.Join(dir, "two"), "hope.srt", hopeSRT)
	outDir := filepath.Join(dir, "frames")

	res := runCLI(t, "--config", missingConfig(t), "search", "trap", first, second, "--render", "pixel", "--out-dir", outDir)
	if res.err != nil {
		t.Fatalf("search: %v", res.err)
	}
	for _, name := range []string{"frame-hope.1-1.png", "frame-hope.2-1.png"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("frame %s missing: %v (stdout %q)", name, err, res.stdout)
		}
	}
}
