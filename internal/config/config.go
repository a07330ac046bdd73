package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/suryansh-23/subspot/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigVersion = 1
	defaultConfigRelPath = "subspot/config.yaml"
	DefaultMarker        = "█"
	DefaultBlank         = " "
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the top-level configuration schema.
type Config struct {
	Version int `yaml:"version"`

	Sources   []Source  `yaml:"sources,omitempty"`
	Output    Output    `yaml:"output"`
	Redaction Redaction `yaml:"redaction"`
	Render    Render    `yaml:"render"`
	Library   Library   `yaml:"library"`
	Log       Log       `yaml:"log"`
}

// Source pairs a subtitle file with the media it belongs to.
type Source struct {
	Subtitle string `yaml:"subtitle"`
	Media    string `yaml:"media,omitempty"`
}

// Output configures result formatting.
type Output struct {
	Format types.OutputFormat `yaml:"format"`
	Dir    string             `yaml:"dir,omitempty"`
}

// Redaction configures overlay characters.
type Redaction struct {
	Marker string `yaml:"marker"`
	Blank  string `yaml:"blank"`
}

// Render configures the overlay rendering adapter.
type Render struct {
	Strategy    types.RenderStrategy `yaml:"strategy"`
	Color       types.ColorMode      `yaml:"color"`
	Frame       Frame                `yaml:"frame"`
	CharWidth   int                  `yaml:"char_width"`
	LineHeight  int                  `yaml:"line_height"`
	LineSpacing int                  `yaml:"line_spacing"`
	// Baseline is the y of the first line; 0 means three quarters of the
	// frame height.
	Baseline int `yaml:"baseline,omitempty"`
}

// Frame is the pixel geometry of the target video.
type Frame struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Library configures subtitle loading.
type Library struct {
	Parallelism     int `yaml:"parallelism"`
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
	CacheEntries    int `yaml:"cache_entries"`
}

// Log configures structured logging.
type Log struct {
	Level  string          `yaml:"level"`
	Format types.LogFormat `yaml:"format"`
}

// DefaultConfig returns the canonical default configuration.
func DefaultConfig() Config {
	return Config{
		Version: DefaultConfigVersion,
		Output: Output{
			Format: types.FormatText,
		},
		Redaction: Redaction{
			Marker: DefaultMarker,
			Blank:  DefaultBlank,
		},
		Render: Render{
			Strategy:    types.RenderText,
			Color:       types.ColorAuto,
			Frame:       Frame{Width: 1920, Height: 816},
			CharWidth:   40,
			LineHeight:  50,
			LineSpacing: 100,
		},
		Library: Library{
			Parallelism:     4,
			CacheTTLSeconds: 300,
			CacheEntries:    32,
		},
		Log: Log{
			Level:  "info",
			Format: types.LogConsole,
		},
	}
}

// DefaultPath returns the default config path.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, defaultConfigRelPath), nil
	}
	return filepath.Join(home, ".config", defaultConfigRelPath), nil
}

// Parse parses YAML config content, applying defaults.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads config from disk, applying defaults when missing.
// The boolean return indicates whether a config file was found.
func Load(pathOverride string) (Config, bool, error) {
	path := strings.TrimSpace(pathOverride)
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return Config{}, false, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := DefaultConfig()
			if err := cfg.Validate(); err != nil {
				return Config{}, false, err
			}
			return cfg, false, nil
		}
		return Config{}, false, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, true, err
	}
	cfg.resolveSources(filepath.Dir(path))
	return cfg, true, nil
}

// resolveSources makes relative source paths relative to the config file.
func (c *Config) resolveSources(base string) {
	for i := range c.Sources {
		if p := c.Sources[i].Subtitle; p != "" && !filepath.IsAbs(p) {
			c.Sources[i].Subtitle = filepath.Join(base, p)
		}
		if p := c.Sources[i].Media; p != "" && !filepath.IsAbs(p) {
			c.Sources[i].Media = filepath.Join(base, p)
		}
	}
}

// Validate enforces the supported configuration schema.
func (c Config) Validate() error {
	var errs []string
	if c.Version != DefaultConfigVersion {
		errs = append(errs, fmt.Sprintf("version must be %d", DefaultConfigVersion))
	}
	for i, src := range c.Sources {
		if strings.TrimSpace(src.Subtitle) == "" {
			errs = append(errs, fmt.Sprintf("sources[%d].subtitle is required", i))
		}
	}
	if !validOutputFormat(c.Output.Format) {
		errs = append(errs, "output.format must be text|table|json|srt|vtt")
	}
	if msg := validCell("redaction.marker", c.Redaction.Marker, false); msg != "" {
		errs = append(errs, msg)
	}
	if msg := validCell("redaction.blank", c.Redaction.Blank, true); msg != "" {
		errs = append(errs, msg)
	}
	if !validStrategy(c.Render.Strategy) {
		errs = append(errs, "render.strategy must be text|pixel")
	}
	if !validColorMode(c.Render.Color) {
		errs = append(errs, "render.color must be auto|always|never")
	}
	if c.Render.Frame.Width <= 0 || c.Render.Frame.Height <= 0 {
		errs = append(errs, "render.frame width and height must be > 0")
	}
	if c.Render.CharWidth <= 0 {
		errs = append(errs, "render.char_width must be > 0")
	}
	if c.Render.LineHeight <= 0 {
		errs = append(errs, "render.line_height must be > 0")
	}
	if c.Render.LineSpacing < 0 {
		errs = append(errs, "render.line_spacing must be >= 0")
	}
	if c.Render.Baseline < 0 || c.Render.Baseline > c.Render.Frame.Height {
		errs = append(errs, "render.baseline must be within the frame")
	}
	if c.Library.Parallelism < 1 {
		errs = append(errs, "library.parallelism must be >= 1")
	}
	if c.Library.CacheTTLSeconds < 0 {
		errs = append(errs, "library.cache_ttl_seconds must be >= 0")
	}
	if c.Library.CacheEntries < 0 {
		errs = append(errs, "library.cache_entries must be >= 0")
	}
	if !validLogLevel(c.Log.Level) {
		errs = append(errs, "log.level must be debug|info|warn|error")
	}
	if !validLogFormat(c.Log.Format) {
		errs = append(errs, "log.format must be console|json")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}

// ValidGlob reports whether pattern is a well-formed source filter.
func ValidGlob(pattern string) bool {
	_, err := path.Match(pattern, "dummy")
	return err == nil
}

func validCell(field, value string, allowSpace bool) string {
	if utf8.RuneCountInString(value) != 1 {
		return fmt.Sprintf("%s must be exactly one character", field)
	}
	r, _ := utf8.DecodeRuneInString(value)
	if r == '\n' || r == '\r' || (!allowSpace && r == ' ') {
		return fmt.Sprintf("%s must not be a structural character", field)
	}
	return ""
}

func validOutputFormat(format types.OutputFormat) bool {
	switch format {
	case types.FormatText, types.FormatTable, types.FormatJSON, types.FormatSRT, types.FormatVTT:
		return true
	default:
		return false
	}
}

func validStrategy(strategy types.RenderStrategy) bool {
	switch strategy {
	case types.RenderText, types.RenderPixel:
		return true
	default:
		return false
	}
}

func validColorMode(mode types.ColorMode) bool {
	switch mode {
	case types.ColorAuto, types.ColorAlways, types.ColorNever:
		return true
	default:
		return false
	}
}

func validLogLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func validLogFormat(format types.LogFormat) bool {
	switch format {
	case types.LogConsole, types.LogJSON:
		return true
	default:
		return false
	}
}
