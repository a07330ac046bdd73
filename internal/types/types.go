package types

// RenderStrategy selects the overlay rendering adapter.
type RenderStrategy string

const (
	RenderText  RenderStrategy = "text"
	RenderPixel RenderStrategy = "pixel"
)

// OutputFormat controls how search results are written.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatSRT   OutputFormat = "srt"
	FormatVTT   OutputFormat = "vtt"
)

// ColorMode controls ANSI styling of terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogConsole LogFormat = "console"
	LogJSON    LogFormat = "json"
)
