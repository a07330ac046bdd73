package redact

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/suryansh-23/subspot/internal/config"
	"github.com/suryansh-23/subspot/internal/match"
	"github.com/suryansh-23/subspot/internal/subtitle"
)

// ErrPatternNotMatched is returned when the pattern is not a subsequence of
// the redacted text.
var ErrPatternNotMatched = errors.New("pattern not matched")

// UnmatchedError reports how much of the pattern was consumed.
type UnmatchedError struct {
	Consumed int
	Total    int
}

func (e *UnmatchedError) Error() string {
	return fmt.Sprintf("%s: consumed %d of %d characters", ErrPatternNotMatched, e.Consumed, e.Total)
}

func (e *UnmatchedError) Unwrap() error { return ErrPatternNotMatched }

// Redactor computes spotlight overlays.
type Redactor struct {
	marker rune
	blank  rune
}

// NewRedactor returns a redactor using the configured marker and blank.
func NewRedactor(cfg config.Config) *Redactor {
	return &Redactor{
		marker: firstRune(cfg.Redaction.Marker, config.DefaultMarker),
		blank:  firstRune(cfg.Redaction.Blank, config.DefaultBlank),
	}
}

// Redact joins lines with line breaks and reveals only the characters of the
// greedy match of p. Every other non-structural character is blanked in
// Visible and marked in Mask. If p is not fully consumed the overlay built so
// far is returned together with an *UnmatchedError.
func (r *Redactor) Redact(lines []string, p match.Pattern) (Overlay, error) {
	text := strings.Join(lines, "\n")
	want := significant(p)

	var visible, mask strings.Builder
	visible.Grow(len(text))
	mask.Grow(len(text))
	kinds := make([]CellKind, 0, utf8.RuneCountInString(text))
	cursor := 0
	for _, c := range text {
		switch {
		case isStructural(c):
			visible.WriteRune(c)
			mask.WriteRune(c)
			kinds = append(kinds, Structural)
		case cursor < len(want) && unicode.ToLower(c) == want[cursor]:
			visible.WriteRune(c)
			mask.WriteRune(' ')
			kinds = append(kinds, Revealed)
			cursor++
		default:
			visible.WriteRune(r.blank)
			mask.WriteRune(r.marker)
			kinds = append(kinds, Redacted)
		}
	}
	out := Overlay{Original: text, Visible: visible.String(), Mask: mask.String(), kinds: kinds}
	if cursor < len(want) {
		return out, &UnmatchedError{Consumed: cursor, Total: len(want)}
	}
	return out, nil
}

// RedactRecord redacts a record's lines.
func (r *Redactor) RedactRecord(rec subtitle.Record, p match.Pattern) (Overlay, error) {
	return r.Redact(rec.Lines(), p)
}

// Redact uses the default marker and blank.
func Redact(lines []string, p match.Pattern) (Overlay, error) {
	return NewRedactor(config.DefaultConfig()).Redact(lines, p)
}

// significant drops structural characters, which can never be revealed.
func significant(p match.Pattern) []rune {
	out := make([]rune, 0, p.Len())
	for i := 0; i < p.Len(); i++ {
		if c := p.At(i); !isStructural(c) {
			out = append(out, c)
		}
	}
	return out
}

func isStructural(c rune) bool {
	return c == ' ' || c == '\n'
}

func firstRune(s string, fallback string) rune {
	if s == "" {
		s = fallback
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
