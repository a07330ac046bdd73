package subtitle

import (
	"errors"
	"fmt"
)

var (
	// ErrUnparseableID marks an id line that is not an integer. Non-fatal.
	ErrUnparseableID = errors.New("unparseable cue id")
	// ErrEmptyCue marks a cue that ended before any text line. Non-fatal.
	ErrEmptyCue = errors.New("cue has no text lines")
	// ErrMalformedTimeRange marks a time line that is missing or does not
	// split into begin, separator and end. Fatal for the file.
	ErrMalformedTimeRange = errors.New("malformed time range")
	// ErrInvalidTimestamp is returned when a timestamp cannot be converted.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// Kind classifies a FieldError.
type Kind string

const (
	KindUnparseableID      Kind = "unparseable_id"
	KindEmptyCue           Kind = "empty_cue"
	KindMalformedTimeRange Kind = "malformed_time_range"
)

// FieldError reports a problem with one input line.
type FieldError struct {
	Kind Kind
	Line int
	Text string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Unwrap(), e.Text)
}

// Unwrap returns the sentinel matching Kind.
func (e *FieldError) Unwrap() error {
	switch e.Kind {
	case KindUnparseableID:
		return ErrUnparseableID
	case KindEmptyCue:
		return ErrEmptyCue
	default:
		return ErrMalformedTimeRange
	}
}

// Fatal reports whether the error aborts decoding of the file.
func (e *FieldError) Fatal() bool {
	return e.Kind == KindMalformedTimeRange
}
