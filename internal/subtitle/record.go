package subtitle

import (
	"slices"
	"strings"
	"time"
)

// Record is one finalized subtitle entry.
type Record struct {
	id    int
	hasID bool
	begin string
	end   string
	lines []string
}

// NewRecord builds a record with an id. Lines are copied.
func NewRecord(id int, begin, end string, lines ...string) Record {
	return Record{id: id, hasID: true, begin: begin, end: end, lines: append([]string(nil), lines...)}
}

// NewRecordWithoutID builds a record whose id line could not be parsed.
func NewRecordWithoutID(begin, end string, lines ...string) Record {
	return Record{begin: begin, end: end, lines: append([]string(nil), lines...)}
}

// ID returns the cue id and whether it was parsed.
func (r Record) ID() (int, bool) {
	return r.id, r.hasID
}

// Begin returns the normalized start timestamp (HH:MM:SS.mmm).
func (r Record) Begin() string { return r.begin }

// End returns the normalized end timestamp (HH:MM:SS.mmm).
func (r Record) End() string { return r.end }

// Lines returns a copy of the text lines, top to bottom.
func (r Record) Lines() []string {
	return append([]string(nil), r.lines...)
}

// Text concatenates all lines without separators.
func (r Record) Text() string {
	return strings.Join(r.lines, "")
}

// BeginDuration parses Begin as an offset from the start of the media.
func (r Record) BeginDuration() (time.Duration, error) {
	return ParseTimestamp(r.begin)
}

// EndDuration parses End as an offset from the start of the media.
func (r Record) EndDuration() (time.Duration, error) {
	return ParseTimestamp(r.end)
}

// Equal reports whether two records carry identical fields.
func (r Record) Equal(other Record) bool {
	return r.id == other.id &&
		r.hasID == other.hasID &&
		r.begin == other.begin &&
		r.end == other.end &&
		slices.Equal(r.lines, other.lines)
}
