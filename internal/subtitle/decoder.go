package subtitle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// State is the field the decoder expects next.
type State int

const (
	ExpectID State = iota
	ExpectTime
	ExpectLines
)

func (s State) String() string {
	switch s {
	case ExpectID:
		return "expect_id"
	case ExpectTime:
		return "expect_time"
	case ExpectLines:
		return "expect_lines"
	default:
		return "unknown"
	}
}

// Decoder is an immutable decoding state. Step returns the next value and
// never modifies the receiver, so any intermediate state can be reused.
type Decoder struct {
	state  State
	lineNo int
	id     int
	hasID  bool
	begin  string
	end    string
	lines  []string
}

// Transition is the outcome of feeding one line to a Decoder.
type Transition struct {
	Next Decoder
	// Record is valid only when Emitted is true.
	Record  Record
	Emitted bool
	// Warning carries a non-fatal FieldError.
	Warning error
}

// NewDecoder returns a decoder waiting for the first cue id.
func NewDecoder() Decoder {
	return Decoder{state: ExpectID}
}

// State returns the field expected by the next line.
func (d Decoder) State() State { return d.state }

// LineNumber returns the number of lines consumed so far.
func (d Decoder) LineNumber() int { return d.lineNo }

// Step consumes one raw line, with or without its terminator.
func (d Decoder) Step(raw string) (Transition, error) {
	line := trimTerminator(raw)
	d.lineNo++
	if line == "" {
		return d.closeCue()
	}
	switch d.state {
	case ExpectID:
		next := Decoder{state: ExpectTime, lineNo: d.lineNo}
		id, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			return Transition{Next: next, Warning: &FieldError{Kind: KindUnparseableID, Line: d.lineNo, Text: line}}, nil
		}
		next.id, next.hasID = id, true
		return Transition{Next: next}, nil
	case ExpectTime:
		tokens := strings.Split(normalizeTimestamp(line), " ")
		if len(tokens) != 3 {
			return Transition{Next: d}, &FieldError{Kind: KindMalformedTimeRange, Line: d.lineNo, Text: line}
		}
		d.begin, d.end = tokens[0], tokens[2]
		d.state = ExpectLines
		return Transition{Next: d}, nil
	default:
		// Clip so that appending never writes into a slice shared with
		// an earlier Decoder value.
		d.lines = append(slices.Clip(d.lines), line)
		return Transition{Next: d}, nil
	}
}

// Finish flushes the cue in progress at end of input.
func (d Decoder) Finish() (Transition, error) {
	if d.state == ExpectTime {
		return Transition{Next: d}, &FieldError{Kind: KindMalformedTimeRange, Line: d.lineNo + 1}
	}
	return d.closeCue()
}

func (d Decoder) closeCue() (Transition, error) {
	reset := Decoder{state: ExpectID, lineNo: d.lineNo}
	switch d.state {
	case ExpectID:
		return Transition{Next: reset}, nil
	case ExpectTime:
		return Transition{Next: d}, &FieldError{Kind: KindMalformedTimeRange, Line: d.lineNo}
	}
	if len(d.lines) == 0 {
		return Transition{Next: reset, Warning: &FieldError{Kind: KindEmptyCue, Line: d.lineNo}}, nil
	}
	rec := Record{
		id:    d.id,
		hasID: d.hasID,
		begin: d.begin,
		end:   d.end,
		lines: slices.Clone(d.lines),
	}
	return Transition{Next: reset, Record: rec, Emitted: true}, nil
}

func trimTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// Option configures Decode, DecodeReader and DecodeFile.
type Option func(*options)

type options struct {
	warn func(error)
}

// WithWarningHandler receives every non-fatal FieldError.
func WithWarningHandler(fn func(error)) Option {
	return func(o *options) {
		if fn != nil {
			o.warn = fn
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{warn: func(error) {}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type decodeRun struct {
	dec     Decoder
	opts    options
	records []Record
}

func (r *decodeRun) apply(tr Transition, err error) error {
	if err != nil {
		return err
	}
	if tr.Warning != nil {
		r.opts.warn(tr.Warning)
	}
	if tr.Emitted {
		r.records = append(r.records, tr.Record)
	}
	r.dec = tr.Next
	return nil
}

// Decode converts raw lines into records, in input order.
func Decode(lines []string, opts ...Option) ([]Record, error) {
	run := &decodeRun{dec: NewDecoder(), opts: buildOptions(opts)}
	for _, line := range lines {
		if err := run.apply(run.dec.Step(line)); err != nil {
			return nil, err
		}
	}
	if err := run.apply(run.dec.Finish()); err != nil {
		return nil, err
	}
	return run.records, nil
}

// DecodeReader decodes records from r. A leading byte order mark is dropped.
func DecodeReader(r io.Reader, opts ...Option) ([]Record, error) {
	bomAware := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	br := bufio.NewReader(bomAware)
	run := &decodeRun{dec: NewDecoder(), opts: buildOptions(opts)}
	for {
		line, readErr := br.ReadString('\n')
		if line != "" {
			if err := run.apply(run.dec.Step(line)); err != nil {
				return nil, err
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read subtitles: %w", readErr)
		}
	}
	if err := run.apply(run.dec.Finish()); err != nil {
		return nil, err
	}
	return run.records, nil
}

// DecodeFile opens path and decodes it. The file is closed on every path.
func DecodeFile(path string, opts ...Option) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open subtitles: %w", err)
	}
	defer f.Close()
	records, err := DecodeReader(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}
