package redact

import "strings"

// CellKind classifies one character position of an Overlay.
type CellKind uint8

const (
	// Structural cells (space, line break) pass through unchanged.
	Structural CellKind = iota
	// Revealed cells took part in the pattern match.
	Revealed
	// Redacted cells are blanked in Visible and marked in Mask.
	Redacted
)

func (k CellKind) String() string {
	switch k {
	case Revealed:
		return "revealed"
	case Redacted:
		return "redacted"
	default:
		return "structural"
	}
}

// Overlay is the aligned triple produced by a Redactor: rune i of Original,
// Visible and Mask always describes the same character position.
type Overlay struct {
	Original string
	Visible  string
	Mask     string
	kinds    []CellKind
}

// Line is one line of an Overlay, split at line breaks.
type Line struct {
	Original string
	Visible  string
	Mask     string
	Kinds    []CellKind
}

// Kinds returns the per-rune classification.
func (o Overlay) Kinds() []CellKind {
	return append([]CellKind(nil), o.kinds...)
}

// Revealed returns the revealed characters in order, in source case.
func (o Overlay) Revealed() string {
	var b strings.Builder
	i := 0
	for _, r := range o.Original {
		if o.kinds[i] == Revealed {
			b.WriteRune(r)
		}
		i++
	}
	return b.String()
}

// RedactedCount returns the number of redacted positions.
func (o Overlay) RedactedCount() int {
	n := 0
	for _, k := range o.kinds {
		if k == Redacted {
			n++
		}
	}
	return n
}

// Lines splits the overlay back into the record's lines.
func (o Overlay) Lines() []Line {
	original := strings.Split(o.Original, "\n")
	visible := strings.Split(o.Visible, "\n")
	mask := strings.Split(o.Mask, "\n")
	out := make([]Line, len(original))
	offset := 0
	for i := range original {
		n := len([]rune(original[i]))
		out[i] = Line{
			Original: original[i],
			Visible:  visible[i],
			Mask:     mask[i],
			Kinds:    append([]CellKind(nil), o.kinds[offset:offset+n]...),
		}
		// skip the line break cell
		offset += n + 1
	}
	return out
}
