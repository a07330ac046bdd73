package match

import (
	"unicode"

	"github.com/suryansh-23/subspot/internal/subtitle"
)

// Pattern is an immutable, lowercased character sequence. The zero value is
// the empty pattern.
type Pattern struct {
	raw   string
	runes []rune
}

// NewPattern folds s to lowercase rune by rune.
func NewPattern(s string) Pattern {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return Pattern{raw: s, runes: runes}
}

// String returns the pattern as it was supplied.
func (p Pattern) String() string { return p.raw }

// Len returns the number of characters in the pattern.
func (p Pattern) Len() int { return len(p.runes) }

// At returns the lowercased character at index i.
func (p Pattern) At(i int) rune { return p.runes[i] }

// Empty reports whether the pattern has no characters.
func (p Pattern) Empty() bool { return len(p.runes) == 0 }

// IsSubsequence reports whether p occurs in text as an ordered, not
// necessarily contiguous, case-insensitive subsequence. Greedy earliest
// matching is exact for subsequences, so no backtracking is needed.
func IsSubsequence(text string, p Pattern) bool {
	cursor := 0
	for _, r := range text {
		if cursor == len(p.runes) {
			break
		}
		if unicode.ToLower(r) == p.runes[cursor] {
			cursor++
		}
	}
	return cursor == len(p.runes)
}

// Matches tests a record's concatenated text.
func Matches(rec subtitle.Record, p Pattern) bool {
	return IsSubsequence(rec.Text(), p)
}

// Search returns the records containing p, in their original order.
func Search(records []subtitle.Record, p Pattern) []subtitle.Record {
	var out []subtitle.Record
	for _, rec := range records {
		if Matches(rec, p) {
			out = append(out, rec)
		}
	}
	return out
}
