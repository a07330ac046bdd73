package ui

import "fmt"

// SummaryLine formats the closing line of a search.
func SummaryLine(matches, files, failed int) string {
	noun := "matches"
	if matches == 1 {
		noun = "match"
	}
	fileNoun := "files"
	if files == 1 {
		fileNoun = "file"
	}
	line := fmt.Sprintf("subspot: %d %s in %d %s", matches, noun, files, fileNoun)
	if failed > 0 {
		line += fmt.Sprintf(" (%d failed)", failed)
	}
	return line
}
