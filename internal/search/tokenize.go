package search

import "strings"

// Tokenize lower-cases text and splits it into whitespace-delimited tokens.
// No stemming or stop-word removal is applied: the phonetic and edit-distance
// scorers need exact token boundaries. Empty input yields an empty slice.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}
