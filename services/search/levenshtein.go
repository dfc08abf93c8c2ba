package search

import "github.com/hbollon/go-edlib"

// Levenshtein returns the unit-cost edit distance between a and b, counted in runes.
// Comparison is case-sensitive; callers lower-case first.
func Levenshtein(a, b string) int {
	return edlib.LevenshteinDistance(a, b)
}
