package search

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Marker wraps highlighted matches.
type Marker struct {
	Open  string
	Close string
}

var DefaultMarker = Marker{Open: `<mark class="search-highlight">`, Close: "</mark>"}

func (m Marker) wrap(match string) string {
	return m.Open + match + m.Close
}

// Highlight wraps every case-insensitive occurrence of each term in text, one term at a time in the
// given order. Later passes see the markup added by earlier ones, so overlapping terms can nest.
func Highlight(text string, terms []string, marker Marker) string {
	return highlightSequential(text, compileHighlightPatterns(terms), marker)
}

// HighlightSinglePass wraps matches of all terms in one left-to-right pass, preferring longer
// terms, so markers never nest.
func HighlightSinglePass(text string, terms []string, marker Marker) string {
	pattern := compileCombinedPattern(terms)
	if pattern == nil {
		return text
	}
	return pattern.ReplaceAllStringFunc(text, marker.wrap)
}

func highlightSequential(text string, patterns []*regexp.Regexp, marker Marker) string {
	for _, pattern := range patterns {
		text = pattern.ReplaceAllStringFunc(text, marker.wrap)
	}
	return text
}

func compileHighlightPatterns(terms []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		if term == "" {
			continue
		}
		patterns = append(patterns, regexp.MustCompile("(?i)"+EscapeLiteral(term)))
	}
	return patterns
}

func compileCombinedPattern(terms []string) *regexp.Regexp {
	unique := make([]string, 0, len(terms))
	for _, term := range terms {
		if term != "" && !slices.Contains(unique, term) {
			unique = append(unique, term)
		}
	}
	if len(unique) == 0 {
		return nil
	}

	// RE2 alternation is leftmost-first, so longer terms go first to win at equal offsets.
	slices.SortStableFunc(unique, func(a, b string) int {
		return utf8.RuneCountInString(b) - utf8.RuneCountInString(a)
	})

	escaped := make([]string, len(unique))
	for i, term := range unique {
		escaped[i] = EscapeLiteral(term)
	}
	return regexp.MustCompile("(?i)(?:" + strings.Join(escaped, "|") + ")")
}
