package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Query is a normalized query with its patterns compiled once for all records.
type Query struct {
	Text   string
	Terms  []string
	phrase string
	words  []*regexp.Regexp

	highlights []*regexp.Regexp
	combined   *regexp.Regexp
	termRunes  []int
}

func CompileQuery(text string) Query {
	terms := Normalize(text)

	q := Query{
		Text:       text,
		Terms:      terms,
		phrase:     strings.Join(terms, " "),
		words:      make([]*regexp.Regexp, len(terms)),
		highlights: compileHighlightPatterns(terms),
		combined:   compileCombinedPattern(terms),
		termRunes:  make([]int, len(terms)),
	}
	for i, term := range terms {
		q.words[i] = regexp.MustCompile(`(?i)\b` + EscapeLiteral(term) + `\b`)
		q.termRunes[i] = utf8.RuneCountInString(term)
	}

	return q
}

func (q Query) Empty() bool {
	return len(q.Terms) == 0
}

// Score computes the weighted relevance of record for q and fills in highlights for its title and
// description fields.
func (e *Engine) Score(record Record, q Query) Result {
	result := toResult(record)
	if q.Empty() {
		return result
	}

	for _, field := range e.fields[record.Kind()] {
		text := Extract(record, field.Path)
		if text == "" {
			continue
		}

		result.Score += e.scoreField(text, field.Weight, q)

		switch field.Role {
		case RoleTitle:
			result.HighlightedTitle = e.highlight(text, q)
		case RoleDescription:
			result.HighlightedDescription = e.highlight(text, q)
		}
	}

	return result
}

func (e *Engine) scoreField(text string, weight float64, q Query) float64 {
	lower := strings.ToLower(text)
	score := 0.0

	if strings.Contains(lower, q.phrase) {
		score += e.cfg.PhraseMultiplier * weight
	}

	words := strings.Fields(lower)
	for i, term := range q.Terms {
		if matches := q.words[i].FindAllStringIndex(lower, -1); len(matches) > 0 {
			score += float64(len(matches)) * e.cfg.WordMultiplier * weight
		}

		if strings.Contains(lower, term) {
			score += e.cfg.SubstringMultiplier * weight
		}

		score += e.fuzzyScore(term, q.termRunes[i], words) * weight
	}

	return score
}

func (e *Engine) fuzzyScore(term string, termRunes int, words []string) float64 {
	score := 0.0
	for _, word := range words {
		wordRunes := utf8.RuneCountInString(word)
		if wordRunes < e.cfg.FuzzyMinWordLength {
			continue
		}
		// The distance is at least the length difference.
		if abs(wordRunes-termRunes) > e.cfg.FuzzyMaxDistance {
			continue
		}
		if distance := Levenshtein(term, word); distance <= e.cfg.FuzzyMaxDistance {
			score += e.cfg.FuzzyBase - float64(distance)
		}
	}
	return score
}

func (e *Engine) highlight(text string, q Query) string {
	if e.cfg.SinglePassHighlight {
		if q.combined == nil {
			return text
		}
		return q.combined.ReplaceAllStringFunc(text, e.cfg.Marker.wrap)
	}
	return highlightSequential(text, q.highlights, e.cfg.Marker)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
