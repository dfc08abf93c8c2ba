package search

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2/analysis/tokenizer/character"
)

var whitespaceTokenizer = character.NewCharacterTokenizer(func(r rune) bool {
	return !unicode.IsSpace(r)
})

// Normalize lower-cases text and splits it on runs of whitespace.
func Normalize(text string) []string {
	stream := whitespaceTokenizer.Tokenize([]byte(strings.ToLower(text)))

	terms := make([]string, 0, len(stream))
	for _, token := range stream {
		if len(token.Term) == 0 {
			continue
		}
		terms = append(terms, string(token.Term))
	}

	return terms
}

// EscapeLiteral escapes every regex metacharacter in term.
func EscapeLiteral(term string) string {
	return regexp.QuoteMeta(term)
}
