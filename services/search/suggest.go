package search

import (
	"slices"
	"strings"
	"sync"
	"unicode/utf8"
)

const (
	DefaultSuggestionLimit = 8
	minSuggestionQueryLen  = 2
)

type SuggestionConfig struct {
	Limit       int
	Popular     []string
	Completions []string
	Categories  []string
	Tags        []string
}

func DefaultSuggestionConfig() SuggestionConfig {
	return SuggestionConfig{
		Limit:   DefaultSuggestionLimit,
		Popular: []string{"wedding", "corporate event", "floral design", "decoration", "spring", "summer"},
		Completions: []string{
			"wedding decoration", "corporate events", "floral arrangements",
			"birthday parties", "anniversary celebrations", "spring flowers",
			"summer events", "winter wonderland", "autumn themes",
		},
		Categories: []string{"wedding", "corporate", "birthday", "anniversary", "seasonal", "holiday"},
		Tags: []string{
			"flowers", "decoration", "elegant", "rustic", "modern", "vintage",
			"outdoor", "indoor", "centerpieces", "bouquets", "lighting",
		},
	}
}

// Suggester produces typeahead suggestions from fixed vocabularies. Matching is plain
// case-insensitive substring containment.
type Suggester struct {
	mu  sync.RWMutex
	cfg SuggestionConfig
}

func NewSuggester(cfg SuggestionConfig) *Suggester {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultSuggestionLimit
	}
	cfg.Popular = capped(cfg.Popular, cfg.Limit)
	return &Suggester{cfg: cfg}
}

func (s *Suggester) Suggest(partial string) []Suggestion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if utf8.RuneCountInString(partial) < minSuggestionQueryLen {
		return asSuggestions(s.cfg.Popular, SuggestionQuery)
	}

	needle := strings.ToLower(partial)
	suggestions := make([]Suggestion, 0, s.cfg.Limit)
	suggestions = append(suggestions, asSuggestions(containing(s.cfg.Completions, needle), SuggestionQuery)...)
	suggestions = append(suggestions, asSuggestions(containing(s.cfg.Categories, needle), SuggestionCategory)...)
	suggestions = append(suggestions, asSuggestions(containing(s.cfg.Tags, needle), SuggestionTag)...)

	return capped(suggestions, s.cfg.Limit)
}

func (s *Suggester) Popular() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cfg.Popular)
}

func (s *Suggester) SetPopular(popular []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Popular = capped(slices.Clone(popular), s.cfg.Limit)
}

func containing(vocabulary []string, needle string) []string {
	var matches []string
	for _, entry := range vocabulary {
		if strings.Contains(strings.ToLower(entry), needle) {
			matches = append(matches, entry)
		}
	}
	return matches
}

func asSuggestions(texts []string, kind SuggestionKind) []Suggestion {
	suggestions := make([]Suggestion, 0, len(texts))
	for _, text := range texts {
		suggestions = append(suggestions, Suggestion{Text: text, Kind: kind})
	}
	return suggestions
}

func capped[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
