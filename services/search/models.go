package search

import "time"

type Result struct {
	ID                     string     `json:"id"`
	Type                   Kind       `json:"type"`
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	Excerpt                string     `json:"excerpt,omitempty"`
	ImageURL               string     `json:"image_url,omitempty"`
	URL                    string     `json:"url"`
	Score                  float64    `json:"relevance_score"`
	HighlightedTitle       string     `json:"highlighted_title,omitempty"`
	HighlightedDescription string     `json:"highlighted_description,omitempty"`
	Tags                   []string   `json:"tags,omitempty"`
	Category               string     `json:"category,omitempty"`
	Date                   *time.Time `json:"date,omitempty"`
	Author                 string     `json:"author,omitempty"`
}

type SuggestionKind string

const (
	SuggestionQuery    SuggestionKind = "query"
	SuggestionCategory SuggestionKind = "category"
	SuggestionTag      SuggestionKind = "tag"
)

type Suggestion struct {
	Text  string         `json:"text"`
	Kind  SuggestionKind `json:"type"`
	Count *int           `json:"count,omitempty"`
}

// GroupByKind splits results by content type, keeping their order.
func GroupByKind(results []Result) map[Kind][]Result {
	grouped := make(map[Kind][]Result, len(AllKinds))
	for _, kind := range AllKinds {
		grouped[kind] = []Result{}
	}
	for _, result := range results {
		grouped[result.Type] = append(grouped[result.Type], result)
	}
	return grouped
}
