package search

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

var epoch = time.Unix(0, 0).UTC()

// Rank drops unscored results, applies the category and date filters and stable-sorts the rest.
// Results without a category fail a non-empty category filter; results without a date pass any
// date range and sort as if dated at the Unix epoch.
func Rank(results []Result, filters Filters) []Result {
	ranked := make([]Result, 0, len(results))
	for _, result := range results {
		if result.Score <= 0 {
			continue
		}
		if len(filters.Categories) > 0 && (result.Category == "" || !slices.Contains(filters.Categories, result.Category)) {
			continue
		}
		if filters.DateRange != nil && result.Date != nil && !filters.DateRange.Contains(*result.Date) {
			continue
		}
		ranked = append(ranked, result)
	}

	compare := comparator(filters.SortBy)
	if filters.SortOrder == SortAsc {
		slices.SortStableFunc(ranked, compare)
	} else {
		slices.SortStableFunc(ranked, func(a, b Result) int { return compare(b, a) })
	}

	return ranked
}

func comparator(key SortKey) func(a, b Result) int {
	switch key {
	case SortByDate:
		return func(a, b Result) int { return dateOf(a).Compare(dateOf(b)) }
	case SortByTitle:
		return func(a, b Result) int { return strings.Compare(a.Title, b.Title) }
	default:
		return func(a, b Result) int { return cmp.Compare(a.Score, b.Score) }
	}
}

func dateOf(r Result) time.Time {
	if r.Date == nil {
		return epoch
	}
	return *r.Date
}
