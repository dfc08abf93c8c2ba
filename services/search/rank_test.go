package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func scored(id string, score float64) Result {
	return Result{ID: id, Type: KindProject, Score: score}
}

func ids(results []Result) []string {
	out := make([]string, len(results))
	for i, result := range results {
		out[i] = result.ID
	}
	return out
}

type rankTestCase struct {
	name     string
	results  []Result
	filters  Filters
	expected []string
}

var rankTestCases = []rankTestCase{
	{
		name:     "relevance descending keeps insertion order on ties",
		results:  []Result{scored("x", 20), scored("y", 50), scored("z", 20)},
		filters:  DefaultFilters(),
		expected: []string{"y", "x", "z"},
	},
	{
		name:    "relevance ascending keeps insertion order on ties",
		results: []Result{scored("x", 20), scored("y", 50), scored("z", 20)},
		filters: func() Filters {
			f := DefaultFilters()
			f.SortOrder = SortAsc
			return f
		}(),
		expected: []string{"x", "z", "y"},
	},
	{
		name:     "zero and negative scores are dropped",
		results:  []Result{scored("x", 0), scored("y", 1), scored("z", -3)},
		filters:  DefaultFilters(),
		expected: []string{"y"},
	},
	{
		name: "category filter drops uncategorized results",
		results: []Result{
			{ID: "x", Score: 5, Category: "wedding"},
			{ID: "y", Score: 9},
			{ID: "z", Score: 7, Category: "corporate"},
		},
		filters: func() Filters {
			f := DefaultFilters()
			f.Categories = []string{"wedding", "corporate"}
			return f
		}(),
		expected: []string{"z", "x"},
	},
	{
		name: "date range is inclusive and keeps undated results",
		results: []Result{
			{ID: "before", Score: 1, Date: date("2023-12-31")},
			{ID: "start", Score: 2, Date: date("2024-01-01")},
			{ID: "undated", Score: 3},
			{ID: "end", Score: 4, Date: date("2024-06-30")},
			{ID: "after", Score: 5, Date: date("2024-07-01")},
		},
		filters: func() Filters {
			f := DefaultFilters()
			f.DateRange = &DateRange{Start: *date("2024-01-01"), End: *date("2024-06-30")}
			return f
		}(),
		expected: []string{"end", "undated", "start"},
	},
	{
		name: "date descending puts undated results last",
		results: []Result{
			{ID: "undated", Score: 1},
			{ID: "old", Score: 1, Date: date("2020-01-01")},
			{ID: "new", Score: 1, Date: date("2024-01-01")},
		},
		filters: Filters{ContentTypes: AllKinds, SortBy: SortByDate, SortOrder: SortDesc},
		expected: []string{"new", "old", "undated"},
	},
	{
		name: "date ascending puts undated results first",
		results: []Result{
			{ID: "new", Score: 1, Date: date("2024-01-01")},
			{ID: "old", Score: 1, Date: date("2020-01-01")},
			{ID: "undated", Score: 1},
		},
		filters: Filters{ContentTypes: AllKinds, SortBy: SortByDate, SortOrder: SortAsc},
		expected: []string{"undated", "old", "new"},
	},
	{
		name: "title ascending",
		results: []Result{
			{ID: "b", Score: 1, Title: "Bouquets"},
			{ID: "a", Score: 1, Title: "Arches"},
			{ID: "c", Score: 1, Title: "Candles"},
		},
		filters:  Filters{ContentTypes: AllKinds, SortBy: SortByTitle, SortOrder: SortAsc},
		expected: []string{"a", "b", "c"},
	},
	{
		name: "title descending",
		results: []Result{
			{ID: "b", Score: 1, Title: "Bouquets"},
			{ID: "a", Score: 1, Title: "Arches"},
			{ID: "c", Score: 1, Title: "Candles"},
		},
		filters:  Filters{ContentTypes: AllKinds, SortBy: SortByTitle, SortOrder: SortDesc},
		expected: []string{"c", "b", "a"},
	},
}

func TestRank(t *testing.T) {
	for _, tc := range rankTestCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := require.New(t)
			assert.Equal(tc.expected, ids(Rank(tc.results, tc.filters)))
		})
	}
}

func TestRankEmptyCategoriesMatchesNoFilter(t *testing.T) {
	assert := require.New(t)

	results := []Result{
		{ID: "x", Score: 3, Category: "wedding"},
		{ID: "y", Score: 2},
		{ID: "z", Score: 1, Category: "seasonal"},
	}

	withoutFilter := DefaultFilters()
	withoutFilter.Categories = nil
	withEmptyFilter := DefaultFilters()
	withEmptyFilter.Categories = []string{}

	assert.Equal(Rank(results, withoutFilter), Rank(results, withEmptyFilter))
	assert.Len(Rank(results, withEmptyFilter), 3)
}

func TestRankDoesNotModifyInput(t *testing.T) {
	assert := require.New(t)

	results := []Result{scored("x", 1), scored("y", 2)}
	Rank(results, DefaultFilters())
	assert.Equal([]string{"x", "y"}, ids(results))
}

func TestDateRangeContains(t *testing.T) {
	assert := require.New(t)

	r := DateRange{Start: *date("2024-01-01"), End: *date("2024-01-31")}
	assert.True(r.Contains(*date("2024-01-01")))
	assert.True(r.Contains(*date("2024-01-31")))
	assert.True(r.Contains(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)))
	assert.False(r.Contains(*date("2024-02-01")))
	assert.False(r.Contains(date("2024-01-01").Add(-time.Second)))
}
