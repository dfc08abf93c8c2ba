package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type pageTestCase struct {
	name       string
	total      int
	page       int
	pageSize   int
	expected   []string
	pagination Pagination
}

var pageTestCases = []pageTestCase{
	{
		name:       "first page",
		total:      5,
		page:       1,
		pageSize:   2,
		expected:   []string{"r0", "r1"},
		pagination: Pagination{CurrentPage: 1, PageSize: 2, TotalPages: 3, HasNextPage: true, TotalResults: 5},
	},
	{
		name:       "last partial page",
		total:      5,
		page:       3,
		pageSize:   2,
		expected:   []string{"r4"},
		pagination: Pagination{CurrentPage: 3, PageSize: 2, TotalPages: 3, HasPrevPage: true, TotalResults: 5},
	},
	{
		name:       "past the end",
		total:      5,
		page:       9,
		pageSize:   2,
		expected:   []string{},
		pagination: Pagination{CurrentPage: 9, PageSize: 2, TotalPages: 3, HasPrevPage: true, TotalResults: 5},
	},
	{
		name:       "page below one is the first page",
		total:      3,
		page:       0,
		pageSize:   10,
		expected:   []string{"r0", "r1", "r2"},
		pagination: Pagination{CurrentPage: 1, PageSize: 10, TotalPages: 1, TotalResults: 3},
	},
	{
		name:       "no results",
		total:      0,
		page:       1,
		pageSize:   10,
		expected:   []string{},
		pagination: Pagination{CurrentPage: 1, PageSize: 10, TotalPages: 1},
	},
}

func TestPageOf(t *testing.T) {
	for _, tc := range pageTestCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := require.New(t)

			results := make([]Result, tc.total)
			for i := range results {
				results[i] = scored(fmt.Sprintf("r%d", i), 1)
			}

			page, pagination := PageOf(results, tc.page, tc.pageSize)
			assert.Equal(tc.expected, ids(page))
			assert.Equal(tc.pagination, pagination)
		})
	}
}
