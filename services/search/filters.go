package search

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type SortKey string

const (
	SortByRelevance SortKey = "relevance"
	SortByDate      SortKey = "date"
	SortByTitle     SortKey = "title"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DateRange is inclusive on both ends.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

type Filters struct {
	ContentTypes []Kind     `json:"content_types"`
	Categories   []string   `json:"categories"`
	DateRange    *DateRange `json:"date_range,omitempty"`
	SortBy       SortKey    `json:"sort_by"`
	SortOrder    SortOrder  `json:"sort_order"`
}

func DefaultFilters() Filters {
	return Filters{
		ContentTypes: slices.Clone(AllKinds),
		Categories:   []string{},
		SortBy:       SortByRelevance,
		SortOrder:    SortDesc,
	}
}

func (f Filters) clone() Filters {
	c := f
	c.ContentTypes = slices.Clone(f.ContentTypes)
	c.Categories = slices.Clone(f.Categories)
	if f.DateRange != nil {
		dr := *f.DateRange
		c.DateRange = &dr
	}
	return c
}

func (f Filters) includes(kind Kind) bool {
	return slices.Contains(f.ContentTypes, kind)
}

// FilterOverrides is a partial update of Filters. Nil fields leave the current value untouched;
// a non-nil empty ContentTypes is taken literally and matches nothing.
type FilterOverrides struct {
	ContentTypes   []Kind     `json:"content_types,omitempty"`
	Categories     []string   `json:"categories,omitempty"`
	DateRange      *DateRange `json:"date_range,omitempty"`
	ClearDateRange bool       `json:"clear_date_range,omitempty"`
	SortBy         *SortKey   `json:"sort_by,omitempty"`
	SortOrder      *SortOrder `json:"sort_order,omitempty"`
}

// Apply returns f with the overrides merged in.
func (o *FilterOverrides) Apply(f Filters) Filters {
	merged := f.clone()
	if o == nil {
		return merged
	}
	if o.ContentTypes != nil {
		merged.ContentTypes = slices.Clone(o.ContentTypes)
	}
	if o.Categories != nil {
		merged.Categories = slices.Clone(o.Categories)
	}
	if o.ClearDateRange {
		merged.DateRange = nil
	}
	if o.DateRange != nil {
		dr := *o.DateRange
		merged.DateRange = &dr
	}
	if o.SortBy != nil {
		merged.SortBy = *o.SortBy
	}
	if o.SortOrder != nil {
		merged.SortOrder = *o.SortOrder
	}
	return merged
}

func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(s))); key {
	case SortByRelevance, SortByDate, SortByTitle:
		return key, nil
	}
	return "", fmt.Errorf("%w: sort key %q", ErrInvalidFilter, s)
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case SortAsc, SortDesc:
		return order, nil
	}
	return "", fmt.Errorf("%w: sort order %q", ErrInvalidFilter, s)
}

// ParseKinds parses a comma separated list of content types. Blank entries are skipped.
func ParseKinds(s string) ([]Kind, error) {
	kinds := []Kind{}
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		kind := Kind(part)
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: content type %q", ErrInvalidFilter, part)
		}
		if !slices.Contains(kinds, kind) {
			kinds = append(kinds, kind)
		}
	}
	return kinds, nil
}

// ParseCategories splits a comma separated category list, dropping blank entries.
func ParseCategories(s string) []string {
	categories := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			categories = append(categories, part)
		}
	}
	return categories
}

// ParseDateRange builds an inclusive range over whole days from YYYY-MM-DD bounds. A missing bound
// is open; both missing yields nil.
func ParseDateRange(from string, to string) (*DateRange, error) {
	if from == "" && to == "" {
		return nil, nil
	}

	dateRange := &DateRange{
		End: time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC),
	}

	if from != "" {
		start, err := time.Parse(time.DateOnly, from)
		if err != nil {
			return nil, fmt.Errorf("%w: date %q", ErrInvalidFilter, from)
		}
		dateRange.Start = start
	}
	if to != "" {
		end, err := time.Parse(time.DateOnly, to)
		if err != nil {
			return nil, fmt.Errorf("%w: date %q", ErrInvalidFilter, to)
		}
		dateRange.End = end.Add(24*time.Hour - time.Nanosecond)
	}

	if dateRange.End.Before(dateRange.Start) {
		return nil, fmt.Errorf("%w: date range ends before it starts", ErrInvalidFilter)
	}

	return dateRange, nil
}
