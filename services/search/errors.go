package search

import "errors"

var (
	// ErrSearchUnavailable is returned when the content collections could not be loaded.
	ErrSearchUnavailable = errors.New("search unavailable")

	// ErrSuperseded is returned by SearchLatest when a newer query cancelled it.
	ErrSuperseded = errors.New("search superseded by a newer query")

	ErrInvalidFilter = errors.New("invalid filter")

	ErrSourceRequired = errors.New("content source required")
)
