package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/meghashyamc/sitesearch/logger"
)

// MaxRecentSearches bounds the recent-search history.
const MaxRecentSearches = 10

// Source loads the content collections. Implementations own storage; the engine never writes back.
type Source interface {
	Collections(ctx context.Context) (Collections, error)
}

// HistoryStore persists the recent-search list across restarts.
type HistoryStore interface {
	Load() ([]string, error)
	Save(searches []string) error
	Clear() error
}

// Session is the mutable search state of one application instance: current query, filters,
// page cursor, last results and recent searches. It is safe for concurrent use.
type Session struct {
	logger    logger.Logger
	engine    *Engine
	source    Source
	history   HistoryStore
	suggester *Suggester
	pageSize  int

	mu      sync.RWMutex
	query   string
	filters Filters
	results []Result
	recent  []string
	page    int

	inFlight atomic.Int32

	latestMu     sync.Mutex
	cancelLatest context.CancelFunc
}

type SessionOption func(*Session)

func WithHistoryStore(store HistoryStore) SessionOption {
	return func(s *Session) { s.history = store }
}

func WithSuggester(suggester *Suggester) SessionOption {
	return func(s *Session) { s.suggester = suggester }
}

func WithPageSize(pageSize int) SessionOption {
	return func(s *Session) { s.pageSize = pageSize }
}

func WithFilters(filters Filters) SessionOption {
	return func(s *Session) { s.filters = filters.clone() }
}

func NewSession(logger logger.Logger, engine *Engine, source Source, opts ...SessionOption) (*Session, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}

	s := &Session{
		logger:   logger,
		engine:   engine,
		source:   source,
		filters:  DefaultFilters(),
		results:  []Result{},
		recent:   []string{},
		page:     1,
		pageSize: 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.suggester == nil {
		s.suggester = NewSuggester(DefaultSuggestionConfig())
	}

	if s.history != nil {
		recent, err := s.history.Load()
		if err != nil {
			logger.Warn("could not load recent searches", "err", err.Error())
		} else {
			s.recent = capped(dedupe(recent), MaxRecentSearches)
		}
	}

	return s, nil
}

// Search runs query against the current filters merged with overrides. A blank query clears the
// results and returns none.
func (s *Session) Search(ctx context.Context, query string, overrides *FilterOverrides) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		s.mu.Lock()
		s.results = []Result{}
		s.page = 1
		s.mu.Unlock()
		return []Result{}, nil
	}

	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	s.mu.Lock()
	s.query = query
	s.filters = overrides.Apply(s.filters)
	filters := s.filters.clone()
	s.addRecentLocked(strings.TrimSpace(query))
	s.mu.Unlock()

	results, err := s.run(ctx, query, filters)
	if err != nil {
		if errors.Is(err, ErrSearchUnavailable) {
			s.mu.Lock()
			s.results = []Result{}
			s.mu.Unlock()
		}
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.results = results
	s.page = 1

	return slices.Clone(results), nil
}

// SearchLatest is Search with last-query-wins semantics: starting it cancels any SearchLatest call
// still in flight, which then returns ErrSuperseded.
func (s *Session) SearchLatest(ctx context.Context, query string, overrides *FilterOverrides) ([]Result, error) {
	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.latestMu.Lock()
	if s.cancelLatest != nil {
		s.cancelLatest()
	}
	s.cancelLatest = cancel
	s.latestMu.Unlock()

	results, err := s.Search(searchCtx, query, overrides)
	if err != nil && ctx.Err() == nil && searchCtx.Err() != nil {
		return nil, ErrSuperseded
	}
	return results, err
}

func (s *Session) run(ctx context.Context, query string, filters Filters) ([]Result, error) {
	collections, err := s.source.Collections(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Error("could not load content collections", "err", err.Error())
		return nil, fmt.Errorf("%w: %w", ErrSearchUnavailable, err)
	}

	return s.engine.Run(ctx, collections, CompileQuery(query), filters)
}

// UpdateFilters merges overrides into the current filters and re-runs the current query, if any.
func (s *Session) UpdateFilters(ctx context.Context, overrides *FilterOverrides) ([]Result, error) {
	s.mu.Lock()
	s.filters = overrides.Apply(s.filters)
	query := s.query
	s.mu.Unlock()

	if query == "" {
		return []Result{}, nil
	}
	return s.Search(ctx, query, nil)
}

func (s *Session) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = ""
	s.results = []Result{}
	s.page = 1
}

func (s *Session) Suggest(partial string) []Suggestion {
	return s.suggester.Suggest(partial)
}

func (s *Session) RecentSearches() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.recent)
}

func (s *Session) ClearRecentSearches() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = []string{}
	if s.history == nil {
		return nil
	}
	if err := s.history.Clear(); err != nil {
		s.logger.Error("could not clear recent searches", "err", err.Error())
		return fmt.Errorf("could not clear recent searches: %w", err)
	}
	return nil
}

func (s *Session) PopularSearches() []string {
	return s.suggester.Popular()
}

func (s *Session) SetPopularSearches(popular []string) {
	s.suggester.SetPopular(popular)
}

func (s *Session) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

func (s *Session) Filters() Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters.clone()
}

func (s *Session) Results() []Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.results)
}

func (s *Session) ResultCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

func (s *Session) ResultsByType() map[Kind][]Result {
	return GroupByKind(s.Results())
}

// IsSearching reports whether any Search call is in progress.
func (s *Session) IsSearching() bool {
	return s.inFlight.Load() > 0
}

// Page moves the cursor to page and returns that page of the last results. pageSize <= 0 uses the
// session default.
func (s *Session) Page(page int, pageSize int) ([]Result, Pagination) {
	if pageSize <= 0 {
		pageSize = s.pageSize
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	results, pagination := PageOf(s.results, page, pageSize)
	s.page = pagination.CurrentPage
	return slices.Clone(results), pagination
}

func (s *Session) CurrentPage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// addRecentLocked moves query to the front of the history and persists it. s.mu must be held.
func (s *Session) addRecentLocked(query string) {
	s.recent = capped(dedupe(append([]string{query}, s.recent...)), MaxRecentSearches)

	if s.history == nil {
		return
	}
	if err := s.history.Save(slices.Clone(s.recent)); err != nil {
		s.logger.Warn("could not save recent searches", "err", err.Error())
	}
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	unique := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		unique = append(unique, item)
	}
	return unique
}

// ShareURL builds the shareable /search URL for query under filters. Only settings that differ
// from the defaults are encoded.
func ShareURL(query string, filters Filters) string {
	params := url.Values{}
	params.Set("q", query)

	if len(filters.ContentTypes) > 0 && len(filters.ContentTypes) < len(AllKinds) {
		types := make([]string, len(filters.ContentTypes))
		for i, kind := range filters.ContentTypes {
			types[i] = string(kind)
		}
		params.Set("types", strings.Join(types, ","))
	}
	if len(filters.Categories) > 0 {
		params.Set("categories", strings.Join(filters.Categories, ","))
	}
	if filters.SortBy != "" && filters.SortBy != SortByRelevance {
		params.Set("sort", string(filters.SortBy))
	}

	return "/search?" + params.Encode()
}
