package history

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/meghashyamc/sitesearch/db/kvdb"
	"github.com/meghashyamc/sitesearch/logger"
)

const recentSearchesKey = "creadevents_recent_searches"

type Store interface {
	Set(bucket string, key string, value string) error
	Get(bucket string, key string) (string, error)
	Delete(bucket string, key string) error
}

// Service persists the recent-search list as a JSON array under a single key.
type Service struct {
	logger logger.Logger
	store  Store
}

func New(logger logger.Logger, store Store) *Service {
	return &Service{
		logger: logger,
		store:  store,
	}
}

// Load returns the stored searches, or none if nothing has been saved yet.
func (s *Service) Load() ([]string, error) {
	value, err := s.store.Get(kvdb.BucketSearches, recentSearchesKey)
	if err != nil {
		if errors.Is(err, kvdb.ErrNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read recent searches: %w", err)
	}

	var searches []string
	if err := json.Unmarshal([]byte(value), &searches); err != nil {
		s.logger.Error("failed to unmarshal recent searches", "err", err.Error())
		return nil, fmt.Errorf("failed to unmarshal recent searches: %w", err)
	}
	if searches == nil {
		searches = []string{}
	}

	return searches, nil
}

func (s *Service) Save(searches []string) error {
	if searches == nil {
		searches = []string{}
	}

	data, err := json.Marshal(searches)
	if err != nil {
		s.logger.Error("failed to marshal recent searches", "err", err.Error())
		return fmt.Errorf("failed to marshal recent searches: %w", err)
	}

	if err := s.store.Set(kvdb.BucketSearches, recentSearchesKey, string(data)); err != nil {
		return fmt.Errorf("failed to save recent searches: %w", err)
	}
	return nil
}

func (s *Service) Clear() error {
	if err := s.store.Delete(kvdb.BucketSearches, recentSearchesKey); err != nil {
		return fmt.Errorf("failed to clear recent searches: %w", err)
	}
	return nil
}
