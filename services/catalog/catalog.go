package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/meghashyamc/sitesearch/db/kvdb"
	"github.com/meghashyamc/sitesearch/logger"
	"github.com/meghashyamc/sitesearch/services/search"
)

// entry is the stored form of a record. Position keeps insertion order, which bbolt's key order
// does not.
type entry[T any] struct {
	Position int `json:"position"`
	Record   T   `json:"record"`
}

// Service is the content catalogue: it imports records into the key-value store and serves them
// back to the search engine as collections.
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

// Collections loads every stored record in insertion order. Entries that cannot be decoded are
// skipped.
func (s *Service) Collections(ctx context.Context) (search.Collections, error) {
	var collections search.Collections
	var err error

	if collections.Projects, err = load[search.Project](ctx, s, kvdb.BucketProjects); err != nil {
		return search.Collections{}, err
	}
	if collections.Services, err = load[search.Service](ctx, s, kvdb.BucketServices); err != nil {
		return search.Collections{}, err
	}
	if collections.Articles, err = load[search.Article](ctx, s, kvdb.BucketArticles); err != nil {
		return search.Collections{}, err
	}
	if collections.Testimonials, err = load[search.Testimonial](ctx, s, kvdb.BucketTestimonials); err != nil {
		return search.Collections{}, err
	}

	return collections, nil
}

// Import upserts records by ID. Records without an ID get a new one; existing records keep their
// position.
func (s *Service) Import(ctx context.Context, collections search.Collections) (search.Collections, error) {
	for i := range collections.Projects {
		collections.Projects[i].ID = ensureID(collections.Projects[i].ID)
	}
	for i := range collections.Services {
		collections.Services[i].ID = ensureID(collections.Services[i].ID)
	}
	for i := range collections.Articles {
		collections.Articles[i].ID = ensureID(collections.Articles[i].ID)
	}
	for i := range collections.Testimonials {
		collections.Testimonials[i].ID = ensureID(collections.Testimonials[i].ID)
	}

	if err := save(ctx, s, kvdb.BucketProjects, collections.Projects); err != nil {
		return search.Collections{}, err
	}
	if err := save(ctx, s, kvdb.BucketServices, collections.Services); err != nil {
		return search.Collections{}, err
	}
	if err := save(ctx, s, kvdb.BucketArticles, collections.Articles); err != nil {
		return search.Collections{}, err
	}
	if err := save(ctx, s, kvdb.BucketTestimonials, collections.Testimonials); err != nil {
		return search.Collections{}, err
	}

	s.logger.Info("imported content",
		"projects", len(collections.Projects),
		"services", len(collections.Services),
		"articles", len(collections.Articles),
		"testimonials", len(collections.Testimonials))

	return collections, nil
}

func ensureID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

func load[T search.Record](ctx context.Context, s *Service, bucket string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []entry[T]
	err := s.store.ForEach(bucket, func(key string, value string) error {
		var e entry[T]
		if err := json.Unmarshal([]byte(value), &e); err != nil {
			s.logger.Warn("skipping unreadable record", "bucket", bucket, "key", key, "err", err.Error())
			return nil
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		s.logger.Error("failed to load records", "bucket", bucket, "err", err.Error())
		return nil, fmt.Errorf("failed to load %s: %w", bucket, err)
	}

	slices.SortStableFunc(entries, func(a, b entry[T]) int { return a.Position - b.Position })

	records := make([]T, len(entries))
	for i, e := range entries {
		records[i] = e.Record
	}
	return records, nil
}

func save[T search.Record](ctx context.Context, s *Service, bucket string, records []T) error {
	if len(records) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	positions, next, err := s.positions(bucket)
	if err != nil {
		return err
	}

	values := make(map[string]string, len(records))
	for _, record := range records {
		id := record.RecordID()
		position, ok := positions[id]
		if !ok {
			position = next
			positions[id] = position
			next++
		}

		data, err := json.Marshal(entry[T]{Position: position, Record: record})
		if err != nil {
			s.logger.Error("failed to marshal record", "bucket", bucket, "id", id, "err", err.Error())
			return fmt.Errorf("failed to marshal record %s: %w", id, err)
		}
		values[id] = string(data)
	}

	if err := s.store.SetMany(bucket, values); err != nil {
		s.logger.Error("failed to store records", "bucket", bucket, "err", err.Error())
		return fmt.Errorf("failed to store %s: %w", bucket, err)
	}
	return nil
}

// positions returns the stored position of every key in bucket and the next free position.
func (s *Service) positions(bucket string) (map[string]int, int, error) {
	positions := map[string]int{}
	next := 0

	err := s.store.ForEach(bucket, func(key string, value string) error {
		var e struct {
			Position int `json:"position"`
		}
		if err := json.Unmarshal([]byte(value), &e); err != nil {
			return nil
		}
		positions[key] = e.Position
		next = max(next, e.Position+1)
		return nil
	})
	if err != nil {
		s.logger.Error("failed to read record positions", "bucket", bucket, "err", err.Error())
		return nil, 0, fmt.Errorf("failed to read %s: %w", bucket, err)
	}

	return positions, next, nil
}
