package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/meghashyamc/sitesearch/logger"
	"github.com/panjf2000/ants/v2"
)

// Records per pool task. Below this a query is scored inline.
const scoringChunkSize = 64

type FieldRole int

const (
	RoleNone FieldRole = iota
	RoleTitle
	RoleDescription
)

// FieldSpec is one searched field of a content type.
type FieldSpec struct {
	Path   string
	Weight float64
	Role   FieldRole
}

type Config struct {
	// Fields lists the searched field paths per content type, in scoring order.
	Fields map[Kind][]string
	// Weights maps a field path, or the last segment of it, to its weight. Unlisted fields weigh 1.
	Weights map[string]float64

	PhraseMultiplier    float64
	WordMultiplier      float64
	SubstringMultiplier float64
	FuzzyBase           float64
	FuzzyMaxDistance    int
	FuzzyMinWordLength  int

	Marker              Marker
	SinglePassHighlight bool

	// Workers sizes the scoring pool; 0 scores on the calling goroutine.
	Workers int
}

func DefaultConfig() Config {
	return Config{
		Fields: map[Kind][]string{
			KindProject:     {"title", "description", "client"},
			KindService:     {"name", "description", "features"},
			KindArticle:     {"title", "excerpt", "body", "tags"},
			KindTestimonial: {"author", "quote", "event"},
		},
		Weights: map[string]float64{
			"title":       3,
			"name":        3,
			"description": 2,
			"excerpt":     2,
			"quote":       2,
			"tags":        1.5,
			"features":    1.5,
			"client":      1,
			"author":      1,
			"event":       1,
			"body":        0.5,
		},
		PhraseMultiplier:    10,
		WordMultiplier:      5,
		SubstringMultiplier: 2,
		FuzzyBase:           3,
		FuzzyMaxDistance:    2,
		FuzzyMinWordLength:  4,
		Marker:              DefaultMarker,
	}
}

type Engine struct {
	logger logger.Logger
	cfg    Config
	fields map[Kind][]FieldSpec
	pool   *ants.Pool
}

func NewEngine(logger logger.Logger, cfg Config) (*Engine, error) {
	engine := &Engine{
		logger: logger,
		cfg:    cfg,
		fields: buildFieldTables(cfg),
	}

	if cfg.Workers > 0 {
		pool, err := ants.NewPool(cfg.Workers)
		if err != nil {
			logger.Error("failed to create scoring pool", "workers", cfg.Workers, "err", err.Error())
			return nil, fmt.Errorf("failed to create scoring pool: %w", err)
		}
		engine.pool = pool
	}

	return engine, nil
}

// Close releases the scoring pool.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// FieldTable returns the searched fields of a content type.
func (e *Engine) FieldTable(kind Kind) []FieldSpec {
	return e.fields[kind]
}

func buildFieldTables(cfg Config) map[Kind][]FieldSpec {
	tables := make(map[Kind][]FieldSpec, len(AllKinds))
	for _, kind := range AllKinds {
		paths := cfg.Fields[kind]
		specs := make([]FieldSpec, 0, len(paths))
		for _, path := range paths {
			name := path[strings.LastIndex(path, ".")+1:]
			specs = append(specs, FieldSpec{
				Path:   path,
				Weight: fieldWeight(cfg.Weights, path, name),
				Role:   fieldRole(name),
			})
		}
		tables[kind] = specs
	}
	return tables
}

func fieldWeight(weights map[string]float64, path string, name string) float64 {
	if weight, ok := weights[path]; ok {
		return weight
	}
	if weight, ok := weights[name]; ok {
		return weight
	}
	return 1
}

func fieldRole(name string) FieldRole {
	switch name {
	case "title", "name":
		return RoleTitle
	case "description", "excerpt", "quote":
		return RoleDescription
	}
	return RoleNone
}

// Run scores every record of the content types included by filters and ranks the survivors.
func (e *Engine) Run(ctx context.Context, collections Collections, q Query, filters Filters) ([]Result, error) {
	if q.Empty() {
		return []Result{}, nil
	}

	var records []Record
	for _, kind := range AllKinds {
		if filters.includes(kind) {
			records = append(records, collections.Records(kind)...)
		}
	}

	scored, err := e.scoreAll(ctx, records, q)
	if err != nil {
		return nil, err
	}

	ranked := Rank(scored, filters)
	e.logger.Debug("search completed", "query", q.Text, "candidates", len(records), "results", len(ranked))

	return ranked, nil
}

func (e *Engine) scoreAll(ctx context.Context, records []Record, q Query) ([]Result, error) {
	results := make([]Result, len(records))

	if e.pool == nil || len(records) <= scoringChunkSize {
		for i, record := range records {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = e.Score(record, q)
		}
		return results, nil
	}

	var wg sync.WaitGroup
	for start := 0; start < len(records); start += scoringChunkSize {
		end := min(start+scoringChunkSize, len(records))
		task := func() {
			defer wg.Done()
			for i := start; i < end; i++ {
				if ctx.Err() != nil {
					return
				}
				results[i] = e.Score(records[i], q)
			}
		}

		wg.Add(1)
		if err := e.pool.Submit(task); err != nil {
			e.logger.Warn("scoring pool rejected task, scoring inline", "err", err.Error())
			task()
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
