// Package app wires storage, the search engine and the search session from configuration. The HTTP
// server and the command line both start from here.
package app

import (
	"fmt"

	"github.com/meghashyamc/sitesearch/config"
	"github.com/meghashyamc/sitesearch/db/kvdb"
	"github.com/meghashyamc/sitesearch/logger"
	"github.com/meghashyamc/sitesearch/services/catalog"
	"github.com/meghashyamc/sitesearch/services/history"
	"github.com/meghashyamc/sitesearch/services/search"
)

type App struct {
	Config  *config.Config
	Logger  logger.Logger
	KVDB    *kvdb.BoltDB
	Catalog *catalog.Service
	History *history.Service
	Engine  *search.Engine
	Session *search.Session
}

func New(cfg *config.Config, logger logger.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	var err error
	a.KVDB, err = kvdb.New(logger, cfg.GetKVDBPath())
	if err != nil {
		logger.Error("error creating kvDB", "err", err.Error())
		return nil, err
	}
	a.Catalog = catalog.New(logger, a.KVDB)
	a.History = history.New(logger, a.KVDB)

	a.Engine, err = search.NewEngine(logger, EngineConfig(cfg))
	if err != nil {
		a.KVDB.Close()
		return nil, err
	}

	a.Session, err = search.NewSession(logger, a.Engine, a.Catalog,
		search.WithHistoryStore(a.History),
		search.WithSuggester(search.NewSuggester(SuggestionConfig(cfg))),
		search.WithPageSize(cfg.GetPageSize()),
	)
	if err != nil {
		a.Engine.Close()
		a.KVDB.Close()
		return nil, fmt.Errorf("failed to create search session: %w", err)
	}

	return a, nil
}

func (a *App) Close() error {
	a.Engine.Close()
	return a.KVDB.Close()
}

// EngineConfig maps configuration onto the engine's field tables, weights and scoring constants.
func EngineConfig(cfg *config.Config) search.Config {
	scoring := cfg.GetScoring()
	highlight := cfg.GetHighlight()

	fields := make(map[search.Kind][]string)
	for kind, paths := range cfg.GetSearchFields() {
		fields[search.Kind(kind)] = paths
	}

	return search.Config{
		Fields:              fields,
		Weights:             cfg.GetFieldWeights(),
		PhraseMultiplier:    scoring.PhraseMultiplier,
		WordMultiplier:      scoring.WordMultiplier,
		SubstringMultiplier: scoring.SubstringMultiplier,
		FuzzyBase:           scoring.FuzzyBase,
		FuzzyMaxDistance:    scoring.FuzzyMaxDistance,
		FuzzyMinWordLength:  scoring.FuzzyMinWordLength,
		Marker:              search.Marker{Open: highlight.Open, Close: highlight.Close},
		SinglePassHighlight: highlight.SinglePass,
		Workers:             cfg.GetSearchWorkers(),
	}
}

func SuggestionConfig(cfg *config.Config) search.SuggestionConfig {
	suggestions := cfg.GetSuggestions()
	return search.SuggestionConfig{
		Limit:       suggestions.Limit,
		Popular:     suggestions.Popular,
		Completions: suggestions.Completions,
		Categories:  suggestions.Categories,
		Tags:        suggestions.Tags,
	}
}
