package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/meghashyamc/sitesearch/config"
	"github.com/meghashyamc/sitesearch/logger"
	"github.com/meghashyamc/sitesearch/services/search"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Setenv("KVDB_PATH", filepath.Join(t.TempDir(), "app.db"))

	cfg, err := config.Load("test")
	require.NoError(t, err, "could not load config")

	a, err := New(cfg, logger.NewDiscard())
	require.NoError(t, err, "could not create app")
	t.Cleanup(func() { a.Close() })
	return a
}

func TestEngineConfigFromFile(t *testing.T) {
	assert := require.New(t)

	cfg, err := config.Load("test")
	assert.NoError(err)

	engineConfig := EngineConfig(cfg)
	assert.Equal([]string{"title", "description", "client", "meta.venue"}, engineConfig.Fields[search.KindProject])
	assert.Equal([]string{"author", "quote", "event"}, engineConfig.Fields[search.KindTestimonial])
	assert.Equal(0.75, engineConfig.Weights["venue"])
	assert.Equal(3.0, engineConfig.Weights["title"])
	assert.Equal(2, engineConfig.Workers)
	assert.Equal(search.DefaultMarker, engineConfig.Marker)
	assert.Equal(10.0, engineConfig.PhraseMultiplier)

	suggestions := SuggestionConfig(cfg)
	assert.Equal(search.DefaultSuggestionLimit, suggestions.Limit)
	assert.Equal(search.DefaultSuggestionConfig().Tags, suggestions.Tags)
}

func TestImportThenSearch(t *testing.T) {
	assert := require.New(t)
	a := newTestApp(t)
	ctx := context.Background()

	_, err := a.Catalog.Import(ctx, search.Collections{
		Projects: []search.Project{
			{ID: "p1", Title: "Garden Party", Slug: "garden-party", Meta: map[string]any{"venue": "Quinta da Regaleira"}},
			{ID: "p2", Title: "Regaleira Gala", Slug: "regaleira-gala"},
		},
	})
	assert.NoError(err)

	results, err := a.Session.Search(ctx, "regaleira", nil)
	assert.NoError(err)
	assert.Len(results, 2)
	assert.Equal("p2", results[0].ID)
	assert.Equal("/portfolio/garden-party", results[1].URL)

	assert.Equal([]string{"regaleira"}, a.Session.RecentSearches())
	stored, err := a.History.Load()
	assert.NoError(err)
	assert.Equal([]string{"regaleira"}, stored)
}
