package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadTestConfig(t *testing.T) {
	assert := require.New(t)
	t.Setenv("ENV", "test")

	cfg, err := Load("")
	assert.NoError(err)

	assert.Equal("8089", cfg.GetPort())
	assert.Equal("debug", cfg.GetLogLevel())
	assert.Equal(2, cfg.GetSearchWorkers())
	assert.Equal(5, cfg.GetPageSize())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	assert := require.New(t)
	t.Setenv("PORT", "9999")
	t.Setenv("KVDB_PATH", "/tmp/override.db")

	cfg, err := Load("test")
	assert.NoError(err)

	assert.Equal("9999", cfg.GetPort())
	assert.Equal("/tmp/override.db", cfg.GetKVDBPath())
}

func TestSearchDefaults(t *testing.T) {
	assert := require.New(t)

	cfg, err := Load("missing")
	assert.NoError(err)

	weights := cfg.GetFieldWeights()
	assert.Equal(3.0, weights["title"])
	assert.Equal(1.5, weights["features"])
	assert.Equal(0.5, weights["body"])

	scoring := cfg.GetScoring()
	assert.Equal(10.0, scoring.PhraseMultiplier)
	assert.Equal(5.0, scoring.WordMultiplier)
	assert.Equal(2.0, scoring.SubstringMultiplier)
	assert.Equal(3.0, scoring.FuzzyBase)
	assert.Equal(2, scoring.FuzzyMaxDistance)
	assert.Equal(4, scoring.FuzzyMinWordLength)

	suggestions := cfg.GetSuggestions()
	assert.Equal(8, suggestions.Limit)
	assert.Len(suggestions.Popular, 6)
	assert.Contains(suggestions.Tags, "centerpieces")

	highlight := cfg.GetHighlight()
	assert.Equal("</mark>", highlight.Close)
	assert.False(highlight.SinglePass)

	assert.Equal([]string{"name", "description", "features"}, cfg.GetSearchFields()["service"])
}

func TestExtraWeightsAndFields(t *testing.T) {
	assert := require.New(t)

	cfg, err := Load("test")
	assert.NoError(err)

	weights := cfg.GetFieldWeights()
	assert.Equal(0.75, weights["venue"])
	assert.Equal(3.0, weights["name"])

	assert.Equal([]string{"title", "description", "client", "meta.venue"}, cfg.GetSearchFields()["project"])
}
