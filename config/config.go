package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"
)

const keyEnv = "ENV"
const envLocal = "local"

var defaultWeights = map[string]float64{
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
}

var defaultFields = map[string][]string{
	"project":     {"title", "description", "client"},
	"service":     {"name", "description", "features"},
	"blog":        {"title", "excerpt", "body", "tags"},
	"testimonial": {"author", "quote", "event"},
}

type Config struct {
	config *viper.Viper
}

// Scoring holds the multipliers and thresholds of the relevance scorer.
type Scoring struct {
	PhraseMultiplier    float64
	WordMultiplier      float64
	SubstringMultiplier float64
	FuzzyBase           float64
	FuzzyMaxDistance    int
	FuzzyMinWordLength  int
}

type Highlight struct {
	Open       string
	Close      string
	SinglePass bool
}

type Suggestions struct {
	Limit       int
	Popular     []string
	Completions []string
	Categories  []string
	Tags        []string
}

func Load(env string) (*Config, error) {

	if len(env) == 0 {
		if env = os.Getenv(keyEnv); len(env) == 0 {
			env = envLocal
		}
	}

	configPath, err := getConfigPath(env)

	viperConfig := viper.New()
	setDefaults(viperConfig)
	if err == nil {
		viperConfig.SetConfigFile(configPath)
		if err := viperConfig.ReadInConfig(); err != nil {
			slog.Warn(fmt.Sprintf("error reading config file, %s", err))
		}
	}
	viperConfig.AutomaticEnv()

	cfg := &Config{
		config: viperConfig,
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("database.kvdb_path", "./data/sitesearch.db")
	v.SetDefault("log.level", "info")

	v.SetDefault("search.workers", 0)
	v.SetDefault("search.page_size", 20)
	v.SetDefault("search.supersede_in_flight", false)

	for name, weight := range defaultWeights {
		v.SetDefault("search.weights."+name, weight)
	}
	for kind, fields := range defaultFields {
		v.SetDefault("search.fields."+kind, fields)
	}

	v.SetDefault("search.scoring.phrase_multiplier", 10)
	v.SetDefault("search.scoring.word_multiplier", 5)
	v.SetDefault("search.scoring.substring_multiplier", 2)
	v.SetDefault("search.scoring.fuzzy_base", 3)
	v.SetDefault("search.scoring.fuzzy_max_distance", 2)
	v.SetDefault("search.scoring.fuzzy_min_word_length", 4)

	v.SetDefault("search.highlight.open", `<mark class="search-highlight">`)
	v.SetDefault("search.highlight.close", "</mark>")
	v.SetDefault("search.highlight.single_pass", false)

	v.SetDefault("search.suggestions.limit", 8)
	v.SetDefault("search.suggestions.popular", []string{
		"wedding", "corporate event", "floral design", "decoration", "spring", "summer",
	})
	v.SetDefault("search.suggestions.completions", []string{
		"wedding decoration", "corporate events", "floral arrangements",
		"birthday parties", "anniversary celebrations", "spring flowers",
		"summer events", "winter wonderland", "autumn themes",
	})
	v.SetDefault("search.suggestions.categories", []string{
		"wedding", "corporate", "birthday", "anniversary", "seasonal", "holiday",
	})
	v.SetDefault("search.suggestions.tags", []string{
		"flowers", "decoration", "elegant", "rustic", "modern", "vintage",
		"outdoor", "indoor", "centerpieces", "bouquets", "lighting",
	})
}

func (c *Config) GetPort() string {
	port := c.config.GetString("PORT")
	if len(port) == 0 {
		port = c.config.GetString("server.port")
	}

	return port
}

func (c *Config) GetKVDBPath() string {
	kvdbPath := c.config.GetString("KVDB_PATH")
	if len(kvdbPath) == 0 {
		kvdbPath = c.config.GetString("database.kvdb_path")
	}

	return kvdbPath
}

func (c *Config) GetLogLevel() string {
	level := c.config.GetString("LOG_LEVEL")
	if len(level) == 0 {
		level = c.config.GetString("log.level")
	}

	return level
}

func (c *Config) GetSearchWorkers() int {
	return c.config.GetInt("search.workers")
}

func (c *Config) GetPageSize() int {
	return c.config.GetInt("search.page_size")
}

func (c *Config) GetSupersedeInFlight() bool {
	return c.config.GetBool("search.supersede_in_flight")
}

// GetFieldWeights merges the built-in weights with any extra field names configured under search.weights.
func (c *Config) GetFieldWeights() map[string]float64 {
	names := make([]string, 0, len(defaultWeights))
	for name := range defaultWeights {
		names = append(names, name)
	}
	for name := range c.config.GetStringMap("search.weights") {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	weights := make(map[string]float64, len(names))
	for _, name := range names {
		weights[name] = c.config.GetFloat64("search.weights." + name)
	}

	return weights
}

// GetSearchFields returns the searched field paths per content type.
func (c *Config) GetSearchFields() map[string][]string {
	fields := make(map[string][]string, len(defaultFields))
	for kind := range defaultFields {
		fields[kind] = c.config.GetStringSlice("search.fields." + kind)
	}

	return fields
}

func (c *Config) GetScoring() Scoring {
	return Scoring{
		PhraseMultiplier:    c.config.GetFloat64("search.scoring.phrase_multiplier"),
		WordMultiplier:      c.config.GetFloat64("search.scoring.word_multiplier"),
		SubstringMultiplier: c.config.GetFloat64("search.scoring.substring_multiplier"),
		FuzzyBase:           c.config.GetFloat64("search.scoring.fuzzy_base"),
		FuzzyMaxDistance:    c.config.GetInt("search.scoring.fuzzy_max_distance"),
		FuzzyMinWordLength:  c.config.GetInt("search.scoring.fuzzy_min_word_length"),
	}
}

func (c *Config) GetHighlight() Highlight {
	return Highlight{
		Open:       c.config.GetString("search.highlight.open"),
		Close:      c.config.GetString("search.highlight.close"),
		SinglePass: c.config.GetBool("search.highlight.single_pass"),
	}
}

func (c *Config) GetSuggestions() Suggestions {
	return Suggestions{
		Limit:       c.config.GetInt("search.suggestions.limit"),
		Popular:     c.config.GetStringSlice("search.suggestions.popular"),
		Completions: c.config.GetStringSlice("search.suggestions.completions"),
		Categories:  c.config.GetStringSlice("search.suggestions.categories"),
		Tags:        c.config.GetStringSlice("search.suggestions.tags"),
	}
}

func getProjectRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	for {
		configDir := filepath.Join(currentDir, "config")
		if info, err := os.Stat(configDir); err == nil && info.IsDir() {
			return currentDir, nil
		}

		parent := filepath.Dir(currentDir)

		if parent == currentDir {
			break
		}

		currentDir = parent
	}

	return "", fmt.Errorf("could not find project root (directory containing 'config' folder)")
}

func getConfigPath(env string) (string, error) {
	configFile := fmt.Sprintf("config.%s.yaml", env)

	projectRoot, err := getProjectRoot()
	if err != nil {
		slog.Warn("failed to find project root with config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("failed to find project root: %w", err)
	}
	configPath := filepath.Join(projectRoot, "config", configFile)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		slog.Warn("failed to find config file within config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("config file does not exist: %s", configPath)
	}

	return configPath, nil
}
