package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/meghashyamc/sitesearch/api"
	"github.com/meghashyamc/sitesearch/app"
	"github.com/meghashyamc/sitesearch/config"
	"github.com/meghashyamc/sitesearch/logger"
	"github.com/meghashyamc/sitesearch/services/search"
	"github.com/urfave/cli/v2"
)

const metadataConfig = "config"

func main() {
	godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newCLI().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:  "sitesearch",
		Usage: "Relevance-ranked search over a site's projects, services, articles and testimonials",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Configuration environment, selects config/config.<env>.yaml",
				EnvVars: []string{"ENV"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error); overrides the configured level",
			},
		},
		Before: loadConfig,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the HTTP API",
				Action: serveCommand,
			},
			{
				Name:      "import",
				Usage:     "Import content records from a JSON file into the catalogue",
				ArgsUsage: "<file.json>",
				Action:    importCommand,
			},
			{
				Name:      "search",
				Usage:     "Search the catalogue and print the ranked results as JSON",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "types",
						Usage: "Comma separated content types (project, service, blog, testimonial)",
					},
					&cli.StringFlag{
						Name:  "categories",
						Usage: "Comma separated categories",
					},
					&cli.StringFlag{
						Name:  "sort-by",
						Usage: "Sort key (relevance, date, title)",
						Value: string(search.SortByRelevance),
					},
					&cli.StringFlag{
						Name:  "sort-order",
						Usage: "Sort order (asc, desc)",
						Value: string(search.SortDesc),
					},
					&cli.StringFlag{
						Name:  "from",
						Usage: "Earliest date, YYYY-MM-DD",
					},
					&cli.StringFlag{
						Name:  "to",
						Usage: "Latest date, YYYY-MM-DD",
					},
					&cli.IntFlag{
						Name:  "page",
						Usage: "Page of results to print",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "per-page",
						Usage: "Results per page; defaults to the configured page size",
					},
				},
			},
			{
				Name:      "suggest",
				Usage:     "Print typeahead suggestions for a partial query",
				ArgsUsage: "<partial>",
				Action:    suggestCommand,
			},
			{
				Name:   "recent",
				Usage:  "Print the recent searches",
				Action: recentCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "clear",
						Usage: "Clear the recent searches instead",
					},
				},
			},
		},
	}
}

func loadConfig(c *cli.Context) error {
	cfg, err := config.Load(c.String("env"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[metadataConfig] = cfg
	return nil
}

func getConfig(c *cli.Context) *config.Config {
	return c.App.Metadata[metadataConfig].(*config.Config)
}

// openApp opens the catalogue and session for a one-shot command.
func openApp(c *cli.Context) (*app.App, error) {
	cfg := getConfig(c)

	level := c.String("log-level")
	if level == "" {
		level = cfg.GetLogLevel()
	}

	return app.New(cfg, logger.New(level))
}

func serveCommand(c *cli.Context) error {
	return api.Run(c.Context, getConfig(c))
}

func importCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one JSON file to import")
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read content file: %w", err)
	}

	var collections search.Collections
	if err := json.Unmarshal(data, &collections); err != nil {
		return fmt.Errorf("failed to parse content file: %w", err)
	}

	a, err := openApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	imported, err := a.Catalog.Import(c.Context, collections)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "imported %d projects, %d services, %d articles, %d testimonials\n",
		len(imported.Projects), len(imported.Services), len(imported.Articles), len(imported.Testimonials))
	return nil
}

type searchOutput struct {
	Results     []search.Result   `json:"results"`
	PageDetails search.Pagination `json:"page_details"`
	ShareURL    string            `json:"share_url"`
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("expected a query")
	}
	query := c.Args().First()

	overrides, err := searchOverrides(c)
	if err != nil {
		return err
	}

	a, err := openApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.Session.Search(c.Context, query, overrides)
	if err != nil {
		return err
	}

	perPage := c.Int("per-page")
	if perPage <= 0 {
		perPage = a.Config.GetPageSize()
	}
	page, pagination := search.PageOf(results, c.Int("page"), perPage)

	return writeJSON(c, searchOutput{
		Results:     page,
		PageDetails: pagination,
		ShareURL:    search.ShareURL(query, a.Session.Filters()),
	})
}

func searchOverrides(c *cli.Context) (*search.FilterOverrides, error) {
	overrides := &search.FilterOverrides{}

	if c.IsSet("types") {
		kinds, err := search.ParseKinds(c.String("types"))
		if err != nil {
			return nil, err
		}
		overrides.ContentTypes = kinds
	}
	if c.IsSet("categories") {
		overrides.Categories = search.ParseCategories(c.String("categories"))
	}

	dateRange, err := search.ParseDateRange(c.String("from"), c.String("to"))
	if err != nil {
		return nil, err
	}
	overrides.DateRange = dateRange

	sortBy, err := search.ParseSortKey(c.String("sort-by"))
	if err != nil {
		return nil, err
	}
	overrides.SortBy = &sortBy

	sortOrder, err := search.ParseSortOrder(c.String("sort-order"))
	if err != nil {
		return nil, err
	}
	overrides.SortOrder = &sortOrder

	return overrides, nil
}

func suggestCommand(c *cli.Context) error {
	a, err := openApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, suggestion := range a.Session.Suggest(c.Args().First()) {
		fmt.Fprintf(c.App.Writer, "%s\t%s\n", suggestion.Text, suggestion.Kind)
	}
	return nil
}

func recentCommand(c *cli.Context) error {
	a, err := openApp(c)
	if err != nil {
		return err
	}
	defer a.Close()

	if c.Bool("clear") {
		return a.Session.ClearRecentSearches()
	}

	for _, query := range a.Session.RecentSearches() {
		fmt.Fprintln(c.App.Writer, query)
	}
	return nil
}

func writeJSON(c *cli.Context, v any) error {
	encoder := json.NewEncoder(c.App.Writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
