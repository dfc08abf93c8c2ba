// Common test helpers
package search

import (
	"testing"
	"time"

	"github.com/meghashyamc/sitesearch/logger"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, cfg Config) *Engine {
	engine, err := NewEngine(logger.NewDiscard(), cfg)
	require.NoError(t, err, "could not create engine")
	t.Cleanup(engine.Close)
	return engine
}

func date(s string) *time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &d
}

func ptr[T any](v T) *T {
	return &v
}

func sampleCollections() Collections {
	return Collections{
		Projects: []Project{
			{ID: "p1", Title: "Elegant Spring Wedding", Slug: "elegant-spring-wedding", Description: "Peonies, garden roses and soft candlelight", Client: "The Smiths", Category: "wedding", EventDate: date("2024-04-20")},
			{ID: "p2", Title: "Corporate Gala Dinner", Slug: "corporate-gala", Description: "Modern centerpieces for a corporate event", Category: "corporate", CreatedAt: date("2023-11-02")},
			{ID: "p3", Title: "Autumn Barn Party", Slug: "autumn-barn", Description: "Rustic wildflowers", Category: "seasonal"},
		},
		Services: []Service{
			{ID: "s1", Name: "Wedding Floral Design", Slug: "wedding-floral", Description: "Bridal bouquets and ceremony arches", Features: []string{"bouquets", "arches", "boutonnieres"}, Category: "wedding"},
			{ID: "s2", Name: "Event Decoration", Slug: "event-decoration", Description: "Full venue styling", Features: []string{"lighting", "drapery"}},
		},
		Articles: []Article{
			{ID: "a1", Title: "Choosing Spring Flowers", Slug: "spring-flowers", Excerpt: "A guide to seasonal blooms for your wedding", Body: "Tulips, ranunculus and peonies shine in spring.", Tags: []string{"spring", "flowers"}, CreatedAt: date("2024-03-01")},
		},
		Testimonials: []Testimonial{
			{ID: "t1", Author: "Ana Costa", Event: "Wedding in Sintra", Quote: "The roses were breathtaking", CreatedAt: date("2024-05-10")},
		},
	}
}
