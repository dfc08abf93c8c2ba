package search

import (
	"fmt"
	"time"
)

// Kind is the content type tag carried by every record and result.
type Kind string

const (
	KindProject     Kind = "project"
	KindService     Kind = "service"
	KindArticle     Kind = "blog"
	KindTestimonial Kind = "testimonial"
)

// AllKinds lists the content types in the order their collections are searched.
var AllKinds = []Kind{KindProject, KindService, KindArticle, KindTestimonial}

func (k Kind) Valid() bool {
	switch k {
	case KindProject, KindService, KindArticle, KindTestimonial:
		return true
	}
	return false
}

// Record is one searchable item. The set of implementations is closed: Project, Service, Article and Testimonial.
type Record interface {
	Kind() Kind
	RecordID() string
	CanonicalURL() string
	isRecord()
}

type Project struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Description string         `json:"description,omitempty"`
	Client      string         `json:"client,omitempty"`
	Category    string         `json:"category,omitempty"`
	EventType   string         `json:"event_type,omitempty"`
	Venue       string         `json:"venue,omitempty"`
	Location    string         `json:"location,omitempty"`
	ImageURLs   []string       `json:"image_urls,omitempty"`
	EventDate   *time.Time     `json:"event_date,omitempty"`
	CreatedAt   *time.Time     `json:"created_at,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
}

type Service struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Title       string         `json:"title,omitempty"`
	Slug        string         `json:"slug"`
	Summary     string         `json:"summary,omitempty"`
	Description string         `json:"description,omitempty"`
	Features    []string       `json:"features,omitempty"`
	Category    string         `json:"category,omitempty"`
	ImageURL    string         `json:"image_url,omitempty"`
	CreatedAt   *time.Time     `json:"created_at,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
}

type Article struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Excerpt     string         `json:"excerpt,omitempty"`
	Body        string         `json:"body,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	CoverImage  string         `json:"cover_image,omitempty"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	CreatedAt   *time.Time     `json:"created_at,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
}

type Testimonial struct {
	ID        string         `json:"id"`
	Author    string         `json:"author"`
	Role      string         `json:"role,omitempty"`
	Event     string         `json:"event,omitempty"`
	Quote     string         `json:"quote"`
	Photo     string         `json:"photo,omitempty"`
	Rating    int            `json:"rating,omitempty"`
	CreatedAt *time.Time     `json:"created_at,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
}

func (Project) Kind() Kind     { return KindProject }
func (Service) Kind() Kind     { return KindService }
func (Article) Kind() Kind     { return KindArticle }
func (Testimonial) Kind() Kind { return KindTestimonial }

func (p Project) RecordID() string     { return p.ID }
func (s Service) RecordID() string     { return s.ID }
func (a Article) RecordID() string     { return a.ID }
func (t Testimonial) RecordID() string { return t.ID }

func (p Project) CanonicalURL() string     { return fmt.Sprintf("/portfolio/%s", p.Slug) }
func (s Service) CanonicalURL() string     { return fmt.Sprintf("/services/%s", s.Slug) }
func (a Article) CanonicalURL() string     { return fmt.Sprintf("/blog/%s", a.Slug) }
func (t Testimonial) CanonicalURL() string { return fmt.Sprintf("/testimonials#%s", t.ID) }

func (Project) isRecord()     {}
func (Service) isRecord()     {}
func (Article) isRecord()     {}
func (Testimonial) isRecord() {}

// Collections is the full content set handed to the engine by its Source.
type Collections struct {
	Projects     []Project     `json:"projects"`
	Services     []Service     `json:"services"`
	Articles     []Article     `json:"articles"`
	Testimonials []Testimonial `json:"testimonials"`
}

// Records returns the records of one content type in insertion order.
func (c Collections) Records(kind Kind) []Record {
	var records []Record
	switch kind {
	case KindProject:
		records = make([]Record, 0, len(c.Projects))
		for _, p := range c.Projects {
			records = append(records, p)
		}
	case KindService:
		records = make([]Record, 0, len(c.Services))
		for _, s := range c.Services {
			records = append(records, s)
		}
	case KindArticle:
		records = make([]Record, 0, len(c.Articles))
		for _, a := range c.Articles {
			records = append(records, a)
		}
	case KindTestimonial:
		records = make([]Record, 0, len(c.Testimonials))
		for _, t := range c.Testimonials {
			records = append(records, t)
		}
	}
	return records
}

func (c Collections) Len() int {
	return len(c.Projects) + len(c.Services) + len(c.Articles) + len(c.Testimonials)
}

// toResult builds the unscored result envelope for a record.
func toResult(record Record) Result {
	result := Result{
		ID:   record.RecordID(),
		Type: record.Kind(),
		URL:  record.CanonicalURL(),
	}

	switch r := record.(type) {
	case Project:
		result.Title = r.Title
		result.Description = r.Description
		result.Category = r.Category
		result.Tags = []string{}
		if len(r.ImageURLs) > 0 {
			result.ImageURL = r.ImageURLs[0]
		}
		result.Date = r.EventDate
		if result.Date == nil {
			result.Date = r.CreatedAt
		}
	case Service:
		result.Title = r.Name
		result.Description = r.Description
		result.Category = r.Category
		result.ImageURL = r.ImageURL
		result.Tags = r.Features
		if result.Tags == nil {
			result.Tags = []string{}
		}
	case Article:
		result.Title = r.Title
		result.Description = r.Excerpt
		result.Excerpt = r.Excerpt
		result.ImageURL = r.CoverImage
		result.Category = string(KindArticle)
		result.Author = "Admin"
		result.Date = r.CreatedAt
		result.Tags = r.Tags
		if result.Tags == nil {
			result.Tags = []string{}
		}
	case Testimonial:
		result.Title = fmt.Sprintf("Testimonial from %s", r.Author)
		result.Description = r.Quote
		result.Author = r.Author
		result.Date = r.CreatedAt
	}

	return result
}
