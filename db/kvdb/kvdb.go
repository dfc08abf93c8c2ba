package kvdb

const (
	BucketProjects     = "projects"
	BucketServices     = "services"
	BucketArticles     = "articles"
	BucketTestimonials = "testimonials"
	BucketSearches     = "searches"
)

// Buckets lists every bucket created when the database is opened.
var Buckets = []string{BucketProjects, BucketServices, BucketArticles, BucketTestimonials, BucketSearches}

type DB interface {
	Set(bucket string, key string, value string) error
	SetMany(bucket string, entries map[string]string) error
	Get(bucket string, key string) (string, error)
	Delete(bucket string, key string) error
	ForEach(bucket string, fn func(key string, value string) error) error
	Close() error
}
