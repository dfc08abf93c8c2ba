package catalog

// Store is the bucketed key-value storage the catalogue persists records in.
type Store interface {
	SetMany(bucket string, entries map[string]string) error
	ForEach(bucket string, fn func(key string, value string) error) error
}
