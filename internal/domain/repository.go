package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// FeedFile is the result of one price-list fetch: the raw tabular payload
// and whether it came from the backup file rather than the network.
type FeedFile struct {
	Data       []byte
	FromBackup bool
}

// FeedClient defines the interface for fetching the retailer price-list feed
type FeedClient interface {
	FetchPriceList(ctx context.Context) (*FeedFile, error)
}

// RatingLoader loads a secondary rating dataset from a static file.
// A missing file yields ErrDatasetUnavailable; the caller treats the
// dataset as absent rather than failing.
type RatingLoader interface {
	Load(path string, schema DatasetSchema) ([]RatingRecord, error)
}

// PreferenceRepository persists user-curated preferences: the bar shelf
// (owned ingredient tokens) and per-view personal ratings. Saves replace
// the stored set wholesale (last-write-wins).
type PreferenceRepository interface {
	Shelf() (map[string]bool, error)
	SaveShelf(tokens []string) error
	PersonalRatings(view string) (map[string]int, error)
	SavePersonalRatings(view string, ratings map[string]int) error
}
