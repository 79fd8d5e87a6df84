package domain

import "errors"

var (
	// ErrFeedUnavailable is returned when the price-list feed cannot be fetched
	// and no backup file exists
	ErrFeedUnavailable = errors.New("price-list feed unavailable and no backup file")

	// ErrEmptyDataset is returned when every row of an input was dropped during parsing
	ErrEmptyDataset = errors.New("dataset contains no usable rows")

	// ErrDatasetUnavailable is returned when a secondary rating dataset file is missing
	ErrDatasetUnavailable = errors.New("rating dataset unavailable")

	// ErrNoSnapshot is returned when a catalog view is requested before the first refresh
	ErrNoSnapshot = errors.New("no catalog snapshot loaded")

	// ErrUnknownView is returned when a rating view name is not configured
	ErrUnknownView = errors.New("unknown rating view")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidConfig is returned when configured policy values are out of range
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
