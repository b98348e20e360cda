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

// SearchLogger records the outcome of every search.
// Implementations must not surface write failures to the caller.
type SearchLogger interface {
	Log(query string, status SearchStatus, results []string)
}

// SearchLogWriter appends a single record to a durable log
type SearchLogWriter interface {
	Append(record SearchLogRecord) error
}
