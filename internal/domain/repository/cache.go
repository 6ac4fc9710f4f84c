package repository

import (
	"context"
	"time"
)

// Cache defines the interface for the process-wide response cache.
// Keys follow the "{operation}:{param-signature}" convention; parameterized
// listings share a common prefix so that one mutation can invalidate every
// page of a listing at once.
//
// Implementations should be provided by the infrastructure layer (e.g., Redis).
type Cache interface {
	// Get retrieves a cached value.
	// Returns nil, nil on a cache miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// DeleteByPrefix removes every key starting with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error
}
