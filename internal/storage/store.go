package storage

import (
	"context"
	"time"
)

// Store is the string key-value persistence boundary the repositories sit on.
// Values are serialized text; a ttl of zero means no expiry. The mock-friendly
// shape lets the in-memory store stand in for redis or postgres without
// touching the cart or credential logic.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
