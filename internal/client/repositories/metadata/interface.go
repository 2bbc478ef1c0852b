package metadata

import (
	"context"
	"time"
)

// Repository is a small key/value table for client-side session data.
// A zero expiresAt means the entry never expires. Expired entries read
// as absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expiresAt time.Time) error
	Delete(ctx context.Context, key string) error
	PurgeExpired(ctx context.Context) (int64, error)
}
