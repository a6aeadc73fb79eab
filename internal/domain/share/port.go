package share

import (
	"context"
	"time"
)

// LinkTTL is how long a presigned share link stays valid.
const LinkTTL = 24 * time.Hour

// Store persists a rendered share summary and hands out a temporary link.
type Store interface {
	Put(ctx context.Context, key string, text string) error
	Link(ctx context.Context, key string, ttl time.Duration) (string, error)
}
