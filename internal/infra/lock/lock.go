package lock

import (
	"context"
	"time"
)

// Locker serializes check-then-write sections per scheduling resource
// (one key per salon+employee). Acquire returns a release func; a failed
// acquisition after the context deadline is a transient condition and the
// booking attempt is safe to retry.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

// Noop satisfies Locker for deployments without Redis; serialization then
// relies on the row locks and the exclusion constraint alone.
type Noop struct{}

func (Noop) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	return func() {}, nil
}
