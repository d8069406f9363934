// Package cache holds recent evaluation outcomes keyed by session so
// downstream services re-reading a decision inside the TTL do not trigger a
// full re-evaluation. Misses are silent; the cache is never authoritative.
package cache

import (
	"context"

	"vouch/internal/verification/models"
)

// Cache stores evaluation outcomes with a fixed TTL. Implementations must
// return sentinel.ErrNotFound (possibly wrapped) on a miss or an expired
// entry.
type Cache interface {
	Get(ctx context.Context, sessionID string) (models.Evaluation, error)
	Set(ctx context.Context, eval models.Evaluation) error
}
