package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vouch/internal/verification/models"
	"vouch/pkg/platform/sentinel"
)

// Redis caches evaluations as JSON values with a server-side TTL, so
// expiry works across replicas without a janitor.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedis builds a Redis-backed cache.
func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func key(sessionID string) string {
	return "vouch:evaluation:" + sessionID
}

func (r *Redis) Get(ctx context.Context, sessionID string) (models.Evaluation, error) {
	data, err := r.client.Get(ctx, key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Evaluation{}, sentinel.ErrNotFound
		}
		return models.Evaluation{}, fmt.Errorf("redis get: %w", err)
	}
	var eval models.Evaluation
	if err := json.Unmarshal(data, &eval); err != nil {
		return models.Evaluation{}, fmt.Errorf("decode cached evaluation: %w", err)
	}
	return eval, nil
}

func (r *Redis) Set(ctx context.Context, eval models.Evaluation) error {
	data, err := json.Marshal(eval)
	if err != nil {
		return fmt.Errorf("encode evaluation: %w", err)
	}
	if err := r.client.Set(ctx, key(eval.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
