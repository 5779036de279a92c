package cache

import (
	"context"
	"errors"

	"maid-recruitment-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

const viewCountKeyPrefix = "job:views:"

type viewCounter struct {
	client *redis.Client
}

// NewJobViewCounter builds a redis-backed view counter. A nil client is
// allowed; counting then degrades to a no-op so a missing cache never
// breaks job browsing.
func NewJobViewCounter(client *redis.Client) domain.JobViewCounter {
	return &viewCounter{client: client}
}

func (c *viewCounter) Increment(ctx context.Context, jobID string) (int64, error) {
	if c.client == nil {
		return 0, nil
	}
	return c.client.Incr(ctx, viewCountKeyPrefix+jobID).Result()
}

func (c *viewCounter) Get(ctx context.Context, jobID string) (int64, error) {
	if c.client == nil {
		return 0, nil
	}
	n, err := c.client.Get(ctx, viewCountKeyPrefix+jobID).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}
