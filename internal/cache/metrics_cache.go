package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inverness4444/stresssense4-sub001/internal/model"
)

// MetricsCache handles Redis caching of computed dashboard metrics so live
// reads do not re-aggregate on every hit
type MetricsCache interface {
	GetComputed(ctx context.Context, teamID, periodKey string) (*model.ComputedMetrics, error)
	SetComputed(ctx context.Context, teamID, periodKey string, metrics *model.ComputedMetrics) error
	Invalidate(ctx context.Context, teamID string) error
}

type metricsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMetricsCache creates a new metrics cache
func NewMetricsCache(client *redis.Client, ttl time.Duration) MetricsCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &metricsCache{client: client, ttl: ttl}
}

func (c *metricsCache) key(teamID, periodKey string) string {
	return fmt.Sprintf("team:%s:metrics:%s", teamID, periodKey)
}

func (c *metricsCache) GetComputed(ctx context.Context, teamID, periodKey string) (*model.ComputedMetrics, error) {
	data, err := c.client.Get(ctx, c.key(teamID, periodKey)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var metrics model.ComputedMetrics
	if err := json.Unmarshal([]byte(data), &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}

func (c *metricsCache) SetComputed(ctx context.Context, teamID, periodKey string, metrics *model.ComputedMetrics) error {
	data, err := json.Marshal(metrics)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(teamID, periodKey), data, c.ttl).Err()
}

func (c *metricsCache) Invalidate(ctx context.Context, teamID string) error {
	iter := c.client.Scan(ctx, 0, fmt.Sprintf("team:%s:metrics:*", teamID), 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
