package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"slintsurvey/internal/model"
)

const (
	dashboardKey    = "survey:dashboard"
	dashboardGenKey = "survey:dashboard:gen"
)

// DashboardCache holds the last computed dashboard summary. Every
// invalidation bumps a generation counter; a summary computed under an older
// generation is never stored.
type DashboardCache interface {
	// Get returns the cached summary (nil on a miss) and the current generation
	Get(ctx context.Context) (*model.DashboardSummary, int64, error)
	// Set stores the summary only if the generation is still gen
	Set(ctx context.Context, gen int64, summary *model.DashboardSummary) error
	Invalidate(ctx context.Context) error
}

type dashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDashboardCache(client *redis.Client, ttl time.Duration) DashboardCache {
	return &dashboardCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *dashboardCache) Get(ctx context.Context) (*model.DashboardSummary, int64, error) {
	var data, gen *redis.StringCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		data = pipe.Get(ctx, dashboardKey)
		gen = pipe.Get(ctx, dashboardGenKey)
		return nil
	})
	if err != nil && err != redis.Nil {
		return nil, 0, err
	}

	current, err := generation(gen)
	if err != nil {
		return nil, 0, err
	}

	raw, err := data.Result()
	if err == redis.Nil {
		return nil, current, nil
	}
	if err != nil {
		return nil, 0, err
	}
	var summary model.DashboardSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, 0, err
	}
	return &summary, current, nil
}

func (c *dashboardCache) Set(ctx context.Context, gen int64, summary *model.DashboardSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generation(tx.Get(ctx, dashboardGenKey))
		if err != nil {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, dashboardKey, data, c.ttl)
			return nil
		})
		return err
	}, dashboardGenKey)
	// an invalidation landed while writing; the summary is already stale
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *dashboardCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, dashboardGenKey)
		pipe.Del(ctx, dashboardKey)
		return nil
	})
	return err
}

func generation(cmd *redis.StringCmd) (int64, error) {
	n, err := cmd.Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}
