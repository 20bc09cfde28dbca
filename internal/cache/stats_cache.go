package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/restodash/lossledger/internal/config"
	"github.com/restodash/lossledger/internal/domain"
)

const (
	statsKeyPrefix    = "loss:stats"
	statsScanBatchLen = 100
)

// StatsCache keeps computed loss statistics hot between ledger writes.
// Every write path invalidates it, so a hit can never serve figures that
// disagree with the ledger.
type StatsCache interface {
	Get(ctx context.Context, sinceDays int) (*domain.LossStatistics, bool, error)
	Set(ctx context.Context, sinceDays int, stats *domain.LossStatistics) error
	InvalidateAll(ctx context.Context) error
}

type redisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopStatsCache struct{}

func NewStatsCache(cfg config.CacheConfig) (StatsCache, error) {
	if !cfg.Enabled {
		return &noopStatsCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisStatsCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopStatsCache() StatsCache {
	return &noopStatsCache{}
}

func (c *redisStatsCache) Get(ctx context.Context, sinceDays int) (*domain.LossStatistics, bool, error) {
	payload, err := c.client.Get(ctx, statsKey(sinceDays)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var stats domain.LossStatistics
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, false, fmt.Errorf("decode loss statistics cache: %w", err)
	}

	return &stats, true, nil
}

func (c *redisStatsCache) Set(ctx context.Context, sinceDays int, stats *domain.LossStatistics) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode loss statistics cache: %w", err)
	}

	if err := c.client.Set(ctx, statsKey(sinceDays), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisStatsCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, statsKeyPrefix, statsScanBatchLen)
}

func (n *noopStatsCache) Get(ctx context.Context, sinceDays int) (*domain.LossStatistics, bool, error) {
	return nil, false, nil
}

func (n *noopStatsCache) Set(ctx context.Context, sinceDays int, stats *domain.LossStatistics) error {
	return nil
}

func (n *noopStatsCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func statsKey(sinceDays int) string {
	return fmt.Sprintf("%s:%d", statsKeyPrefix, sinceDays)
}
