// Package cache caches compatibility scores in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"castads/internal/core/port"
)

const keyPrefix = "castads:score:"

// Connect initializes a Redis client from a redis:// URL or host:port.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: addr})
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// ScoreCache stores scores as plain strings with a TTL so a changed campaign
// or owner profile is re-scored eventually.
type ScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ port.ScoreCache = (*ScoreCache)(nil)

// NewScoreCache returns a cache writing entries that expire after ttl.
func NewScoreCache(client *redis.Client, ttl time.Duration) *ScoreCache {
	return &ScoreCache{client: client, ttl: ttl}
}

func scoreKey(campaignID, ownerID string) string {
	return keyPrefix + campaignID + ":" + ownerID
}

func (c *ScoreCache) GetScore(ctx context.Context, campaignID, ownerID string) (float64, bool, error) {
	raw, err := c.client.Get(ctx, scoreKey(campaignID, ownerID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	score, err := parseScore(raw)
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}

func (c *ScoreCache) SetScore(ctx context.Context, campaignID, ownerID string, score float64) error {
	return c.client.Set(ctx, scoreKey(campaignID, ownerID), strconv.FormatFloat(score, 'f', -1, 64), c.ttl).Err()
}

func parseScore(raw string) (float64, error) {
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("cached score %q: %w", raw, err)
	}
	return score, nil
}
