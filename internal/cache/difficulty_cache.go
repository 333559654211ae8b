package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache miss")

// DifficultyCache remembers problem difficulty by title slug. Difficulty of a
// published problem does not change, so entries live for a long TTL.
type DifficultyCache interface {
	GetDifficulty(ctx context.Context, slug string) (string, error)
	SetDifficulty(ctx context.Context, slug, difficulty string) error
}

type redisDifficultyCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDifficultyCache(client *redis.Client, ttl time.Duration) DifficultyCache {
	return &redisDifficultyCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *redisDifficultyCache) GetDifficulty(ctx context.Context, slug string) (string, error) {
	v, err := c.client.Get(ctx, "difficulty:"+slug).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return v, err
}

func (c *redisDifficultyCache) SetDifficulty(ctx context.Context, slug, difficulty string) error {
	return c.client.Set(ctx, "difficulty:"+slug, difficulty, c.ttl).Err()
}
