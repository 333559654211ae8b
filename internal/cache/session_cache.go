package cache

import (
	"context"
	"errors"
	"time"

	"github.com/DeadlyParkour777/solution-share/internal/types"
	"github.com/redis/go-redis/v9"
)

// SessionCache keeps manual-mode sessions alive for the inactivity timeout.
// Every write refreshes the TTL, so a session expires only when the user
// stops responding.
type SessionCache interface {
	GetSession(ctx context.Context, id string) ([]byte, error)
	// TakeSession reads and removes a session in one step. Of two concurrent
	// callers only one gets the data.
	TakeSession(ctx context.Context, id string) ([]byte, error)
	SetSession(ctx context.Context, id string, data []byte) error
	DeleteSession(ctx context.Context, id string) error
}

type redisSessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionCache(client *redis.Client, ttl time.Duration) SessionCache {
	return &redisSessionCache{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (c *redisSessionCache) GetSession(ctx context.Context, id string) ([]byte, error) {
	data, err := c.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, types.ErrSessionNotFound
	}
	return data, err
}

func (c *redisSessionCache) TakeSession(ctx context.Context, id string) ([]byte, error) {
	data, err := c.client.GetDel(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, types.ErrSessionNotFound
	}
	return data, err
}

func (c *redisSessionCache) SetSession(ctx context.Context, id string, data []byte) error {
	return c.client.Set(ctx, sessionKey(id), data, c.ttl).Err()
}

func (c *redisSessionCache) DeleteSession(ctx context.Context, id string) error {
	return c.client.Del(ctx, sessionKey(id)).Err()
}
