package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const inviteKeyPrefix = "agenda:invite:" // agenda:invite:{invite_key} -> agenda_id

// InviteCache remembers which agenda an invite key resolved to.
type InviteCache interface {
	Get(ctx context.Context, key string) (agendaID string, ok bool, err error)
	Set(ctx context.Context, key, agendaID string) error
	Delete(ctx context.Context, key string) error
}

// RedisInviteCache keeps invite lookups in Redis with a TTL.
type RedisInviteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisInviteCache(client *redis.Client, ttl time.Duration) *RedisInviteCache {
	return &RedisInviteCache{client: client, ttl: ttl}
}

func (c *RedisInviteCache) Get(ctx context.Context, key string) (string, bool, error) {
	id, err := c.client.Get(ctx, inviteKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read invite cache: %w", err)
	}
	return id, true, nil
}

func (c *RedisInviteCache) Set(ctx context.Context, key, agendaID string) error {
	if err := c.client.Set(ctx, inviteKeyPrefix+key, agendaID, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write invite cache: %w", err)
	}
	return nil
}

func (c *RedisInviteCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, inviteKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to drop invite cache entry: %w", err)
	}
	return nil
}

// NoopInviteCache is used when no Redis is configured.
type NoopInviteCache struct{}

func (NoopInviteCache) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (NoopInviteCache) Set(context.Context, string, string) error         { return nil }
func (NoopInviteCache) Delete(context.Context, string) error              { return nil }
