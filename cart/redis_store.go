package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPersistence keeps cart snapshots in Redis, one key per session.
type RedisPersistence struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPersistence(client *redis.Client, ttl time.Duration) *RedisPersistence {
	return &RedisPersistence{client: client, ttl: ttl}
}

func (r *RedisPersistence) redisKey(key string) string {
	return fmt.Sprintf("cart:session:%s", key)
}

func (r *RedisPersistence) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.redisKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *RedisPersistence) Save(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, r.redisKey(key), data, r.ttl).Err()
}

func (r *RedisPersistence) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.redisKey(key)).Err()
}
