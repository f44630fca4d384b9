package xredis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/questx-lab/rewards/pkg/xcontext"
	"github.com/redis/go-redis/v9"
)

// ErrNil is returned by the getters when the key does not exist.
var ErrNil = redis.Nil

type Client interface {
	Exist(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, key ...string) error

	// Sorted set
	ZAdd(ctx context.Context, key string, z ...redis.Z) error
	// ZIncrByIfExists increments the member only when the key exists and
	// reports whether it did.
	ZIncrByIfExists(ctx context.Context, key string, incr int64, member string) (bool, error)
	ZRevRangeWithScores(ctx context.Context, key string, offset, limit int) ([]redis.Z, error)
	ZRevRank(ctx context.Context, key string, member string) (uint64, error)

	// Single object
	SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error
	GetObj(ctx context.Context, key string, v any) error
}

type client struct {
	redisClient *redis.Client
}

func NewClient(ctx context.Context) (*client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:            xcontext.Configs(ctx).Redis.Addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolFIFO:        false,
		PoolSize:        5,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{redisClient: redisClient}, nil
}

func (c *client) Exist(ctx context.Context, key string) (bool, error) {
	n, err := c.redisClient.Exists(ctx, key).Uint64()
	if err != nil {
		return false, err
	}

	return n == 1, nil
}

func (c *client) Del(ctx context.Context, key ...string) error {
	err := c.redisClient.Del(ctx, key...).Err()
	if err == nil || errors.Is(err, redis.Nil) {
		return nil
	}

	return err
}

func (c *client) ZAdd(ctx context.Context, key string, z ...redis.Z) error {
	return c.redisClient.ZAdd(ctx, key, z...).Err()
}

var zincrbyIfExists = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	redis.call("ZINCRBY", KEYS[1], ARGV[1], ARGV[2])
	return 1
end
return 0
`)

func (c *client) ZIncrByIfExists(ctx context.Context, key string, incr int64, member string) (bool, error) {
	n, err := zincrbyIfExists.Run(ctx, c.redisClient, []string{key}, incr, member).Int()
	if err != nil {
		return false, err
	}

	return n == 1, nil
}

func (c *client) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	return c.redisClient.ZRevRangeWithScores(ctx, key, int64(offset), int64(offset+limit-1)).Result()
}

func (c *client) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	return c.redisClient.ZRevRank(ctx, key, member).Uint64()
}

func (c *client) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	return c.redisClient.Set(ctx, key, b, ttl).Err()
}

func (c *client) GetObj(ctx context.Context, key string, v any) error {
	b, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(b, v)
}
