package testutil

import (
	"context"
	"time"

	"github.com/questx-lab/rewards/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

type MockRedisClient struct {
	ExistFunc               func(ctx context.Context, key string) (bool, error)
	DelFunc                 func(ctx context.Context, key ...string) error
	ZAddFunc                func(ctx context.Context, key string, z ...redis.Z) error
	ZIncrByIfExistsFunc     func(ctx context.Context, key string, incr int64, member string) (bool, error)
	ZRevRangeWithScoresFunc func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error)
	ZRevRankFunc            func(ctx context.Context, key string, member string) (uint64, error)
	SetObjFunc              func(ctx context.Context, key string, obj any, ttl time.Duration) error
	GetObjFunc              func(ctx context.Context, key string, v any) error
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	return false, nil
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	return nil
}

func (m *MockRedisClient) ZAdd(ctx context.Context, key string, z ...redis.Z) error {
	if m.ZAddFunc != nil {
		return m.ZAddFunc(ctx, key, z...)
	}

	return nil
}

func (m *MockRedisClient) ZIncrByIfExists(ctx context.Context, key string, incr int64, member string) (bool, error) {
	if m.ZIncrByIfExistsFunc != nil {
		return m.ZIncrByIfExistsFunc(ctx, key, incr, member)
	}

	return false, nil
}

func (m *MockRedisClient) ZRevRangeWithScores(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
	if m.ZRevRangeWithScoresFunc != nil {
		return m.ZRevRangeWithScoresFunc(ctx, key, offset, limit)
	}

	return nil, nil
}

func (m *MockRedisClient) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	if m.ZRevRankFunc != nil {
		return m.ZRevRankFunc(ctx, key, member)
	}

	return 0, redis.Nil
}

func (m *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	if m.SetObjFunc != nil {
		return m.SetObjFunc(ctx, key, obj, ttl)
	}

	return nil
}

func (m *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	if m.GetObjFunc != nil {
		return m.GetObjFunc(ctx, key, v)
	}

	return xredis.ErrNil
}
