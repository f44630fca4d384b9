package fetcher

import (
	"context"
	"errors"
	"time"

	"github.com/puzpuzpuz/xsync"
	"github.com/questx-lab/rewards/internal/common"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"github.com/questx-lab/rewards/pkg/xredis"
)

const defaultProfileTTL = time.Hour

type redisProfileCache struct {
	redisClient xredis.Client
	ttl         time.Duration
}

func NewRedisProfileCache(redisClient xredis.Client, ttl time.Duration) *redisProfileCache {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}

	return &redisProfileCache{redisClient: redisClient, ttl: ttl}
}

func (c *redisProfileCache) Get(ctx context.Context, handle string) (Profile, bool) {
	var profile Profile
	err := c.redisClient.GetObj(ctx, common.RedisKeyTwitterProfile(NormalizeHandle(handle)), &profile)
	if err != nil {
		if !errors.Is(err, xredis.ErrNil) {
			xcontext.Logger(ctx).Warnf("Cannot get profile from redis: %v", err)
		}
		return Profile{}, false
	}

	return profile, true
}

func (c *redisProfileCache) Set(ctx context.Context, profile Profile) {
	key := common.RedisKeyTwitterProfile(NormalizeHandle(profile.Handle))
	if err := c.redisClient.SetObj(ctx, key, profile, c.ttl); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot set profile to redis: %v", err)
	}
}

type memoryProfileEntry struct {
	profile   Profile
	expiredAt time.Time
}

type memoryProfileCache struct {
	entries *xsync.MapOf[string, memoryProfileEntry]
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryProfileCache(ttl time.Duration) *memoryProfileCache {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}

	return &memoryProfileCache{
		entries: xsync.NewMapOf[memoryProfileEntry](),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *memoryProfileCache) Get(ctx context.Context, handle string) (Profile, bool) {
	key := NormalizeHandle(handle)
	entry, ok := c.entries.Load(key)
	if !ok {
		return Profile{}, false
	}

	if c.now().After(entry.expiredAt) {
		c.entries.Delete(key)
		return Profile{}, false
	}

	return entry.profile, true
}

func (c *memoryProfileCache) Set(ctx context.Context, profile Profile) {
	c.entries.Store(NormalizeHandle(profile.Handle), memoryProfileEntry{
		profile:   profile,
		expiredAt: c.now().Add(c.ttl),
	})
}

type cachedResolver struct {
	cache    ProfileCache
	resolver ProfileResolver
}

// NewCachedResolver looks profiles up in the cache before asking the resolver.
func NewCachedResolver(cache ProfileCache, resolver ProfileResolver) *cachedResolver {
	return &cachedResolver{cache: cache, resolver: resolver}
}

func (r *cachedResolver) Resolve(ctx context.Context, handle string) (Profile, error) {
	if profile, ok := r.cache.Get(ctx, handle); ok {
		return profile, nil
	}

	profile, err := r.resolver.Resolve(ctx, handle)
	if err != nil {
		return Profile{}, err
	}

	r.cache.Set(ctx, profile)
	return profile, nil
}
