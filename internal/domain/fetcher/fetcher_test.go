package fetcher

import (
	"context"
	"errors"
	"testing"
	"time"

	twitterscraper "github.com/n0madic/twitter-scraper"
	"github.com/questx-lab/rewards/config"
	"github.com/questx-lab/rewards/pkg/api/twitter"
	"github.com/questx-lab/rewards/pkg/testutil"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func sampleTweet() twitter.Tweet {
	return twitter.Tweet{
		ID:       "123",
		Text:     "questx rocks",
		AuthorID: "42",
		Metrics: twitter.PublicMetrics{
			Likes: 10, Reposts: 2, Quotes: 1, Replies: 3, Impressions: 1000,
		},
		Author: twitter.User{ID: "42", Handle: "Alice", Verified: true},
	}
}

func TestTwitterFetcher_Fetch(t *testing.T) {
	ctx := testutil.MockContext()
	cache := NewMemoryProfileCache(time.Minute)
	f := NewTwitterFetcher(&testutil.MockTwitterEndpoint{
		GetTweetFunc: func(ctx context.Context, id string) (twitter.Tweet, error) {
			require.Equal(t, "123", id)
			return sampleTweet(), nil
		},
	}, cache, time.Second)

	post, err := f.Fetch(ctx, Reference{PostID: "123"})
	require.NoError(t, err)
	require.Equal(t, PostData{
		ID:             "123",
		AuthorID:       "42",
		AuthorHandle:   "Alice",
		AuthorVerified: true,
		Text:           "questx rocks",
		Likes:          10,
		Reposts:        3,
		Replies:        3,
		Impressions:    1000,
	}, post)

	profile, ok := cache.Get(ctx, "alice")
	require.True(t, ok)
	require.Equal(t, "42", profile.ID)
}

func TestTwitterFetcher_RefreshesStaleProfile(t *testing.T) {
	ctx := testutil.MockContext()
	cache := NewMemoryProfileCache(time.Minute)
	cache.Set(ctx, Profile{ID: "42", Handle: "alice", Verified: false})

	f := NewTwitterFetcher(&testutil.MockTwitterEndpoint{
		GetTweetFunc: func(ctx context.Context, id string) (twitter.Tweet, error) {
			return sampleTweet(), nil
		},
	}, cache, time.Second)

	post, err := f.Fetch(ctx, Reference{PostID: "123"})
	require.NoError(t, err)
	require.True(t, post.AuthorVerified)

	profile, ok := cache.Get(ctx, "alice")
	require.True(t, ok)
	require.True(t, profile.Verified)
}

func TestTwitterFetcher_Errors(t *testing.T) {
	ctx := testutil.MockContext()

	tests := []struct {
		name    string
		fn      func(ctx context.Context, id string) (twitter.Tweet, error)
		wantErr error
	}{
		{
			name: "not found",
			fn: func(ctx context.Context, id string) (twitter.Tweet, error) {
				return twitter.Tweet{}, twitter.ErrNotFound
			},
			wantErr: ErrPostNotFound,
		},
		{
			name: "rate limit",
			fn: func(ctx context.Context, id string) (twitter.Tweet, error) {
				return twitter.Tweet{}, twitter.ErrRateLimit
			},
			wantErr: ErrTransient,
		},
		{
			name: "timeout",
			fn: func(ctx context.Context, id string) (twitter.Tweet, error) {
				<-ctx.Done()
				return twitter.Tweet{}, ctx.Err()
			},
			wantErr: ErrTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewTwitterFetcher(
				&testutil.MockTwitterEndpoint{GetTweetFunc: tt.fn},
				NewMemoryProfileCache(time.Minute),
				20*time.Millisecond,
			)

			_, err := f.Fetch(ctx, Reference{PostID: "123"})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMemoryProfileCache_Expire(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryProfileCache(time.Minute)
	now := time.Now()
	cache.now = func() time.Time { return now }

	cache.Set(ctx, Profile{ID: "1", Handle: "@Alice"})
	_, ok := cache.Get(ctx, "alice")
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = cache.Get(ctx, "alice")
	require.False(t, ok)
}

func TestRedisProfileCache(t *testing.T) {
	ctx := context.Background()
	stored := map[string]Profile{}
	cache := NewRedisProfileCache(&testutil.MockRedisClient{
		SetObjFunc: func(ctx context.Context, key string, obj any, ttl time.Duration) error {
			require.Equal(t, time.Hour, ttl)
			stored[key] = obj.(Profile)
			return nil
		},
		GetObjFunc: func(ctx context.Context, key string, v any) error {
			p, ok := stored[key]
			if !ok {
				return errors.New("redis: nil")
			}
			*(v.(*Profile)) = p
			return nil
		},
	}, 0)

	_, ok := cache.Get(ctx, "alice")
	require.False(t, ok)

	cache.Set(ctx, Profile{ID: "1", Handle: "Alice", Verified: true})
	profile, ok := cache.Get(ctx, "@ALICE")
	require.True(t, ok)
	require.True(t, profile.Verified)
}

func TestCachedResolver(t *testing.T) {
	ctx := testutil.MockContext()
	calls := 0
	resolver := NewCachedResolver(
		NewMemoryProfileCache(time.Minute),
		NewAPIProfileResolver(&testutil.MockTwitterEndpoint{
			GetUserFunc: func(ctx context.Context, handle string) (twitter.User, error) {
				calls++
				if handle == "ghost" {
					return twitter.User{}, twitter.ErrNotFound
				}
				return twitter.User{ID: "7", Handle: handle, Verified: true}, nil
			},
		}, time.Second),
	)

	for i := 0; i < 3; i++ {
		profile, err := resolver.Resolve(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, Profile{ID: "7", Handle: "alice", Verified: true}, profile)
	}
	require.Equal(t, 1, calls)

	_, err := resolver.Resolve(ctx, "ghost")
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestScraperFetcher_ResolverTimeout(t *testing.T) {
	ctx := testutil.MockContext()

	release := make(chan struct{})
	defer close(release)

	resolver := &blockingResolver{release: release}
	f := NewScraperFetcher(resolver, 50*time.Millisecond)
	f.getTweet = func(id string) (*twitterscraper.Tweet, error) {
		return &twitterscraper.Tweet{ID: id, Username: "alice", Text: "questx"}, nil
	}

	start := time.Now()
	_, err := f.Fetch(ctx, Reference{PostID: "123"})
	require.ErrorIs(t, err, ErrTransient)
	require.Less(t, time.Since(start), time.Second)
}

func TestScraperFetcher_TweetTimeout(t *testing.T) {
	ctx := testutil.MockContext()

	release := make(chan struct{})
	defer close(release)

	f := NewScraperFetcher(&blockingResolver{release: release}, 50*time.Millisecond)
	f.getTweet = func(id string) (*twitterscraper.Tweet, error) {
		<-release
		return nil, errors.New("too late")
	}

	_, err := f.Fetch(ctx, Reference{PostID: "123"})
	require.ErrorIs(t, err, ErrTransient)
}

func TestScraperProfileResolver(t *testing.T) {
	ctx := testutil.MockContext()

	release := make(chan struct{})
	defer close(release)

	r := NewScraperProfileResolver(50 * time.Millisecond)
	r.getProfile = func(handle string) (Profile, error) {
		switch handle {
		case "alice":
			return Profile{ID: "7", Handle: "alice", Verified: true}, nil
		case "ghost":
			return Profile{}, errors.New("user not found")
		}

		<-release
		return Profile{}, nil
	}

	profile, err := r.Resolve(ctx, "alice")
	require.NoError(t, err)
	require.True(t, profile.Verified)

	_, err = r.Resolve(ctx, "ghost")
	require.ErrorIs(t, err, ErrProfileNotFound)

	start := time.Now()
	_, err = r.Resolve(ctx, "hung")
	require.ErrorIs(t, err, ErrTransient)
	require.Less(t, time.Since(start), time.Second)
}

// blockingResolver ignores the context and waits until released.
type blockingResolver struct {
	release chan struct{}
}

func (r *blockingResolver) Resolve(ctx context.Context, handle string) (Profile, error) {
	<-r.release
	return Profile{}, ErrProfileNotFound
}

func TestSyntheticFetcher_Deterministic(t *testing.T) {
	ctx := context.Background()
	f := NewSyntheticFetcher()

	a, err := f.Fetch(ctx, Reference{PostID: "999", Handle: "alice"})
	require.NoError(t, err)
	b, err := f.Fetch(ctx, Reference{PostID: "999", Handle: "alice"})
	require.NoError(t, err)

	require.Equal(t, a, b)
	require.Equal(t, "alice", a.AuthorHandle)
	require.Contains(t, a.Text, "QuestX")
	require.Greater(t, a.Impressions, int64(0))
}

func TestNew(t *testing.T) {
	ctx := testutil.MockContext()
	cache := NewMemoryProfileCache(time.Minute)

	f, r, err := New(ctx, cache)
	require.NoError(t, err)
	require.IsType(t, &syntheticFetcher{}, f)
	require.NotNil(t, r)

	cfg := xcontext.Configs(ctx)
	cfg.Env = "production"
	_, _, err = New(xcontext.WithConfigs(ctx, cfg), cache)
	require.Error(t, err)

	cfg.Twitter = config.TwitterConfigs{
		Mode:           "api",
		APIEndpoints:   []string{"https://api.twitter.com"},
		AppAccessToken: "token",
	}
	f, _, err = New(xcontext.WithConfigs(ctx, cfg), cache)
	require.NoError(t, err)
	require.IsType(t, &twitterFetcher{}, f)
}
