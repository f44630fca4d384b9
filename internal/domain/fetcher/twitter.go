package fetcher

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/questx-lab/rewards/pkg/api/twitter"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

type twitterFetcher struct {
	endpoint twitter.IEndpoint
	cache    ProfileCache
	timeout  time.Duration
}

func NewTwitterFetcher(endpoint twitter.IEndpoint, cache ProfileCache, timeout time.Duration) *twitterFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &twitterFetcher{endpoint: endpoint, cache: cache, timeout: timeout}
}

func (f *twitterFetcher) Fetch(ctx context.Context, ref Reference) (PostData, error) {
	tctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	tweet, err := f.endpoint.GetTweet(tctx, ref.PostID)
	if err != nil {
		if errors.Is(err, twitter.ErrNotFound) {
			return PostData{}, ErrPostNotFound
		}

		xcontext.Logger(ctx).Warnf("Cannot fetch tweet %s: %v", ref.PostID, err)
		return PostData{}, errors.Wrap(ErrTransient, err.Error())
	}

	// The tweet carries the current author flag, refresh the cached profile
	// with it.
	f.cache.Set(ctx, Profile{
		ID:       tweet.Author.ID,
		Handle:   tweet.Author.Handle,
		Verified: tweet.Author.Verified,
	})

	return PostData{
		ID:             tweet.ID,
		AuthorID:       tweet.AuthorID,
		AuthorHandle:   tweet.Author.Handle,
		AuthorVerified: tweet.Author.Verified,
		Text:           tweet.Text,
		Likes:          tweet.Metrics.Likes,
		Reposts:        tweet.Metrics.Reposts + tweet.Metrics.Quotes,
		Replies:        tweet.Metrics.Replies,
		Impressions:    tweet.Metrics.Impressions,
	}, nil
}

type apiProfileResolver struct {
	endpoint twitter.IEndpoint
	timeout  time.Duration
}

func NewAPIProfileResolver(endpoint twitter.IEndpoint, timeout time.Duration) *apiProfileResolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &apiProfileResolver{endpoint: endpoint, timeout: timeout}
}

func (r *apiProfileResolver) Resolve(ctx context.Context, handle string) (Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	user, err := r.endpoint.GetUser(ctx, handle)
	if err != nil {
		if errors.Is(err, twitter.ErrNotFound) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, errors.Wrap(ErrTransient, err.Error())
	}

	return Profile{ID: user.ID, Handle: user.Handle, Verified: user.Verified}, nil
}
