package fetcher

import (
	"context"
	"strings"
	"time"

	twitterscraper "github.com/n0madic/twitter-scraper"
	"github.com/pkg/errors"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

const defaultScrapeTimeout = 10 * time.Second

// The scraper reads the public web pages, so it needs no credentials but it
// cannot see impression counts.
type scraperFetcher struct {
	getTweet func(id string) (*twitterscraper.Tweet, error)
	resolver ProfileResolver
	timeout  time.Duration
}

func NewScraperFetcher(resolver ProfileResolver, timeout time.Duration) *scraperFetcher {
	if timeout <= 0 {
		timeout = defaultScrapeTimeout
	}

	return &scraperFetcher{getTweet: twitterscraper.New().GetTweet, resolver: resolver, timeout: timeout}
}

// withTimeout runs call in its own goroutine because the scraper does not
// take a context. The buffered channel lets the goroutine finish after the
// caller gave up.
func withTimeout[T any](ctx context.Context, timeout time.Duration, call func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		value T
		err   error
	}

	resultCh := make(chan result, 1)
	go func() {
		value, err := call(ctx)
		resultCh <- result{value: value, err: err}
	}()

	select {
	case r := <-resultCh:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, errors.Wrap(ErrTransient, ctx.Err().Error())
	}
}

// Fetch bounds the tweet page and the author profile lookup by one deadline.
func (f *scraperFetcher) Fetch(ctx context.Context, ref Reference) (PostData, error) {
	return withTimeout(ctx, f.timeout, func(ctx context.Context) (PostData, error) {
		return f.fetch(ctx, ref)
	})
}

func (f *scraperFetcher) fetch(ctx context.Context, ref Reference) (PostData, error) {
	tweet, err := f.getTweet(ref.PostID)
	if err != nil {
		if isScraperNotFound(err) {
			return PostData{}, ErrPostNotFound
		}

		xcontext.Logger(ctx).Warnf("Cannot scrape tweet %s: %v", ref.PostID, err)
		return PostData{}, errors.Wrap(ErrTransient, err.Error())
	}

	if tweet == nil || tweet.Username == "" {
		return PostData{}, ErrPostNotFound
	}

	profile, err := f.resolver.Resolve(ctx, tweet.Username)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return PostData{}, ErrPostNotFound
		}
		return PostData{}, err
	}

	return PostData{
		ID:             tweet.ID,
		AuthorID:       tweet.UserID,
		AuthorHandle:   tweet.Username,
		AuthorVerified: profile.Verified,
		Text:           tweet.Text,
		Likes:          int64(tweet.Likes),
		Reposts:        int64(tweet.Retweets),
		Replies:        int64(tweet.Replies),
	}, nil
}

type scraperProfileResolver struct {
	getProfile func(handle string) (Profile, error)
	timeout    time.Duration
}

func NewScraperProfileResolver(timeout time.Duration) *scraperProfileResolver {
	if timeout <= 0 {
		timeout = defaultScrapeTimeout
	}

	scraper := twitterscraper.New()
	return &scraperProfileResolver{
		getProfile: func(handle string) (Profile, error) {
			profile, err := scraper.GetProfile(handle)
			if err != nil {
				return Profile{}, err
			}

			return Profile{
				ID:       profile.UserID,
				Handle:   profile.Username,
				Verified: profile.IsVerified,
			}, nil
		},
		timeout: timeout,
	}
}

func (r *scraperProfileResolver) Resolve(ctx context.Context, handle string) (Profile, error) {
	return withTimeout(ctx, r.timeout, func(context.Context) (Profile, error) {
		profile, err := r.getProfile(handle)
		if err != nil {
			if isScraperNotFound(err) {
				return Profile{}, ErrProfileNotFound
			}
			return Profile{}, errors.Wrap(ErrTransient, err.Error())
		}

		return profile, nil
	})
}

func isScraperNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "suspended")
}
