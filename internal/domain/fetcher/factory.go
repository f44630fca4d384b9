package fetcher

import (
	"context"
	"errors"

	"github.com/questx-lab/rewards/pkg/api/twitter"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

// New builds the fetcher and the profile resolver from the twitter configs.
// Outside production an unconfigured platform falls back to synthetic data.
func New(ctx context.Context, cache ProfileCache) (Fetcher, ProfileResolver, error) {
	cfg := xcontext.Configs(ctx)
	twitterCfg := cfg.Twitter

	if !twitterCfg.Configured() {
		if cfg.IsProduction() {
			return nil, nil, errors.New("twitter is not configured")
		}

		xcontext.Logger(ctx).Warnf("Twitter is not configured, serve synthetic posts")
		synthetic := NewSyntheticFetcher()
		return synthetic, NewCachedResolver(cache, synthetic), nil
	}

	switch twitterCfg.Mode {
	case "api":
		endpoint := twitter.New(twitterCfg)
		resolver := NewCachedResolver(cache, NewAPIProfileResolver(endpoint, twitterCfg.Timeout))
		return NewTwitterFetcher(endpoint, cache, twitterCfg.Timeout), resolver, nil

	case "scraper":
		resolver := NewCachedResolver(cache, NewScraperProfileResolver(twitterCfg.Timeout))
		return NewScraperFetcher(resolver, twitterCfg.Timeout), resolver, nil
	}

	return nil, nil, errors.New("unknown twitter mode")
}
