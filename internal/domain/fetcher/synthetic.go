package fetcher

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

// syntheticFetcher serves deterministic fake posts for local development. It
// must never be used in production.
type syntheticFetcher struct{}

func NewSyntheticFetcher() *syntheticFetcher {
	return &syntheticFetcher{}
}

func (f *syntheticFetcher) Fetch(ctx context.Context, ref Reference) (PostData, error) {
	h := fnv.New64a()
	h.Write([]byte(ref.PostID))
	seed := h.Sum64()

	handle := ref.Handle
	if handle == "" {
		handle = fmt.Sprintf("synthetic_%d", seed%10000)
	}

	impressions := int64(seed%50000) + 100
	return PostData{
		ID:             ref.PostID,
		AuthorID:       fmt.Sprintf("%d", seed%1_000_000_000),
		AuthorHandle:   handle,
		AuthorVerified: seed%5 == 0,
		Text:           fmt.Sprintf("Trying out QuestX bounties with the community #%s", strings.ToLower(ref.PostID)),
		Likes:          impressions / int64(20+seed%30),
		Reposts:        impressions / int64(100+seed%200),
		Replies:        impressions / int64(200+seed%300),
		Impressions:    impressions,
	}, nil
}

func (f *syntheticFetcher) Resolve(ctx context.Context, handle string) (Profile, error) {
	h := fnv.New64a()
	h.Write([]byte(NormalizeHandle(handle)))
	seed := h.Sum64()

	return Profile{
		ID:       fmt.Sprintf("%d", seed%1_000_000_000),
		Handle:   strings.TrimPrefix(handle, "@"),
		Verified: seed%5 == 0,
	}, nil
}
