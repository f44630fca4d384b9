package twitter

import "context"

type IEndpoint interface {
	GetTweet(ctx context.Context, tweetID string) (Tweet, error)
	GetUser(ctx context.Context, handle string) (User, error)
}
