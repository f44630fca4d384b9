package testutil

import (
	"context"
	"errors"

	"github.com/questx-lab/rewards/pkg/api/classifier"
	"github.com/questx-lab/rewards/pkg/api/twitter"
)

type MockTwitterEndpoint struct {
	GetUserFunc  func(context.Context, string) (twitter.User, error)
	GetTweetFunc func(context.Context, string) (twitter.Tweet, error)
}

func (e *MockTwitterEndpoint) GetUser(ctx context.Context, handle string) (twitter.User, error) {
	if e.GetUserFunc != nil {
		return e.GetUserFunc(ctx, handle)
	}

	return twitter.User{}, errors.New("not implemented")
}

func (e *MockTwitterEndpoint) GetTweet(ctx context.Context, id string) (twitter.Tweet, error) {
	if e.GetTweetFunc != nil {
		return e.GetTweetFunc(ctx, id)
	}

	return twitter.Tweet{}, errors.New("not implemented")
}

type MockClassifier struct {
	ClassifyFunc func(ctx context.Context, text, rubric string) (classifier.Result, error)
}

func (c *MockClassifier) Classify(ctx context.Context, text, rubric string) (classifier.Result, error) {
	if c.ClassifyFunc != nil {
		return c.ClassifyFunc(ctx, text, rubric)
	}

	return classifier.Result{}, classifier.ErrUnavailable
}

type MockMarketingEndpoint struct {
	TagContactFunc func(ctx context.Context, email, tag string) error
}

func (e *MockMarketingEndpoint) TagContact(ctx context.Context, email, tag string) error {
	if e.TagContactFunc != nil {
		return e.TagContactFunc(ctx, email, tag)
	}

	return errors.New("not implemented")
}
