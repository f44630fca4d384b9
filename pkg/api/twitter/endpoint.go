package twitter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/questx-lab/rewards/config"
	"github.com/questx-lab/rewards/pkg/api"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

var (
	ErrNotFound  = errors.New("twitter resource not found")
	ErrRateLimit = errors.New("twitter rate limit exceeded")
)

type Endpoint struct {
	apiGenerator api.Generator
	token        string
}

func New(cfg config.TwitterConfigs) *Endpoint {
	return &Endpoint{
		apiGenerator: api.NewGenerator(cfg.APIEndpoints...),
		token:        cfg.AppAccessToken,
	}
}

func NewWithGenerator(generator api.Generator, token string) *Endpoint {
	return &Endpoint{apiGenerator: generator, token: token}
}

func (e *Endpoint) GetTweet(ctx context.Context, tweetID string) (Tweet, error) {
	resp, err := e.apiGenerator.New("/2/tweets/%s", tweetID).
		Query(api.Parameter{
			"expansions":   "author_id",
			"tweet.fields": "author_id,public_metrics,text",
			"user.fields":  "username,verified",
		}).
		GET(ctx, api.OAuth2("Bearer", e.token))
	if err != nil {
		return Tweet{}, err
	}

	if err := checkResponse(ctx, resp); err != nil {
		return Tweet{}, err
	}

	var result tweetResponse
	if err := mapstructure.Decode(resp.Body, &result); err != nil {
		return Tweet{}, errors.Wrap(err, "cannot decode tweet")
	}

	if result.Data == nil {
		if isMissingResource(result.Errors) {
			return Tweet{}, ErrNotFound
		}
		return Tweet{}, fmt.Errorf("empty tweet data: %v", result.Errors)
	}

	tweet := *result.Data
	for _, u := range result.Includes.Users {
		if u.ID == tweet.AuthorID {
			tweet.Author = u
			break
		}
	}

	if tweet.Author.Handle == "" {
		return Tweet{}, errors.New("cannot resolve tweet author")
	}

	return tweet, nil
}

func (e *Endpoint) GetUser(ctx context.Context, handle string) (User, error) {
	resp, err := e.apiGenerator.New("/2/users/by/username/%s", handle).
		Query(api.Parameter{"user.fields": "username,verified"}).
		GET(ctx, api.OAuth2("Bearer", e.token))
	if err != nil {
		return User{}, err
	}

	if err := checkResponse(ctx, resp); err != nil {
		return User{}, err
	}

	var result userResponse
	if err := mapstructure.Decode(resp.Body, &result); err != nil {
		return User{}, errors.Wrap(err, "cannot decode user")
	}

	if result.Data == nil {
		if isMissingResource(result.Errors) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("empty user data: %v", result.Errors)
	}

	if result.Data.Handle == "" {
		return User{}, errors.New("cannot get user info")
	}

	return *result.Data, nil
}

func checkResponse(ctx context.Context, resp *api.Response) error {
	if IsRateLimit(resp) {
		return ErrRateLimit
	}

	switch resp.Code {
	case http.StatusOK:
		if _, ok := resp.Body.(api.JSON); !ok {
			return errors.New("invalid body format")
		}
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	}

	xcontext.Logger(ctx).Errorf("Invalid status code of twitter: %d %s", resp.Code, resp.RawBody)
	return fmt.Errorf("invalid status code %d", resp.Code)
}
