package twitter

import (
	"context"
	"net/http"
	"testing"

	"github.com/questx-lab/rewards/pkg/api"
	"github.com/stretchr/testify/require"
)

func jsonResponse(code int, body api.JSON) *api.Response {
	return &api.Response{Code: code, Body: body}
}

func TestEndpoint_GetTweet(t *testing.T) {
	generator := &api.MockAPIGenerator{}
	generator.MockClient.GETFunc = func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
		return jsonResponse(http.StatusOK, api.JSON{
			"data": map[string]any{
				"id":        "1",
				"text":      "hello questx",
				"author_id": "42",
				"public_metrics": map[string]any{
					"like_count":       float64(12),
					"retweet_count":    float64(3),
					"reply_count":      float64(2),
					"impression_count": float64(900),
				},
			},
			"includes": map[string]any{
				"users": []any{
					map[string]any{"id": "42", "username": "Alice", "verified": true},
				},
			},
		}), nil
	}

	tweet, err := NewWithGenerator(generator, "token").GetTweet(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, "hello questx", tweet.Text)
	require.Equal(t, "Alice", tweet.Author.Handle)
	require.True(t, tweet.Author.Verified)
	require.Equal(t, PublicMetrics{Likes: 12, Reposts: 3, Replies: 2, Impressions: 900}, tweet.Metrics)
}

func TestEndpoint_GetTweet_NotFound(t *testing.T) {
	generator := &api.MockAPIGenerator{}
	generator.MockClient.GETFunc = func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
		return jsonResponse(http.StatusOK, api.JSON{
			"errors": []any{map[string]any{"title": "Not Found Error", "detail": "gone"}},
		}), nil
	}

	_, err := NewWithGenerator(generator, "token").GetTweet(context.Background(), "1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEndpoint_GetTweet_RateLimit(t *testing.T) {
	generator := &api.MockAPIGenerator{}
	generator.MockClient.GETFunc = func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, api.JSON{}), nil
	}

	_, err := NewWithGenerator(generator, "token").GetTweet(context.Background(), "1")
	require.ErrorIs(t, err, ErrRateLimit)
}

func TestEndpoint_GetUser(t *testing.T) {
	generator := &api.MockAPIGenerator{}
	generator.MockClient.GETFunc = func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
		return jsonResponse(http.StatusOK, api.JSON{
			"data": map[string]any{"id": "42", "name": "Alice", "username": "alice", "verified": false},
		}), nil
	}

	user, err := NewWithGenerator(generator, "token").GetUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, User{ID: "42", Name: "Alice", Handle: "alice"}, user)
}
