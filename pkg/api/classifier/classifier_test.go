package classifier

import (
	"context"
	"net/http"
	"testing"

	"github.com/questx-lab/rewards/pkg/api"
	"github.com/stretchr/testify/require"
)

func TestParseResult(t *testing.T) {
	r, err := ParseResult("```json\n{\"score\": 7.5, \"reasoning\": \"specific\"}\n```")
	require.NoError(t, err)
	require.Equal(t, Result{Score: 7.5, Reasoning: "specific"}, r)

	_, err = ParseResult(`{"score": "high"}`)
	require.Error(t, err)

	_, err = ParseResult("I think it is a 7")
	require.Error(t, err)
}

func TestEndpoint_Classify(t *testing.T) {
	generator := &api.MockAPIGenerator{}
	generator.MockClient.BodyFunc = func(body api.Body) api.Client {
		j, ok := body.(api.JSON)
		require.True(t, ok)
		require.Equal(t, "test-model", j["model"])
		return &generator.MockClient
	}
	generator.MockClient.POSTFunc = func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
		return &api.Response{
			Code:    http.StatusOK,
			RawBody: []byte(`{"choices":[{"message":{"content":"{\"score\": 12, \"reasoning\": \"great\"}"}}]}`),
		}, nil
	}

	r, err := NewWithGenerator(generator, "key", "test-model").Classify(context.Background(), "text", "rubric")
	require.NoError(t, err)
	require.Equal(t, 12.0, r.Score)
	require.Equal(t, "great", r.Reasoning)
}

func TestEndpoint_Classify_Unconfigured(t *testing.T) {
	_, err := NewWithGenerator(&api.MockAPIGenerator{}, "", "").Classify(context.Background(), "text", "rubric")
	require.ErrorIs(t, err, ErrUnavailable)
}
