package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string `json:"name" form:"name"`
	Limit int    `json:"limit" form:"limit"`
}

type echoResponse struct {
	Greeting string `json:"greeting"`
	Limit    int    `json:"limit"`
	UserID   string `json:"user_id"`
}

type rawResponse struct {
	Code  int64           `json:"code"`
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Name == "taken" {
		return nil, errorx.New(errorx.AlreadyClaimed, "This post has already been claimed")
	}

	return &echoResponse{
		Greeting: "hello " + req.Name,
		Limit:    req.Limit,
		UserID:   xcontext.RequestUserID(ctx),
	}, nil
}

func serve(t *testing.T, h http.Handler, method, target, body string) (int, rawResponse) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp rawResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestRouter(t *testing.T) {
	r := New(context.Background())

	var closed []string
	r.AddCloser(func(ctx context.Context) {
		closed = append(closed, xcontext.HTTPRequest(ctx).URL.Path)
	})

	public := r.Branch()
	POST(public, "/echo", echo)
	GET(public, "/echo", echo)

	private := r.Branch()
	private.Before(func(ctx context.Context) (context.Context, error) {
		if xcontext.HTTPRequest(ctx).Header.Get("Authorization") == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}
		return xcontext.WithRequestUserID(ctx, "user1"), nil
	})
	POST(private, "/private", echo)

	t.Run("post", func(t *testing.T) {
		status, resp := serve(t, r.Handler(), http.MethodPost, "/echo", `{"name":"alice","limit":3}`)
		require.Equal(t, http.StatusOK, status)
		require.Zero(t, resp.Code)
		require.JSONEq(t, `{"greeting":"hello alice","limit":3,"user_id":""}`, string(resp.Data))
	})

	t.Run("get", func(t *testing.T) {
		status, resp := serve(t, r.Handler(), http.MethodGet, "/echo?name=bob&limit=2", "")
		require.Equal(t, http.StatusOK, status)
		require.JSONEq(t, `{"greeting":"hello bob","limit":2,"user_id":""}`, string(resp.Data))
	})

	t.Run("business error", func(t *testing.T) {
		status, resp := serve(t, r.Handler(), http.MethodPost, "/echo", `{"name":"taken"}`)
		require.Equal(t, http.StatusConflict, status)
		require.Equal(t, int64(errorx.AlreadyClaimed), resp.Code)
		require.Equal(t, "This post has already been claimed", resp.Error)
	})

	t.Run("bad body", func(t *testing.T) {
		status, resp := serve(t, r.Handler(), http.MethodPost, "/echo", `{"name":`)
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, int64(errorx.BadRequest), resp.Code)
	})

	t.Run("middleware", func(t *testing.T) {
		status, resp := serve(t, r.Handler(), http.MethodPost, "/private", `{"name":"carol"}`)
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, int64(errorx.Unauthenticated), resp.Code)

		req := httptest.NewRequest(http.MethodPost, "/private", strings.NewReader(`{"name":"carol"}`))
		req.Header.Set("Authorization", "Bearer x")
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"user_id":"user1"`)
	})

	require.Equal(t, []string{"/echo", "/echo", "/echo", "/echo", "/private", "/private"}, closed)
}

func TestStatusOf(t *testing.T) {
	require.Equal(t, http.StatusForbidden, statusOf(errorx.New(errorx.OwnershipMismatch, "")))
	require.Equal(t, http.StatusServiceUnavailable, statusOf(errorx.New(errorx.Unavailable, "")))
	require.Equal(t, http.StatusBadRequest, statusOf(errorx.New(errorx.InvalidReference, "")))
	require.Equal(t, http.StatusInternalServerError, statusOf(errorx.Unknown))
	require.Equal(t, http.StatusInternalServerError, statusOf(context.Canceled))
}
