package middleware

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/pkg/authenticator"
	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newRequestContext(t *testing.T, authorization string) context.Context {
	engine := authenticator.NewTokenEngine[model.AccessToken]("secret", time.Minute)
	req, err := http.NewRequest(http.MethodPost, "/submitPost", nil)
	require.NoError(t, err)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	ctx := xcontext.WithTokenEngine(context.Background(), engine)
	return xcontext.WithHTTPRequest(ctx, req)
}

func TestAuthVerifier_Valid(t *testing.T) {
	engine := authenticator.NewTokenEngine[model.AccessToken]("secret", time.Minute)
	token, err := engine.Generate("user1", model.AccessToken{ID: "user1", Kind: "human"})
	require.NoError(t, err)

	ctx := newRequestContext(t, "Bearer "+token)
	newCtx, err := NewAuthVerifier().Middleware()(ctx)
	require.NoError(t, err)
	require.Equal(t, "user1", xcontext.RequestUserID(newCtx))
	require.Equal(t, "human", xcontext.RequestUserKind(newCtx))
}

func TestAuthVerifier_Missing(t *testing.T) {
	ctx := newRequestContext(t, "")
	_, err := NewAuthVerifier().Middleware()(ctx)
	require.ErrorIs(t, err, errorx.New(errorx.Unauthenticated, ""))

	ctx = newRequestContext(t, "Basic dXNlcjE6cGFzcw==")
	_, err = NewAuthVerifier().Middleware()(ctx)
	require.ErrorIs(t, err, errorx.New(errorx.Unauthenticated, ""))
}

func TestAuthVerifier_Invalid(t *testing.T) {
	ctx := newRequestContext(t, "Bearer not-a-token")
	_, err := NewAuthVerifier().Middleware()(ctx)
	require.ErrorIs(t, err, errorx.New(errorx.Unauthenticated, ""))
}
