package middleware

import (
	"context"
	"strings"

	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/router"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

type AuthVerifier struct{}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := bearerToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		engine := xcontext.TokenEngine(ctx)
		if engine == nil {
			xcontext.Logger(ctx).Errorf("Token engine is not set")
			return nil, errorx.Unknown
		}

		info, err := engine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired token")
		}

		ctx = xcontext.WithRequestUserID(ctx, info.ID)
		ctx = xcontext.WithRequestUserKind(ctx, info.Kind)
		return ctx, nil
	}
}

func bearerToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	auth, token, found := strings.Cut(req.Header.Get("Authorization"), " ")
	if !found || auth != "Bearer" {
		return ""
	}

	return token
}
