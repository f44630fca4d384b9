package router

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

type ginWriterKey struct{}

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	befores := router.befores
	afters := router.afters
	closers := router.closers

	return func(gctx *gin.Context) {
		ctx := router.rootCtx
		ctx = xcontext.WithHTTPRequest(ctx, gctx.Request)
		ctx = context.WithValue(ctx, ginWriterKey{}, gctx)
		ctx = mergeCancel(ctx, gctx.Request.Context())

		defer func() {
			for _, c := range closers {
				c(ctx)
			}
		}()

		for _, m := range befores {
			newCtx, err := m(ctx)
			if err != nil {
				ctx = xcontext.WithError(ctx, err)
				return
			}
			if newCtx != nil {
				ctx = newCtx
			}
		}

		var req Request
		var err error
		switch method {
		case "GET":
			err = gctx.ShouldBindQuery(&req)
		case "POST":
			err = gctx.ShouldBindJSON(&req)
		default:
			err = errors.New("unsupported method")
		}
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
			ctx = xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Invalid request"))
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			return
		}
		ctx = xcontext.WithResponse(ctx, resp)

		for _, m := range afters {
			newCtx, err := m(ctx)
			if err != nil {
				ctx = xcontext.WithError(ctx, err)
				return
			}
			if newCtx != nil {
				ctx = newCtx
			}
		}
	}
}

func ginContext(ctx context.Context) *gin.Context {
	gctx, _ := ctx.Value(ginWriterKey{}).(*gin.Context)
	return gctx
}

// mergeCancel keeps the values of base and the cancellation of the request.
func mergeCancel(base, req context.Context) context.Context {
	return requestContext{Context: req, values: base}
}

type requestContext struct {
	context.Context
	values context.Context
}

func (c requestContext) Value(key any) any {
	if v := c.values.Value(key); v != nil {
		return v
	}

	return c.Context.Value(key)
}
