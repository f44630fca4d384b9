package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

// statusOf maps the error code to the transport status. Business failures
// keep 200 and carry the code in the envelope.
func statusOf(err error) int {
	errx := errorx.Error{}
	if !errors.As(err, &errx) {
		return http.StatusInternalServerError
	}

	switch errx.Code {
	case errorx.BadRequest, errorx.InvalidReference:
		return http.StatusBadRequest
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied, errorx.OwnershipMismatch:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.AlreadyExists, errorx.AlreadyClaimed:
		return http.StatusConflict
	case errorx.TooManyRequests:
		return http.StatusTooManyRequests
	case errorx.Unavailable:
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

func handleResponse() CloserFunc {
	return func(ctx context.Context) {
		gctx := ginContext(ctx)
		if gctx == nil {
			return
		}

		if err := xcontext.Error(ctx); err != nil {
			gctx.JSON(statusOf(err), newErrorResponse(err))
			return
		}

		gctx.JSON(http.StatusOK, newResponse(xcontext.Response(ctx)))
	}
}
