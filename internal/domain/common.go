package domain

import (
	"context"

	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

func checkLimit(ctx context.Context, limit *int) error {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if *limit == 0 {
		*limit = apiCfg.DefaultLimit
	}

	if *limit < 0 {
		return errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if *limit > apiCfg.MaxLimit {
		return errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	return nil
}
