package domain

import (
	"context"

	"github.com/questx-lab/rewards/internal/domain/statistic"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/pkg/errorx"
)

type StatisticDomain interface {
	GetLeaderBoard(context.Context, *model.GetLeaderBoardRequest) (*model.GetLeaderBoardResponse, error)
}

type statisticDomain struct {
	leaderboard statistic.Leaderboard
}

func NewStatisticDomain(leaderboard statistic.Leaderboard) *statisticDomain {
	return &statisticDomain{leaderboard: leaderboard}
}

func (d *statisticDomain) GetLeaderBoard(
	ctx context.Context, req *model.GetLeaderBoardRequest,
) (*model.GetLeaderBoardResponse, error) {
	if err := checkLimit(ctx, &req.Limit); err != nil {
		return nil, err
	}

	if req.Offset < 0 {
		return nil, errorx.New(errorx.BadRequest, "Offset must not be negative")
	}

	board, err := d.leaderboard.GetLeaderBoard(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	return &model.GetLeaderBoardResponse{LeaderBoard: board}, nil
}
