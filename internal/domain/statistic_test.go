package domain

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/questx-lab/rewards/internal/domain/statistic"
	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func Test_statisticDomain_GetLeaderBoard(t *testing.T) {
	domain := NewStatisticDomain(
		statistic.New(
			repository.NewLedgerRepository(),
			&testutil.MockRedisClient{
				ExistFunc: func(ctx context.Context, key string) (bool, error) {
					return true, nil
				},
				ZRevRangeWithScoresFunc: func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
					return []redis.Z{{Member: "user1", Score: 100}, {Member: "user2", Score: 85}}, nil
				},
			}),
	)

	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	resp, err := domain.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{Offset: 0, Limit: 2})
	require.NoError(t, err)

	want := &model.GetLeaderBoardResponse{
		LeaderBoard: []model.UserStatistic{
			{UserID: testutil.User1.ID, Points: 10, CurrentRank: 1},
			{UserID: testutil.User2.ID, Points: 8.5, CurrentRank: 2},
		},
	}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("GetLeaderBoard() mismatch (-want +got):\n%s", diff)
	}
}

func Test_statisticDomain_GetLeaderBoard_Database(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	ledgerRepo := repository.NewLedgerRepository()
	_, err := ledgerRepo.Credit(ctx, testutil.User2.ID, entity.NewPoints(3), false, "s1")
	require.NoError(t, err)
	_, err = ledgerRepo.Credit(ctx, testutil.User1.ID, entity.NewPoints(1.5), true, "ref:L1")
	require.NoError(t, err)

	domain := NewStatisticDomain(statistic.New(ledgerRepo, nil))

	resp, err := domain.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{Limit: 2})
	require.NoError(t, err)
	require.Equal(t, []model.UserStatistic{
		{UserID: testutil.User2.ID, Points: 3, CurrentRank: 1},
		{UserID: testutil.User1.ID, Points: 1.5, CurrentRank: 2},
	}, resp.LeaderBoard)

	resp, err = domain.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, resp.LeaderBoard, 1)
	require.Equal(t, 2, resp.LeaderBoard[0].CurrentRank)

	_, err = domain.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{Limit: 51})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, ""))

	_, err = domain.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{Offset: -1})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, ""))
}
