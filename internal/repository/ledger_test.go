package repository_test

import (
	"errors"
	"testing"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/pkg/testutil"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func Test_ledgerRepository_Credit(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewLedgerRepository()

	total, err := repo.Credit(ctx, testutil.User1.ID, entity.NewPoints(4.5), false, "s1")
	require.NoError(t, err)
	require.Equal(t, entity.NewPoints(4.5), total)

	total, err = repo.Credit(ctx, testutil.User1.ID, entity.NewPoints(0.9), true, "ref:L1")
	require.NoError(t, err)
	require.Equal(t, entity.NewPoints(5.4), total)

	// A zero point submission is logged but not counted.
	total, err = repo.Credit(ctx, testutil.User1.ID, 0, false, "s2")
	require.NoError(t, err)
	require.Equal(t, entity.NewPoints(5.4), total)

	ledger, err := repo.Get(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.NewPoints(5.4), ledger.TotalPoints)
	require.Equal(t, entity.NewPoints(0.9), ledger.ReferralPoints)
	require.Equal(t, uint64(1), ledger.Submissions)
	require.True(t, ledger.LastSubmissionAt.Valid)
	require.Equal(t, repository.ReferralCode(testutil.User1.ID), ledger.ReferralCode)

	var events []entity.PointEvent
	require.NoError(t, xcontext.DB(ctx).Where("user_id=?", testutil.User1.ID).Order("id").Find(&events).Error)
	require.Len(t, events, 3)
	require.Equal(t, entity.SubmissionPointEvent, events[0].Type)
	require.Equal(t, entity.ReferralPointEvent, events[1].Type)
	require.Equal(t, "ref:L1", events[1].Reference)
	require.Equal(t, entity.NewPoints(5.4), events[2].BalanceAfter)
}

func Test_ledgerRepository_Credit_CreatesLedger(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewLedgerRepository()

	_, err := repo.Get(ctx, "fresh")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	total, err := repo.Credit(ctx, "fresh", entity.NewPoints(1.2), true, "ref:L2")
	require.NoError(t, err)
	require.Equal(t, entity.NewPoints(1.2), total)

	ledger, err := repo.Get(ctx, "fresh")
	require.NoError(t, err)
	require.Equal(t, entity.NewPoints(1.2), ledger.ReferralPoints)
	require.Equal(t, uint64(0), ledger.Submissions)
	require.False(t, ledger.LastSubmissionAt.Valid)

	byCode, err := repo.GetByReferralCode(ctx, repository.ReferralCode("fresh"))
	require.NoError(t, err)
	require.Equal(t, "fresh", byCode.UserID)
}

func Test_ledgerRepository_Credit_Concurrent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewLedgerRepository()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < 100; i++ {
		g.Go(func() error {
			_, err := repo.Credit(gctx, testutil.User2.ID, entity.NewPoints(1), false, "concurrent")
			return err
		})
	}
	require.NoError(t, g.Wait())

	ledger, err := repo.Get(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, entity.NewPoints(100), ledger.TotalPoints)
	require.Equal(t, "100.0", ledger.TotalPoints.String())
	require.Equal(t, uint64(100), ledger.Submissions)

	var count int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.PointEvent{}).Count(&count).Error)
	require.Equal(t, int64(100), count)
}

func Test_ledgerRepository_GetList_CountHigher(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewLedgerRepository()

	credits := map[string]float64{
		testutil.User1.ID: 3,
		testutil.User2.ID: 7,
		testutil.User3.ID: 5,
	}
	for userID, points := range credits {
		_, err := repo.Credit(ctx, userID, entity.NewPoints(points), false, "s")
		require.NoError(t, err)
	}

	ledgers, err := repo.GetList(ctx, 0, 3)
	require.NoError(t, err)
	require.Len(t, ledgers, 3)
	require.Equal(t, testutil.User2.ID, ledgers[0].UserID)
	require.Equal(t, testutil.User3.ID, ledgers[1].UserID)
	require.Equal(t, testutil.User1.ID, ledgers[2].UserID)

	higher, err := repo.CountHigher(ctx, entity.NewPoints(5))
	require.NoError(t, err)
	require.Equal(t, int64(1), higher)

	higher, err = repo.CountHigher(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, int64(3), higher)
}

func Test_ledgerRepository_IncreaseReferralCount(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewLedgerRepository()

	require.NoError(t, repo.IncreaseReferralCount(ctx, testutil.User1.ID))
	ledger, err := repo.Get(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(2), ledger.ReferralCount)

	require.Error(t, repo.IncreaseReferralCount(ctx, "unknown"))
}
