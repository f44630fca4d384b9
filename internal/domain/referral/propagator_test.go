package referral

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/pkg/testutil"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newPropagator() *propagator {
	return NewPropagator(repository.NewUserRepository(), repository.NewLedgerRepository())
}

func referralPoints(t *testing.T, ctx context.Context, userID string) entity.Points {
	ledger, err := repository.NewLedgerRepository().Get(ctx, userID)
	require.NoError(t, err)
	return ledger.ReferralPoints
}

func TestPropagate_FourLevels(t *testing.T) {
	ctx := testutil.MockContext()
	// earner, L1, L2, L3, L4, L5
	chain, err := testutil.SampleChain(ctx, true, true, true, true, true, true)
	require.NoError(t, err)

	credits := newPropagator().Propagate(ctx, chain[0].ID, entity.NewPoints(100), "post1")
	require.Equal(t, []Credit{
		{AncestorID: chain[1].ID, Level: 1, Amount: entity.NewPoints(20)},
		{AncestorID: chain[2].ID, Level: 2, Amount: entity.NewPoints(15)},
		{AncestorID: chain[3].ID, Level: 3, Amount: entity.NewPoints(10)},
		{AncestorID: chain[4].ID, Level: 4, Amount: entity.NewPoints(5)},
	}, credits)

	require.Equal(t, entity.NewPoints(20), referralPoints(t, ctx, chain[1].ID))
	require.Equal(t, entity.NewPoints(15), referralPoints(t, ctx, chain[2].ID))
	require.Equal(t, entity.NewPoints(10), referralPoints(t, ctx, chain[3].ID))
	require.Equal(t, entity.NewPoints(5), referralPoints(t, ctx, chain[4].ID))
	require.Equal(t, entity.Points(0), referralPoints(t, ctx, chain[5].ID))
	require.Equal(t, entity.Points(0), referralPoints(t, ctx, chain[0].ID))

	var count int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.PointEvent{}).
		Where("type=?", entity.ReferralPointEvent).Count(&count).Error)
	require.Equal(t, int64(4), count)
}

func TestPropagate_UnverifiedEarner(t *testing.T) {
	ctx := testutil.MockContext()
	chain, err := testutil.SampleChain(ctx, false, true, true)
	require.NoError(t, err)

	credits := newPropagator().Propagate(ctx, chain[0].ID, entity.NewPoints(50), "post1")
	require.Empty(t, credits)
	require.Equal(t, entity.Points(0), referralPoints(t, ctx, chain[1].ID))
	require.Equal(t, entity.Points(0), referralPoints(t, ctx, chain[2].ID))

	var count int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.PointEvent{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestPropagate_UnverifiedIntermediate(t *testing.T) {
	ctx := testutil.MockContext()
	// earner -> A (unverified) -> B (verified)
	chain, err := testutil.SampleChain(ctx, true, false, true)
	require.NoError(t, err)

	credits := newPropagator().Propagate(ctx, chain[0].ID, entity.NewPoints(100), "post1")
	require.Equal(t, []Credit{
		{AncestorID: chain[2].ID, Level: 2, Amount: entity.NewPoints(15)},
	}, credits)

	require.Equal(t, entity.Points(0), referralPoints(t, ctx, chain[1].ID))
	require.Equal(t, entity.NewPoints(15), referralPoints(t, ctx, chain[2].ID))
}

func TestPropagate_ShortChainAndRounding(t *testing.T) {
	ctx := testutil.MockContext()
	chain, err := testutil.SampleChain(ctx, true, true)
	require.NoError(t, err)

	// 20% of 12.3 is 2.46, rounded to 2.5.
	credits := newPropagator().Propagate(ctx, chain[0].ID, entity.NewPoints(12.3), "post1")
	require.Equal(t, []Credit{
		{AncestorID: chain[1].ID, Level: 1, Amount: entity.NewPoints(2.5)},
	}, credits)
}

func TestPropagate_Cycle(t *testing.T) {
	ctx := testutil.MockContext()
	chain, err := testutil.SampleChain(ctx, true, true)
	require.NoError(t, err)

	// Make the root point back to the earner.
	err = xcontext.DB(ctx).Model(&entity.PointsLedger{}).
		Where("user_id=?", chain[1].ID).
		Update("referred_by", sql.NullString{String: chain[0].ID, Valid: true}).Error
	require.NoError(t, err)

	credits := newPropagator().Propagate(ctx, chain[0].ID, entity.NewPoints(100), "post1")
	require.Equal(t, []Credit{
		{AncestorID: chain[1].ID, Level: 1, Amount: entity.NewPoints(20)},
	}, credits)

	ledger, err := repository.NewLedgerRepository().Get(ctx, chain[0].ID)
	require.NoError(t, err)
	require.Equal(t, entity.Points(0), ledger.ReferralPoints)
}

func TestPropagate_CycleWithoutEarner(t *testing.T) {
	ctx := testutil.MockContext()
	chain, err := testutil.SampleChain(ctx, true, true, true)
	require.NoError(t, err)

	// chain[1] and chain[2] refer each other, the walk stays bounded.
	err = xcontext.DB(ctx).Model(&entity.PointsLedger{}).
		Where("user_id=?", chain[2].ID).
		Update("referred_by", sql.NullString{String: chain[1].ID, Valid: true}).Error
	require.NoError(t, err)

	credits := newPropagator().Propagate(ctx, chain[0].ID, entity.NewPoints(100), "post1")
	require.Len(t, credits, 4)
	for _, c := range credits {
		require.NotEqual(t, chain[0].ID, c.AncestorID)
	}
}

type failingLedger struct {
	repository.LedgerRepository
	failFor string
}

func (l *failingLedger) Credit(
	ctx context.Context, userID string, delta entity.Points, isReferral bool, reference string,
) (entity.Points, error) {
	if userID == l.failFor {
		return 0, errors.New("database is down")
	}

	return l.LedgerRepository.Credit(ctx, userID, delta, isReferral, reference)
}

func TestPropagate_FailureContinues(t *testing.T) {
	ctx := testutil.MockContext()
	chain, err := testutil.SampleChain(ctx, true, true, true)
	require.NoError(t, err)

	p := NewPropagator(repository.NewUserRepository(), &failingLedger{
		LedgerRepository: repository.NewLedgerRepository(),
		failFor:          chain[1].ID,
	})

	credits := p.Propagate(ctx, chain[0].ID, entity.NewPoints(100), "post1")
	require.Equal(t, []Credit{
		{AncestorID: chain[2].ID, Level: 2, Amount: entity.NewPoints(15)},
	}, credits)
}
