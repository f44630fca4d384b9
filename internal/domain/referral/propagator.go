package referral

import (
	"context"
	"errors"
	"fmt"

	"github.com/questx-lab/rewards/internal/common"
	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"gorm.io/gorm"
)

// Rates are the shares of the earned points paid to the ancestors, indexed by
// level minus one.
var Rates = []float64{0.20, 0.15, 0.10, 0.05}

type Credit struct {
	AncestorID string
	Level      int
	Amount     entity.Points
}

type Propagator interface {
	Propagate(ctx context.Context, earnerID string, earned entity.Points, reference string) []Credit
}

type propagator struct {
	userRepo   repository.UserRepository
	ledgerRepo repository.LedgerRepository
}

func NewPropagator(
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
) *propagator {
	return &propagator{userRepo: userRepo, ledgerRepo: ledgerRepo}
}

// ancestor is the frame carried through the walk.
type ancestor struct {
	userID   string
	level    int
	verified bool
}

// Propagate pays the referral share of earned to at most len(Rates)
// ancestors. Failures are logged and skipped, the returned credits are the
// ones which were written.
func (p *propagator) Propagate(
	ctx context.Context,
	earnerID string,
	earned entity.Points,
	reference string,
) []Credit {
	credits := []Credit{}
	if earned <= 0 {
		return credits
	}

	earner, err := p.userRepo.GetByID(ctx, earnerID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get earner %s: %v", earnerID, err)
		return credits
	}

	if !earner.EmailVerified {
		xcontext.Logger(ctx).Debugf("Earner %s is not verified, skip referral rewards", earnerID)
		return credits
	}

	currentID := earnerID
	for level := 1; level <= len(Rates); level++ {
		parentID, err := p.parentOf(ctx, currentID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get referrer of %s: %v", currentID, err)
			break
		}

		// A cycle back to the earner ends the walk, nobody earns from their
		// own submission.
		if parentID == "" || parentID == earnerID {
			break
		}

		frame := ancestor{userID: parentID, level: level}
		parent, err := p.userRepo.GetByID(ctx, parentID)
		if err != nil {
			// The chain is broken, there is nobody to walk to.
			xcontext.Logger(ctx).Errorf("Cannot get referrer %s: %v", parentID, err)
			break
		}
		frame.verified = parent.EmailVerified
		currentID = parentID

		if !frame.verified {
			continue
		}

		amount := earned.Mul(Rates[level-1])
		if amount <= 0 {
			continue
		}

		_, err = p.ledgerRepo.Credit(ctx, frame.userID, amount, true,
			fmt.Sprintf("%s:L%d", reference, frame.level))
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot credit referral reward to %s: %v", frame.userID, err)
			common.PromCounters[common.LedgerCreditFailure].WithLabelValues("referral").Inc()
			continue
		}

		common.PromCounters[common.ReferralCreditTotal].WithLabelValues(fmt.Sprint(frame.level)).Inc()
		credits = append(credits, Credit{AncestorID: frame.userID, Level: frame.level, Amount: amount})
	}

	return credits
}

func (p *propagator) parentOf(ctx context.Context, userID string) (string, error) {
	ledger, err := p.ledgerRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	if !ledger.ReferredBy.Valid {
		return "", nil
	}

	return ledger.ReferredBy.String, nil
}
