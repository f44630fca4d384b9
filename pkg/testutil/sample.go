package testutil

import (
	"context"
	"database/sql"
	"reflect"

	"github.com/google/uuid"
	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

// SampleUser creates a new verified human in database together with its
// ledger. The sample user can be overwritten by non-zero fields of init. A
// non-empty referrerID sets the parent pointer of the ledger.
//
// This function returns the sample user.
func SampleUser(ctx context.Context, init *entity.User, referrerID string) (entity.User, error) {
	id := uuid.NewString()
	sample := &entity.User{
		Base:          entity.Base{ID: id},
		Email:         id + "@example.com",
		Kind:          entity.HumanUser,
		EmailVerified: true,
		TwitterHandle: sql.NullString{String: "h" + id[:8], Valid: true},
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewUserRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}

	ledger := &entity.PointsLedger{UserID: sample.ID}
	if referrerID != "" {
		ledger.ReferredBy = sql.NullString{String: referrerID, Valid: true}
	}

	if err := repository.NewLedgerRepository().Create(ctx, ledger); err != nil {
		return *sample, err
	}

	return *sample, nil
}

// SampleChain creates a referral chain where every user is referred by the
// next one. The first user is the earner. verified sets the email flag of each
// user in the same order.
func SampleChain(ctx context.Context, verified ...bool) ([]entity.User, error) {
	users := make([]entity.User, len(verified))
	for i := len(verified) - 1; i >= 0; i-- {
		referrerID := ""
		if i+1 < len(verified) {
			referrerID = users[i+1].ID
		}

		user, err := SampleUser(ctx, nil, referrerID)
		if err != nil {
			return nil, err
		}

		if !verified[i] {
			err := xcontext.DB(ctx).Model(&entity.User{}).
				Where("id=?", user.ID).
				Update("email_verified", false).Error
			if err != nil {
				return nil, err
			}
			user.EmailVerified = false
		}

		users[i] = user
	}

	return users, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
