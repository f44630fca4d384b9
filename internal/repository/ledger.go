package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/crypto"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const referralCodeLength = 8

type LedgerRepository interface {
	Create(ctx context.Context, data *entity.PointsLedger) error
	Get(ctx context.Context, userID string) (*entity.PointsLedger, error)
	GetByReferralCode(ctx context.Context, code string) (*entity.PointsLedger, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.PointsLedger, error)
	Credit(ctx context.Context, userID string, delta entity.Points, isReferral bool, reference string) (entity.Points, error)
	IncreaseReferralCount(ctx context.Context, userID string) error
	CountHigher(ctx context.Context, points entity.Points) (int64, error)
}

type ledgerRepository struct{}

func NewLedgerRepository() *ledgerRepository {
	return &ledgerRepository{}
}

// ReferralCode derives the stable referral code of a user.
func ReferralCode(userID string) string {
	return crypto.ShortHash([]byte(userID), referralCodeLength)
}

func (r *ledgerRepository) Create(ctx context.Context, data *entity.PointsLedger) error {
	if data.ReferralCode == "" {
		data.ReferralCode = ReferralCode(data.UserID)
	}

	return xcontext.DB(ctx).Omit(clause.Associations).Create(data).Error
}

func (r *ledgerRepository) Get(ctx context.Context, userID string) (*entity.PointsLedger, error) {
	var record entity.PointsLedger
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *ledgerRepository) GetByReferralCode(ctx context.Context, code string) (*entity.PointsLedger, error) {
	var record entity.PointsLedger
	if err := xcontext.DB(ctx).Where("referral_code=?", code).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *ledgerRepository) GetList(ctx context.Context, offset, limit int) ([]entity.PointsLedger, error) {
	var records []entity.PointsLedger
	err := xcontext.DB(ctx).
		Order("total_points DESC").Order("user_id").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Credit adds delta to the ledger of the user in a single upsert statement and
// returns the new total. The ledger row is created with a derived referral
// code if it does not exist yet. A non-referral credit with a positive delta
// also counts one submission. Every credit is appended to the point event log
// in the same transaction.
func (r *ledgerRepository) Credit(
	ctx context.Context,
	userID string,
	delta entity.Points,
	isReferral bool,
	reference string,
) (entity.Points, error) {
	now := time.Now()
	initial := entity.PointsLedger{
		UserID:       userID,
		CreatedAt:    now,
		UpdatedAt:    now,
		TotalPoints:  delta,
		ReferralCode: ReferralCode(userID),
	}

	// Qualify the columns, the conflicting row and the proposed row are both in
	// scope of the update clause on some databases.
	assignments := map[string]any{
		"total_points": gorm.Expr("points_ledgers.total_points + ?", delta),
		"updated_at":   now,
	}

	eventType := entity.SubmissionPointEvent
	if isReferral {
		eventType = entity.ReferralPointEvent
		initial.ReferralPoints = delta
		assignments["referral_points"] = gorm.Expr("points_ledgers.referral_points + ?", delta)
	} else if delta > 0 {
		initial.Submissions = 1
		initial.LastSubmissionAt = sql.NullTime{Time: now, Valid: true}
		assignments["submissions"] = gorm.Expr("points_ledgers.submissions + ?", 1)
		assignments["last_submission_at"] = now
	}

	var total entity.Points
	err := xcontext.DB(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(assignments),
		}).Create(&initial).Error
		if err != nil {
			return err
		}

		err = tx.Model(&entity.PointsLedger{}).
			Select("total_points").
			Where("user_id=?", userID).
			Scan(&total).Error
		if err != nil {
			return err
		}

		event := &entity.PointEvent{
			UserID:       userID,
			Type:         eventType,
			Delta:        delta,
			BalanceAfter: total,
			Reference:    reference,
		}
		if node := xcontext.SnowFlake(ctx); node != nil {
			event.ID = node.Generate().Int64()
		}

		return tx.Create(event).Error
	})
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (r *ledgerRepository) IncreaseReferralCount(ctx context.Context, userID string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.PointsLedger{}).
		Where("user_id=?", userID).
		Update("referral_count", gorm.Expr("referral_count + ?", 1))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return errors.New("row affected is empty")
	}

	return nil
}

// CountHigher counts the ledgers with a strictly greater total. It scans the
// total_points index, so it is only meant as a fallback for small tables.
func (r *ledgerRepository) CountHigher(ctx context.Context, points entity.Points) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.PointsLedger{}).
		Where("total_points > ?", points).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
