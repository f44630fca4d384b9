package repository

import (
	"context"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type ReferralRepository interface {
	Create(ctx context.Context, data *entity.ReferralEdge) error
	GetByReferredID(ctx context.Context, referredID string) (*entity.ReferralEdge, error)
	GetListByReferrerID(ctx context.Context, referrerID string) ([]entity.ReferralEdge, error)
}

type referralRepository struct{}

func NewReferralRepository() *referralRepository {
	return &referralRepository{}
}

func (r *referralRepository) Create(ctx context.Context, data *entity.ReferralEdge) error {
	return xcontext.DB(ctx).Omit(clause.Associations).Create(data).Error
}

func (r *referralRepository) GetByReferredID(ctx context.Context, referredID string) (*entity.ReferralEdge, error) {
	var record entity.ReferralEdge
	if err := xcontext.DB(ctx).Where("referred_id=?", referredID).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *referralRepository) GetListByReferrerID(ctx context.Context, referrerID string) ([]entity.ReferralEdge, error) {
	var records []entity.ReferralEdge
	err := xcontext.DB(ctx).Where("referrer_id=?", referrerID).Order("created_at").Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
