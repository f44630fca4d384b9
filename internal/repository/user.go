package repository

import (
	"context"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByTwitterHandle(ctx context.Context, handle string) (*entity.User, error)
	VerifyEmail(ctx context.Context, id, code string) error
	UpdateTwitter(ctx context.Context, id, handle, twitterID string) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.User
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("email=?", email).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByTwitterHandle(ctx context.Context, handle string) (*entity.User, error) {
	var record entity.User
	err := xcontext.DB(ctx).Where("LOWER(twitter_handle)=LOWER(?)", handle).Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// VerifyEmail flips the verification flag once. It returns
// gorm.ErrRecordNotFound if the user is already verified or the code is wrong.
func (r *userRepository) VerifyEmail(ctx context.Context, id, code string) error {
	tx := xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=? AND email_verified=? AND email_verification_code=?", id, false, code).
		Updates(map[string]any{
			"email_verified":          true,
			"email_verification_code": "",
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *userRepository) UpdateTwitter(ctx context.Context, id, handle, twitterID string) error {
	return xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=?", id).
		Updates(map[string]any{
			"twitter_handle": handle,
			"twitter_id":     twitterID,
		}).Error
}
