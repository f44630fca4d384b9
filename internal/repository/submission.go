package repository

import (
	"context"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type SubmissionRepository interface {
	Create(ctx context.Context, data *entity.Submission) error
	GetByPostID(ctx context.Context, postID string) (*entity.Submission, error)
	GetByPostIDAndUserID(ctx context.Context, postID, userID string) (*entity.Submission, error)
	GetListByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.Submission, error)
}

type submissionRepository struct{}

func NewSubmissionRepository() *submissionRepository {
	return &submissionRepository{}
}

func (r *submissionRepository) Create(ctx context.Context, data *entity.Submission) error {
	return xcontext.DB(ctx).Omit(clause.Associations).Create(data).Error
}

func (r *submissionRepository) GetByPostID(ctx context.Context, postID string) (*entity.Submission, error) {
	var record entity.Submission
	if err := xcontext.DB(ctx).Where("post_id=?", postID).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *submissionRepository) GetByPostIDAndUserID(
	ctx context.Context, postID, userID string,
) (*entity.Submission, error) {
	var record entity.Submission
	err := xcontext.DB(ctx).Where("post_id=? AND user_id=?", postID, userID).Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *submissionRepository) GetListByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.Submission, error) {
	var records []entity.Submission
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
