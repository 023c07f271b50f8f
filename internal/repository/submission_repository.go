package repository

import (
	"context"

	"french_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, sub *model.Submission) error {
	return r.DB.WithContext(ctx).Create(sub).Error
}

func (r *SubmissionRepository) List(ctx context.Context, page, limit int, framework string) ([]model.Submission, int64, error) {
	var subs []model.Submission
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.Submission{})
	if framework != "" {
		query = query.Where("framework = ?", framework)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Omit("payload").Order("created_at desc").Offset(offset).Limit(limit).Find(&subs).Error
	return subs, total, err
}

func (r *SubmissionRepository) All(ctx context.Context) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.DB.WithContext(ctx).Order("created_at asc").Find(&subs).Error
	return subs, err
}
