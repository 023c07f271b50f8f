package repository

import (
	"context"

	"french_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type StatementRepository struct {
	DB *gorm.DB
}

func NewStatementRepository(db *gorm.DB) *StatementRepository {
	return &StatementRepository{DB: db}
}

// GetStatements returns the framework's statements in questionnaire order.
func (r *StatementRepository) GetStatements(ctx context.Context, framework model.Framework) ([]model.ProficiencyStatement, error) {
	var sts []model.ProficiencyStatement
	err := r.DB.WithContext(ctx).
		Where("framework = ?", framework).
		Order("position asc, id asc").
		Find(&sts).Error
	return sts, err
}
