package repository

import (
	"context"

	"isletmeapp/internal/model"

	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, entry *model.ActivityLog) error
	ListRecent(ctx context.Context, limit int) ([]model.ActivityLog, error)
}

type activityRepo struct{ db *gorm.DB }

func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository { return &activityRepo{db: db} }

func (r *activityRepo) Create(ctx context.Context, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityRepo) ListRecent(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
