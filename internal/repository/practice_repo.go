package repository

import (
	"context"
	"time"

	"isletmeapp/internal/model"

	"gorm.io/gorm"
)

type PracticePaymentRepository interface {
	CreateTx(tx *gorm.DB, p *model.PracticePayment) error
	ListByDay(ctx context.Context, day time.Time) ([]model.PracticePayment, error)
	ListAll(ctx context.Context) ([]model.PracticePayment, error)
}

type practiceRepo struct{ db *gorm.DB }

func NewPracticePaymentRepository(db *gorm.DB) PracticePaymentRepository {
	return &practiceRepo{db: db}
}

func (r *practiceRepo) CreateTx(tx *gorm.DB, p *model.PracticePayment) error {
	return tx.Create(p).Error
}

func (r *practiceRepo) ListByDay(ctx context.Context, day time.Time) ([]model.PracticePayment, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	var payments []model.PracticePayment
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *practiceRepo) ListAll(ctx context.Context) ([]model.PracticePayment, error) {
	var payments []model.PracticePayment
	err := r.db.WithContext(ctx).Find(&payments).Error
	return payments, err
}
