package repository

import (
	"context"

	"isletmeapp/internal/model"

	"gorm.io/gorm"
)

type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	ListRecent(ctx context.Context, limit int) ([]model.Sale, error)
	ListAll(ctx context.Context) ([]model.Sale, error)
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) ListRecent(ctx context.Context, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListAll(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Find(&sales).Error
	return sales, err
}
