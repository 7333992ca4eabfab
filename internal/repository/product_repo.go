package repository

import (
	"context"

	"isletmeapp/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	List(ctx context.Context) ([]model.Product, error)
	FindByName(ctx context.Context, name string) (*model.Product, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "name = ?", name).Error
	return &p, err
}
