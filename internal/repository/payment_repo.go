package repository

import (
	"context"

	"isletmeapp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerPaymentRepository interface {
	CreateTx(tx *gorm.DB, p *model.CustomerPayment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CustomerPayment, error)
	// FindByIDForUpdateTx locks the payment row so two concurrent confirms
	// serialize; the loser then sees IsConfirmed already set.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.CustomerPayment, error)
	SetConfirmedTx(tx *gorm.DB, id uuid.UUID) error
	ListRecent(ctx context.Context, limit int) ([]model.CustomerPayment, error)
	ListPendingBank(ctx context.Context) ([]model.CustomerPayment, error)
	ListAll(ctx context.Context) ([]model.CustomerPayment, error)
}

type paymentRepo struct{ db *gorm.DB }

func NewCustomerPaymentRepository(db *gorm.DB) CustomerPaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) CreateTx(tx *gorm.DB, p *model.CustomerPayment) error {
	return tx.Create(p).Error
}

func (r *paymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CustomerPayment, error) {
	var p model.CustomerPayment
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *paymentRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.CustomerPayment, error) {
	var p model.CustomerPayment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *paymentRepo) SetConfirmedTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.CustomerPayment{}).
		Where("id = ?", id).
		Update("is_confirmed", true).Error
}

func (r *paymentRepo) ListRecent(ctx context.Context, limit int) ([]model.CustomerPayment, error) {
	var payments []model.CustomerPayment
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) ListPendingBank(ctx context.Context) ([]model.CustomerPayment, error) {
	var payments []model.CustomerPayment
	err := r.db.WithContext(ctx).
		Where("payment_type = ? AND is_confirmed = false", model.PaymentBank).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) ListAll(ctx context.Context) ([]model.CustomerPayment, error) {
	var payments []model.CustomerPayment
	err := r.db.WithContext(ctx).Find(&payments).Error
	return payments, err
}
