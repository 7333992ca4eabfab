package repository

import (
	"context"

	"isletmeapp/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CashPoolRepository interface {
	// GetForUpdateTx reads a pool row under a FOR UPDATE lock. Concurrent
	// transactions mutating the same pool serialize on this lock, which is
	// what makes read-then-write balance updates safe.
	GetForUpdateTx(tx *gorm.DB, id string) (*model.CashPool, error)
	SetBalanceTx(tx *gorm.DB, id string, balance decimal.Decimal) error
	Get(ctx context.Context, id string) (*model.CashPool, error)
	List(ctx context.Context) ([]model.CashPool, error)
	Seed(ctx context.Context) error
	CreateTransferTx(tx *gorm.DB, t *model.CashTransfer) error
	ListTransfers(ctx context.Context, limit int) ([]model.CashTransfer, error)
}

type poolRepo struct{ db *gorm.DB }

func NewCashPoolRepository(db *gorm.DB) CashPoolRepository { return &poolRepo{db: db} }

func (r *poolRepo) GetForUpdateTx(tx *gorm.DB, id string) (*model.CashPool, error) {
	var p model.CashPool
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *poolRepo) SetBalanceTx(tx *gorm.DB, id string, balance decimal.Decimal) error {
	return tx.Model(&model.CashPool{}).Where("id = ?", id).Update("balance", balance).Error
}

func (r *poolRepo) Get(ctx context.Context, id string) (*model.CashPool, error) {
	var p model.CashPool
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *poolRepo) List(ctx context.Context) ([]model.CashPool, error) {
	var pools []model.CashPool
	err := r.db.WithContext(ctx).Order("id").Find(&pools).Error
	return pools, err
}

// Seed inserts the four pool rows at zero balance; existing rows are untouched.
func (r *poolRepo) Seed(ctx context.Context) error {
	for _, id := range model.PoolIDs {
		pool := model.CashPool{ID: id, Balance: decimal.Zero}
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&pool).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *poolRepo) CreateTransferTx(tx *gorm.DB, t *model.CashTransfer) error {
	return tx.Create(t).Error
}

func (r *poolRepo) ListTransfers(ctx context.Context, limit int) ([]model.CashTransfer, error) {
	var transfers []model.CashTransfer
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&transfers).Error
	return transfers, err
}
