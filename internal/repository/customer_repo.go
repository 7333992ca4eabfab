package repository

import (
	"context"

	"isletmeapp/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository interface {
	// EnsureTx creates the canonical customer row for name if it does not
	// exist yet. First writer wins; a concurrent insert of the same name is
	// swallowed by ON CONFLICT DO NOTHING.
	EnsureTx(tx *gorm.DB, name string) error
	ListNames(ctx context.Context) ([]string, error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) EnsureTx(tx *gorm.DB, name string) error {
	c := model.Customer{Name: name}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&c).Error
}

func (r *customerRepo) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.Customer{}).
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}
