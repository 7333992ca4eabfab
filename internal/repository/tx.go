package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager is the atomic-commit primitive the services compose multi-row
// writes on. Everything passed to RunInTx either all applies or none of it
// does; readers never observe an intermediate state.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxManager struct{ db *gorm.DB }

func NewTxManager(db *gorm.DB) TxManager { return &gormTxManager{db: db} }

func (m *gormTxManager) RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
