package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pool identifiers. Every running balance in the system lives in one of these
// four pools; there is no fifth.
const (
	PoolMain     = "main"
	PoolSales    = "sales"
	PoolPractice = "practice"
	PoolIBAN     = "iban"
)

// PoolIDs lists all pools in a stable order (used for seeding and read models).
var PoolIDs = []string{PoolMain, PoolSales, PoolPractice, PoolIBAN}

// CashPool is a named running balance. The balance is only ever mutated inside
// a ledger transaction; every mutation is paired with the row(s) that explain
// it (a confirmed payment, a transfer, or a logged admin reset).
type CashPool struct {
	ID        string          `gorm:"type:varchar(16);primaryKey"`
	Balance   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UpdatedAt time.Time
}

func (CashPool) TableName() string { return "cash_pools" }

// ValidPool reports whether id names one of the four pools.
func ValidPool(id string) bool {
	switch id {
	case PoolMain, PoolSales, PoolPractice, PoolIBAN:
		return true
	}
	return false
}

// CashTransfer records a movement from a source pool into the main pool.
// Append-only: transfers are never edited or deleted.
type CashTransfer struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SourcePool string          `gorm:"type:varchar(16);not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RecordedBy string          `gorm:"not null"`
	CreatedAt  time.Time
}

func (CashTransfer) TableName() string { return "cash_transfers" }
