package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is one product sold to a customer, on account. Any cash handed over at
// the counter is recorded as a separate CustomerPayment in the same commit.
// Sales are append-only.
type Sale struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerName string          `gorm:"not null;index"`
	ProductName  string          `gorm:"not null"`
	SalePrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RecordedBy   string          `gorm:"not null"`
	CreatedAt    time.Time       `gorm:"index"`
}
