package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment types.
// PaymentAdjustment rows are written only by the debt-reset operation; they
// balance a customer's ledger without touching prior rows.
const (
	PaymentCash       = "cash"
	PaymentBank       = "bank"
	PaymentAdjustment = "adjustment"
)

// PaidFor tags.
const (
	PaidForSales      = "sales"
	PaidForPractice   = "practice"
	PaidForAdjustment = "adjustment"
)

// CustomerPayment is a signed ledger entry against a customer's account.
// Positive = money received, negative = money paid out (or a debt-zeroing
// correction). Rows are immutable except for the single permitted transition
// IsConfirmed false→true on bank transfers.
type CustomerPayment struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerName string          `gorm:"not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentType  string          `gorm:"type:varchar(16);not null;index"`
	IsConfirmed  bool            `gorm:"not null;default:false;index"`
	// PaidFor tags what the payment settles: "sales" | "practice" | "adjustment".
	PaidFor    *string `gorm:"type:varchar(16)"`
	RecordedBy string  `gorm:"not null"`
	CreatedAt  time.Time `gorm:"index"`
}

// Pending reports whether this payment is a bank transfer still awaiting
// confirmation — the only state from which Confirm may proceed.
func (p *CustomerPayment) Pending() bool {
	return p.PaymentType == PaymentBank && !p.IsConfirmed
}
