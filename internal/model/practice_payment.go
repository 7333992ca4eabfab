package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fee types accepted by practice-session records.
const (
	FeeStandard = "standard"
	FeeStudent  = "student"
)

// PracticePayment is one practice-session attendance fee. Amount is resolved
// from the fee schedule at commit time, so later fee changes never rewrite
// history. Append-only.
type PracticePayment struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AttendeeName string          `gorm:"not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FeeType      string          `gorm:"type:varchar(16);not null"`
	RecordedBy   string          `gorm:"not null"`
	CreatedAt    time.Time       `gorm:"index"`
}
