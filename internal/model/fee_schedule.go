package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeScheduleID is the primary key of the single fee-schedule row.
const FeeScheduleID = 1

// FeeSchedule is the singleton practice-fee configuration. It is read at
// commit time by practice records, never at display time.
type FeeSchedule struct {
	ID          int             `gorm:"primaryKey"`
	StandardFee decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	StudentFee  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UpdatedAt   time.Time
}

func (FeeSchedule) TableName() string { return "fee_schedule" }

// FeeFor returns the fee for the given fee type, or false when the type is
// unknown.
func (f *FeeSchedule) FeeFor(feeType string) (decimal.Decimal, bool) {
	switch feeType {
	case FeeStandard:
		return f.StandardFee, true
	case FeeStudent:
		return f.StudentFee, true
	}
	return decimal.Decimal{}, false
}
