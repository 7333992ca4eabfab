package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is a free-form audit entry written asynchronously by the worker
// pool so that logging never extends a ledger commit.
type ActivityLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Actor     string    `gorm:"not null"`
	Action    string    `gorm:"not null"`
	// Details holds a small JSON object describing the operation.
	Details   string `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time `gorm:"index"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
