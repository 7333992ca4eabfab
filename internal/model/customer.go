package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the canonical record for a name appearing in the ledger streams.
// Created on first use inside the same commit as the sale or practice record
// that introduces the name; the unique index makes creation first-writer-wins.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}
