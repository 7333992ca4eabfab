package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles, mirrored from the management panel.
// izleyici is read-only everywhere; sorumlu-1 can record practice fees but not
// sales or payments; sorumlu-2 additionally records sales and payments;
// yonetici can do everything including treasury moves and confirmations.
const (
	RoleYonetici = "yonetici"
	RoleSorumlu1 = "sorumlu-1"
	RoleSorumlu2 = "sorumlu-2"
	RoleIzleyici = "izleyici"
)

// User stores panel users with role-based access.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(16);not null"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
