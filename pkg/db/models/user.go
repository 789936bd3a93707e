package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ratewise/ratewise-backend/pkg/enums"
)

// User represents the canonical identity entity. Role is written once at
// creation; there is no role-change path.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string     `gorm:"type:text;not null"`
	Email        string     `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Address      string     `gorm:"type:text;not null"`
	Role         enums.Role `gorm:"type:text;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
