package models

import (
	"time"

	"github.com/google/uuid"
)

// Store is a rateable storefront. OwnerID is a weak reference to a
// store_owner user; the unique index enforces one store per owner.
type Store struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string     `gorm:"type:text;not null"`
	Email     string     `gorm:"type:text;not null"`
	Address   string     `gorm:"type:text;not null"`
	OwnerID   *uuid.UUID `gorm:"column:owner_id;type:uuid;uniqueIndex"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
