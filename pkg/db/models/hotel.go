package models

import (
	"time"

	"github.com/google/uuid"
)

// Hotel is a bulk customer billed per delivery.
type Hotel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	Phone     string    `gorm:"column:phone;not null;default:''"`
	Address   *string   `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
