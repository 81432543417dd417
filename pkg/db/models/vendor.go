package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Vendor is a supplier the business buys stock from. Balance is the net
// amount owed to the vendor: purchases increase it, payments decrease it.
type Vendor struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index"`
	Name            string          `gorm:"column:name;not null"`
	Phone           string          `gorm:"column:phone;not null;default:''"`
	Notes           *string         `gorm:"column:notes"`
	Balance         decimal.Decimal `gorm:"column:balance;type:numeric(12,2);not null;default:0"`
	Specializations pq.StringArray  `gorm:"column:specializations;type:text[];default:ARRAY[]::text[]"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
