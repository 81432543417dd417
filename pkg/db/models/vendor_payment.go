package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorPayment settles part of a vendor's outstanding balance.
type VendorPayment struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index:idx_vendor_payments_user_date,priority:1"`
	VendorID  uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	Notes     *string         `gorm:"column:notes"`
	PayDate   time.Time       `gorm:"column:pay_date;type:date;not null;index:idx_vendor_payments_user_date,priority:2"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
