package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase records stock bought from a vendor. TradeDate is the business
// day the purchase belongs to, distinct from the creation timestamp.
// Immutable once created; deleting one reverses its vendor balance delta.
type Purchase struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index:idx_purchases_user_date,priority:1"`
	VendorID   uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null;index"`
	MeatType   string          `gorm:"column:meat_type;not null"`
	ProductCut string          `gorm:"column:product_cut;not null"`
	QuantityKg decimal.Decimal `gorm:"column:quantity_kg;type:numeric(12,3);not null"`
	RatePerKg  decimal.Decimal `gorm:"column:rate_per_kg;type:numeric(12,2);not null"`
	Total      decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	TradeDate  time.Time       `gorm:"column:trade_date;type:date;not null;index:idx_purchases_user_date,priority:2"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}
