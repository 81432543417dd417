package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HotelSale is one bill issued to a hotel; the line items carry the
// product detail. TotalAmount is kept in sync with the summed items.
type HotelSale struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index:idx_hotel_sales_user_date,priority:1"`
	HotelID     uuid.UUID       `gorm:"column:hotel_id;type:uuid;not null;index"`
	BillNumber  string          `gorm:"column:bill_number;not null"`
	Paid        bool            `gorm:"column:paid;not null;default:false"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null"`
	TradeDate   time.Time       `gorm:"column:trade_date;type:date;not null;index:idx_hotel_sales_user_date,priority:2"`
	Items       []HotelSaleItem `gorm:"foreignKey:HotelSaleID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// HotelSaleItem is a single product line on a hotel bill.
type HotelSaleItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	HotelSaleID uuid.UUID       `gorm:"column:hotel_sale_id;type:uuid;not null;index"`
	MeatType    string          `gorm:"column:meat_type;not null"`
	ProductCut  string          `gorm:"column:product_cut;not null"`
	QuantityKg  decimal.Decimal `gorm:"column:quantity_kg;type:numeric(12,3);not null"`
	RatePerKg   decimal.Decimal `gorm:"column:rate_per_kg;type:numeric(12,2);not null"`
	Total       decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
