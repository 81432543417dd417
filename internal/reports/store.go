package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kdhingra/meattrack-backend/pkg/db/models"
	"gorm.io/gorm"
)

// RecordStore is the only boundary the summary builder has with persistence.
// All listings are scoped to one user and one UTC calendar day.
type RecordStore interface {
	ListPurchases(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.Purchase, error)
	ListRetailSales(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.RetailSale, error)
	ListHotelSales(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.HotelSale, error)
	ListVendorPayments(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.VendorPayment, error)
}

type recordStore struct {
	db *gorm.DB
}

// NewRecordStore builds the canonical database-backed RecordStore.
func NewRecordStore(db *gorm.DB) RecordStore {
	return &recordStore{db: db}
}

func (s *recordStore) ListPurchases(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND trade_date = ?", userID, DateOnly(day)).
		Order("created_at ASC").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (s *recordStore) ListRetailSales(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.RetailSale, error) {
	var sales []models.RetailSale
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND trade_date = ?", userID, DateOnly(day)).
		Order("created_at ASC").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *recordStore) ListHotelSales(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.HotelSale, error) {
	var sales []models.HotelSale
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND trade_date = ?", userID, DateOnly(day)).
		Order("created_at ASC").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *recordStore) ListVendorPayments(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.VendorPayment, error) {
	var payments []models.VendorPayment
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND pay_date = ?", userID, DateOnly(day)).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
