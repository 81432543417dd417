package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kdhingra/meattrack-backend/pkg/db/models"
	"gorm.io/gorm"
)

// RetailRepository persists counter sale records.
type RetailRepository interface {
	WithTx(tx *gorm.DB) RetailRepository
	Create(ctx context.Context, sale *models.RetailSale) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.RetailSale, error)
	ListByUser(ctx context.Context, userID uuid.UUID, day *time.Time) ([]models.RetailSale, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// HotelRepository persists hotel bills and their line items.
type HotelRepository interface {
	WithTx(tx *gorm.DB) HotelRepository
	Create(ctx context.Context, sale *models.HotelSale) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.HotelSale, error)
	ListByUser(ctx context.Context, userID uuid.UUID, day *time.Time) ([]models.HotelSale, error)
	ListByHotel(ctx context.Context, hotelID uuid.UUID) ([]models.HotelSale, error)
	SetPaid(ctx context.Context, id uuid.UUID, paid bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type retailRepository struct {
	db *gorm.DB
}

// NewRetailRepository builds a retail sales repository bound to the provided DB.
func NewRetailRepository(db *gorm.DB) RetailRepository {
	return &retailRepository{db: db}
}

func (r *retailRepository) WithTx(tx *gorm.DB) RetailRepository {
	if tx == nil {
		return r
	}
	return &retailRepository{db: tx}
}

func (r *retailRepository) Create(ctx context.Context, sale *models.RetailSale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *retailRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.RetailSale, error) {
	var sale models.RetailSale
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *retailRepository) ListByUser(ctx context.Context, userID uuid.UUID, day *time.Time) ([]models.RetailSale, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if day != nil {
		query = query.Where("trade_date = ?", *day)
	}

	var sales []models.RetailSale
	if err := query.Order("created_at ASC").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *retailRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.RetailSale{}).Error
}

type hotelRepository struct {
	db *gorm.DB
}

// NewHotelRepository builds a hotel sales repository bound to the provided DB.
func NewHotelRepository(db *gorm.DB) HotelRepository {
	return &hotelRepository{db: db}
}

func (r *hotelRepository) WithTx(tx *gorm.DB) HotelRepository {
	if tx == nil {
		return r
	}
	return &hotelRepository{db: tx}
}

func (r *hotelRepository) Create(ctx context.Context, sale *models.HotelSale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *hotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.HotelSale, error) {
	var sale models.HotelSale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *hotelRepository) ListByUser(ctx context.Context, userID uuid.UUID, day *time.Time) ([]models.HotelSale, error) {
	query := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID)
	if day != nil {
		query = query.Where("trade_date = ?", *day)
	}

	var sales []models.HotelSale
	if err := query.Order("created_at ASC").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *hotelRepository) ListByHotel(ctx context.Context, hotelID uuid.UUID) ([]models.HotelSale, error) {
	var sales []models.HotelSale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("hotel_id = ?", hotelID).
		Order("created_at ASC").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *hotelRepository) SetPaid(ctx context.Context, id uuid.UUID, paid bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.HotelSale{}).
		Where("id = ?", id).
		UpdateColumn("paid", paid)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the bill and its line items. The FK cascade covers
// Postgres; the explicit item delete keeps sqlite-backed tests honest.
func (r *hotelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("hotel_sale_id = ?", id).
		Delete(&models.HotelSaleItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.HotelSale{}).Error
}
