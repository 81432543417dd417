package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kdhingra/meattrack-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists vendor payment records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, payment *models.VendorPayment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.VendorPayment, error)
	ListByUser(ctx context.Context, userID uuid.UUID, day *time.Time) ([]models.VendorPayment, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.VendorPayment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a payments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, payment *models.VendorPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.VendorPayment, error) {
	var payment models.VendorPayment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, day *time.Time) ([]models.VendorPayment, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if day != nil {
		query = query.Where("pay_date = ?", *day)
	}

	var payments []models.VendorPayment
	if err := query.Order("created_at ASC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.VendorPayment, error) {
	var payments []models.VendorPayment
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.VendorPayment{}).Error
}
