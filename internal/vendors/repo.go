package vendors

import (
	"context"

	"github.com/google/uuid"
	"github.com/kdhingra/meattrack-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository persists vendors and applies balance deltas.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, vendor *models.Vendor) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Vendor, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a vendors repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&vendors).Error
	if err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Vendor{}).Error
}

// AdjustBalance applies the delta in a single UPDATE so concurrent
// adjustments to one vendor cannot lose writes.
func (r *repository) AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("id = ?", id).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
