package purchases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kdhingra/meattrack-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists purchase records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, purchase *models.Purchase) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error)
	ListByUser(ctx context.Context, userID uuid.UUID, day *time.Time) ([]models.Purchase, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a purchases repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, purchase *models.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error) {
	var purchase models.Purchase
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, day *time.Time) ([]models.Purchase, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if day != nil {
		query = query.Where("trade_date = ?", *day)
	}

	var purchases []models.Purchase
	if err := query.Order("created_at ASC").Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Purchase{}).Error
}
