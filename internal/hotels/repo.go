package hotels

import (
	"context"

	"github.com/google/uuid"
	"github.com/kdhingra/meattrack-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists hotel customers.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, hotel *models.Hotel) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Hotel, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Hotel, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a hotels repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, hotel *models.Hotel) error {
	return r.db.WithContext(ctx).Create(hotel).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Hotel, error) {
	var hotel models.Hotel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hotel).Error
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&hotels).Error
	if err != nil {
		return nil, err
	}
	return hotels, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Hotel{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Hotel{}).Error
}
