package hotels

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kdhingra/meattrack-backend/pkg/db/models"
	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes hotel customer CRUD scoped to the owning user.
type Service interface {
	Create(ctx context.Context, input CreateHotelInput) (*models.Hotel, error)
	Get(ctx context.Context, userID, hotelID uuid.UUID) (*models.Hotel, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Hotel, error)
	Update(ctx context.Context, userID, hotelID uuid.UUID, input UpdateHotelInput) (*models.Hotel, error)
	Delete(ctx context.Context, userID, hotelID uuid.UUID) error
}

// CreateHotelInput captures the data required to register a hotel customer.
type CreateHotelInput struct {
	UserID  uuid.UUID
	Name    string
	Phone   string
	Address *string
}

// UpdateHotelInput is a partial patch; nil fields are left untouched.
type UpdateHotelInput struct {
	Name    *string
	Phone   *string
	Address *string
}

type service struct {
	repo Repository
}

// NewService wires a hotels service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("hotels repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateHotelInput) (*models.Hotel, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hotel name is required")
	}

	hotel := &models.Hotel{
		ID:      uuid.New(),
		UserID:  input.UserID,
		Name:    name,
		Phone:   strings.TrimSpace(input.Phone),
		Address: input.Address,
	}
	if err := s.repo.Create(ctx, hotel); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating hotel")
	}
	return hotel, nil
}

func (s *service) Get(ctx context.Context, userID, hotelID uuid.UUID) (*models.Hotel, error) {
	return s.findOwned(ctx, userID, hotelID)
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.Hotel, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	hotels, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing hotels")
	}
	return hotels, nil
}

func (s *service) Update(ctx context.Context, userID, hotelID uuid.UUID, input UpdateHotelInput) (*models.Hotel, error) {
	if _, err := s.findOwned(ctx, userID, hotelID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "hotel name must not be empty")
		}
		updates["name"] = name
	}
	if input.Phone != nil {
		updates["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, hotelID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating hotel")
		}
	}
	return s.findOwned(ctx, userID, hotelID)
}

func (s *service) Delete(ctx context.Context, userID, hotelID uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, hotelID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, hotelID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting hotel")
	}
	return nil
}

func (s *service) findOwned(ctx context.Context, userID, hotelID uuid.UUID) (*models.Hotel, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	hotel, err := s.repo.FindByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hotel not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up hotel")
	}
	if hotel.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hotel not found")
	}
	return hotel, nil
}
