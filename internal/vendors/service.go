package vendors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kdhingra/meattrack-backend/pkg/db/models"
	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Service exposes vendor CRUD scoped to the owning user.
type Service interface {
	Create(ctx context.Context, input CreateVendorInput) (*models.Vendor, error)
	Get(ctx context.Context, userID, vendorID uuid.UUID) (*models.Vendor, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Vendor, error)
	Update(ctx context.Context, userID, vendorID uuid.UUID, input UpdateVendorInput) (*models.Vendor, error)
	Delete(ctx context.Context, userID, vendorID uuid.UUID) error
}

// CreateVendorInput captures the data required to register a vendor.
type CreateVendorInput struct {
	UserID          uuid.UUID
	Name            string
	Phone           string
	Notes           *string
	Specializations []string
}

// UpdateVendorInput is a partial patch; nil fields are left untouched.
// Balance is deliberately absent: it only moves via purchases and payments.
type UpdateVendorInput struct {
	Name            *string
	Phone           *string
	Notes           *string
	Specializations []string
}

type service struct {
	repo Repository
}

// NewService wires a vendors service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendors repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateVendorInput) (*models.Vendor, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name is required")
	}

	vendor := &models.Vendor{
		ID:              uuid.New(),
		UserID:          input.UserID,
		Name:            name,
		Phone:           strings.TrimSpace(input.Phone),
		Notes:           input.Notes,
		Specializations: pq.StringArray(input.Specializations),
	}
	if err := s.repo.Create(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating vendor")
	}
	return vendor, nil
}

func (s *service) Get(ctx context.Context, userID, vendorID uuid.UUID) (*models.Vendor, error) {
	return s.findOwned(ctx, userID, vendorID)
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.Vendor, error) {
	vendors, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing vendors")
	}
	return vendors, nil
}

func (s *service) Update(ctx context.Context, userID, vendorID uuid.UUID, input UpdateVendorInput) (*models.Vendor, error) {
	if _, err := s.findOwned(ctx, userID, vendorID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name cannot be empty")
		}
		updates["name"] = name
	}
	if input.Phone != nil {
		updates["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if input.Specializations != nil {
		updates["specializations"] = pq.StringArray(input.Specializations)
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, vendorID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating vendor")
		}
	}
	return s.findOwned(ctx, userID, vendorID)
}

func (s *service) Delete(ctx context.Context, userID, vendorID uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, vendorID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, vendorID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting vendor")
	}
	return nil
}

func (s *service) findOwned(ctx context.Context, userID, vendorID uuid.UUID) (*models.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetching vendor")
	}
	if vendor.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}
	return vendor, nil
}
