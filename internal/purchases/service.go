package purchases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kdhingra/meattrack-backend/internal/reports"
	"github.com/kdhingra/meattrack-backend/internal/vendors"
	"github.com/kdhingra/meattrack-backend/pkg/db"
	"github.com/kdhingra/meattrack-backend/pkg/db/models"
	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service records stock purchases and keeps vendor balances in step.
// Purchases are immutable once created; the only mutation is delete,
// which exactly reverses the balance delta applied at creation.
type Service interface {
	Create(ctx context.Context, input CreatePurchaseInput) (*models.Purchase, error)
	Get(ctx context.Context, userID, purchaseID uuid.UUID) (*models.Purchase, error)
	List(ctx context.Context, userID uuid.UUID, day *time.Time) ([]models.Purchase, error)
	Delete(ctx context.Context, userID, purchaseID uuid.UUID) error
}

// CreatePurchaseInput captures one stock intake line.
type CreatePurchaseInput struct {
	UserID     uuid.UUID
	VendorID   uuid.UUID
	MeatType   string
	ProductCut string
	QuantityKg decimal.Decimal
	RatePerKg  decimal.Decimal
	TradeDate  time.Time
}

type service struct {
	client     *db.Client
	repo       Repository
	vendorRepo vendors.Repository
}

// NewService wires a purchases service.
func NewService(client *db.Client, repo Repository, vendorRepo vendors.Repository) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("purchases repository required")
	}
	if vendorRepo == nil {
		return nil, fmt.Errorf("vendors repository required")
	}
	return &service{client: client, repo: repo, vendorRepo: vendorRepo}, nil
}

func (s *service) Create(ctx context.Context, input CreatePurchaseInput) (*models.Purchase, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id is required")
	}
	meatType := strings.TrimSpace(input.MeatType)
	productCut := strings.TrimSpace(input.ProductCut)
	if meatType == "" || productCut == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "meat type and product cut are required")
	}
	if input.QuantityKg.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}
	if input.RatePerKg.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rate must not be negative")
	}
	if input.TradeDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "trade date is required")
	}

	vendor, err := s.vendorRepo.FindByID(ctx, input.VendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up vendor")
	}
	if vendor.UserID != input.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}

	total := input.QuantityKg.Mul(input.RatePerKg).Round(2)
	purchase := &models.Purchase{
		ID:         uuid.New(),
		UserID:     input.UserID,
		VendorID:   input.VendorID,
		MeatType:   meatType,
		ProductCut: productCut,
		QuantityKg: input.QuantityKg,
		RatePerKg:  input.RatePerKg,
		Total:      total,
		TradeDate:  reports.DateOnly(input.TradeDate),
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, purchase); err != nil {
			return err
		}
		return s.vendorRepo.WithTx(tx).AdjustBalance(ctx, purchase.VendorID, total)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording purchase")
	}
	return purchase, nil
}

func (s *service) Get(ctx context.Context, userID, purchaseID uuid.UUID) (*models.Purchase, error) {
	return s.findOwned(ctx, userID, purchaseID)
}

func (s *service) List(ctx context.Context, userID uuid.UUID, day *time.Time) ([]models.Purchase, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if day != nil {
		normalized := reports.DateOnly(*day)
		day = &normalized
	}
	purchases, err := s.repo.ListByUser(ctx, userID, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing purchases")
	}
	return purchases, nil
}

// Delete removes the purchase and credits its total back off the vendor
// balance in the same transaction.
func (s *service) Delete(ctx context.Context, userID, purchaseID uuid.UUID) error {
	purchase, err := s.findOwned(ctx, userID, purchaseID)
	if err != nil {
		return err
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, purchase.ID); err != nil {
			return err
		}
		return s.vendorRepo.WithTx(tx).AdjustBalance(ctx, purchase.VendorID, purchase.Total.Neg())
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting purchase")
	}
	return nil
}

func (s *service) findOwned(ctx context.Context, userID, purchaseID uuid.UUID) (*models.Purchase, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	purchase, err := s.repo.FindByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up purchase")
	}
	if purchase.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase not found")
	}
	return purchase, nil
}
