package payments

import (
	"context"
	"errors"
	"fmt"
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

// Service records settlements against vendor balances. A payment
// reduces the vendor's outstanding balance; deleting one restores it.
type Service interface {
	Create(ctx context.Context, input CreatePaymentInput) (*models.VendorPayment, error)
	Get(ctx context.Context, userID, paymentID uuid.UUID) (*models.VendorPayment, error)
	List(ctx context.Context, userID uuid.UUID, day *time.Time) ([]models.VendorPayment, error)
	ListByVendor(ctx context.Context, userID, vendorID uuid.UUID) ([]models.VendorPayment, error)
	Delete(ctx context.Context, userID, paymentID uuid.UUID) error
}

// CreatePaymentInput captures one settlement toward a vendor.
type CreatePaymentInput struct {
	UserID   uuid.UUID
	VendorID uuid.UUID
	Amount   decimal.Decimal
	Notes    *string
	PayDate  time.Time
}

type service struct {
	client     *db.Client
	repo       Repository
	vendorRepo vendors.Repository
}

// NewService wires a payments service.
func NewService(client *db.Client, repo Repository, vendorRepo vendors.Repository) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if vendorRepo == nil {
		return nil, fmt.Errorf("vendors repository required")
	}
	return &service{client: client, repo: repo, vendorRepo: vendorRepo}, nil
}

func (s *service) Create(ctx context.Context, input CreatePaymentInput) (*models.VendorPayment, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id is required")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if input.PayDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pay date is required")
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

	payment := &models.VendorPayment{
		ID:       uuid.New(),
		UserID:   input.UserID,
		VendorID: input.VendorID,
		Amount:   input.Amount.Round(2),
		Notes:    input.Notes,
		PayDate:  reports.DateOnly(input.PayDate),
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, payment); err != nil {
			return err
		}
		return s.vendorRepo.WithTx(tx).AdjustBalance(ctx, payment.VendorID, payment.Amount.Neg())
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording payment")
	}
	return payment, nil
}

func (s *service) Get(ctx context.Context, userID, paymentID uuid.UUID) (*models.VendorPayment, error) {
	return s.findOwned(ctx, userID, paymentID)
}

func (s *service) List(ctx context.Context, userID uuid.UUID, day *time.Time) ([]models.VendorPayment, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if day != nil {
		normalized := reports.DateOnly(*day)
		day = &normalized
	}
	payments, err := s.repo.ListByUser(ctx, userID, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing payments")
	}
	return payments, nil
}

// ListByVendor returns the settlement history for one vendor, oldest first.
func (s *service) ListByVendor(ctx context.Context, userID, vendorID uuid.UUID) ([]models.VendorPayment, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up vendor")
	}
	if vendor.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}

	payments, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing vendor payments")
	}
	return payments, nil
}

// Delete removes the payment and puts its amount back onto the vendor
// balance in the same transaction.
func (s *service) Delete(ctx context.Context, userID, paymentID uuid.UUID) error {
	payment, err := s.findOwned(ctx, userID, paymentID)
	if err != nil {
		return err
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, payment.ID); err != nil {
			return err
		}
		return s.vendorRepo.WithTx(tx).AdjustBalance(ctx, payment.VendorID, payment.Amount)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting payment")
	}
	return nil
}

func (s *service) findOwned(ctx context.Context, userID, paymentID uuid.UUID) (*models.VendorPayment, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up payment")
	}
	if payment.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
	}
	return payment, nil
}
