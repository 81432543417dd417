package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kdhingra/meattrack-backend/internal/hotels"
	"github.com/kdhingra/meattrack-backend/internal/reports"
	"github.com/kdhingra/meattrack-backend/pkg/db"
	"github.com/kdhingra/meattrack-backend/pkg/db/models"
	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service records sales through both channels: retail counter sales and
// hotel bills. Hotel bill totals are always the sum of their line items.
type Service interface {
	CreateRetail(ctx context.Context, input CreateRetailSaleInput) (*models.RetailSale, error)
	GetRetail(ctx context.Context, userID, saleID uuid.UUID) (*models.RetailSale, error)
	ListRetail(ctx context.Context, userID uuid.UUID, day *time.Time) ([]models.RetailSale, error)
	DeleteRetail(ctx context.Context, userID, saleID uuid.UUID) error

	CreateHotelSale(ctx context.Context, input CreateHotelSaleInput) (*models.HotelSale, error)
	GetHotelSale(ctx context.Context, userID, saleID uuid.UUID) (*models.HotelSale, error)
	ListHotelSales(ctx context.Context, userID uuid.UUID, day *time.Time) ([]models.HotelSale, error)
	ListByHotel(ctx context.Context, userID, hotelID uuid.UUID) ([]models.HotelSale, error)
	SetHotelSalePaid(ctx context.Context, userID, saleID uuid.UUID, paid bool) (*models.HotelSale, error)
	DeleteHotelSale(ctx context.Context, userID, saleID uuid.UUID) error
}

// CreateRetailSaleInput captures one counter sale.
type CreateRetailSaleInput struct {
	UserID       uuid.UUID
	CustomerName *string
	MeatType     string
	ProductCut   string
	QuantityKg   decimal.Decimal
	RatePerKg    decimal.Decimal
	TradeDate    time.Time
}

// HotelSaleItemInput is one product line on a hotel bill.
type HotelSaleItemInput struct {
	MeatType   string
	ProductCut string
	QuantityKg decimal.Decimal
	RatePerKg  decimal.Decimal
}

// CreateHotelSaleInput captures one hotel bill with its line items.
type CreateHotelSaleInput struct {
	UserID     uuid.UUID
	HotelID    uuid.UUID
	BillNumber string
	Paid       bool
	TradeDate  time.Time
	Items      []HotelSaleItemInput
}

type service struct {
	client     *db.Client
	retailRepo RetailRepository
	hotelRepo  HotelRepository
	hotelsRepo hotels.Repository
}

// NewService wires a sales service.
func NewService(client *db.Client, retailRepo RetailRepository, hotelRepo HotelRepository, hotelsRepo hotels.Repository) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if retailRepo == nil {
		return nil, fmt.Errorf("retail sales repository required")
	}
	if hotelRepo == nil {
		return nil, fmt.Errorf("hotel sales repository required")
	}
	if hotelsRepo == nil {
		return nil, fmt.Errorf("hotels repository required")
	}
	return &service{
		client:     client,
		retailRepo: retailRepo,
		hotelRepo:  hotelRepo,
		hotelsRepo: hotelsRepo,
	}, nil
}

func (s *service) CreateRetail(ctx context.Context, input CreateRetailSaleInput) (*models.RetailSale, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
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

	sale := &models.RetailSale{
		ID:           uuid.New(),
		UserID:       input.UserID,
		CustomerName: input.CustomerName,
		MeatType:     meatType,
		ProductCut:   productCut,
		QuantityKg:   input.QuantityKg,
		RatePerKg:    input.RatePerKg,
		Total:        input.QuantityKg.Mul(input.RatePerKg).Round(2),
		TradeDate:    reports.DateOnly(input.TradeDate),
	}
	if err := s.retailRepo.Create(ctx, sale); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording retail sale")
	}
	return sale, nil
}

func (s *service) GetRetail(ctx context.Context, userID, saleID uuid.UUID) (*models.RetailSale, error) {
	return s.findOwnedRetail(ctx, userID, saleID)
}

func (s *service) ListRetail(ctx context.Context, userID uuid.UUID, day *time.Time) ([]models.RetailSale, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if day != nil {
		normalized := reports.DateOnly(*day)
		day = &normalized
	}
	sales, err := s.retailRepo.ListByUser(ctx, userID, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing retail sales")
	}
	return sales, nil
}

func (s *service) DeleteRetail(ctx context.Context, userID, saleID uuid.UUID) error {
	sale, err := s.findOwnedRetail(ctx, userID, saleID)
	if err != nil {
		return err
	}
	if err := s.retailRepo.Delete(ctx, sale.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting retail sale")
	}
	return nil
}

// CreateHotelSale writes the bill and its line items in one transaction.
// TotalAmount is derived from the items, never taken from the caller.
func (s *service) CreateHotelSale(ctx context.Context, input CreateHotelSaleInput) (*models.HotelSale, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.HotelID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hotel id is required")
	}
	billNumber := strings.TrimSpace(input.BillNumber)
	if billNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bill number is required")
	}
	if input.TradeDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "trade date is required")
	}

	hotel, err := s.hotelsRepo.FindByID(ctx, input.HotelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hotel not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up hotel")
	}
	if hotel.UserID != input.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hotel not found")
	}

	saleID := uuid.New()
	total := decimal.Zero
	items := make([]models.HotelSaleItem, 0, len(input.Items))
	for i, item := range input.Items {
		meatType := strings.TrimSpace(item.MeatType)
		productCut := strings.TrimSpace(item.ProductCut)
		if meatType == "" || productCut == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("item %d: meat type and product cut are required", i+1))
		}
		if item.QuantityKg.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("item %d: quantity must not be negative", i+1))
		}
		if item.RatePerKg.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("item %d: rate must not be negative", i+1))
		}

		lineTotal := item.QuantityKg.Mul(item.RatePerKg).Round(2)
		total = total.Add(lineTotal)
		items = append(items, models.HotelSaleItem{
			ID:          uuid.New(),
			HotelSaleID: saleID,
			MeatType:    meatType,
			ProductCut:  productCut,
			QuantityKg:  item.QuantityKg,
			RatePerKg:   item.RatePerKg,
			Total:       lineTotal,
		})
	}

	sale := &models.HotelSale{
		ID:          saleID,
		UserID:      input.UserID,
		HotelID:     input.HotelID,
		BillNumber:  billNumber,
		Paid:        input.Paid,
		TotalAmount: total,
		TradeDate:   reports.DateOnly(input.TradeDate),
		Items:       items,
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return s.hotelRepo.WithTx(tx).Create(ctx, sale)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording hotel sale")
	}
	return sale, nil
}

func (s *service) GetHotelSale(ctx context.Context, userID, saleID uuid.UUID) (*models.HotelSale, error) {
	return s.findOwnedHotelSale(ctx, userID, saleID)
}

func (s *service) ListHotelSales(ctx context.Context, userID uuid.UUID, day *time.Time) ([]models.HotelSale, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if day != nil {
		normalized := reports.DateOnly(*day)
		day = &normalized
	}
	sales, err := s.hotelRepo.ListByUser(ctx, userID, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing hotel sales")
	}
	return sales, nil
}

func (s *service) ListByHotel(ctx context.Context, userID, hotelID uuid.UUID) ([]models.HotelSale, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	hotel, err := s.hotelsRepo.FindByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hotel not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up hotel")
	}
	if hotel.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hotel not found")
	}

	sales, err := s.hotelRepo.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing hotel bills")
	}
	return sales, nil
}

func (s *service) SetHotelSalePaid(ctx context.Context, userID, saleID uuid.UUID, paid bool) (*models.HotelSale, error) {
	if _, err := s.findOwnedHotelSale(ctx, userID, saleID); err != nil {
		return nil, err
	}
	if err := s.hotelRepo.SetPaid(ctx, saleID, paid); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating bill paid status")
	}
	return s.findOwnedHotelSale(ctx, userID, saleID)
}

func (s *service) DeleteHotelSale(ctx context.Context, userID, saleID uuid.UUID) error {
	sale, err := s.findOwnedHotelSale(ctx, userID, saleID)
	if err != nil {
		return err
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return s.hotelRepo.WithTx(tx).Delete(ctx, sale.ID)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting hotel sale")
	}
	return nil
}

func (s *service) findOwnedRetail(ctx context.Context, userID, saleID uuid.UUID) (*models.RetailSale, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	sale, err := s.retailRepo.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "retail sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up retail sale")
	}
	if sale.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "retail sale not found")
	}
	return sale, nil
}

func (s *service) findOwnedHotelSale(ctx context.Context, userID, saleID uuid.UUID) (*models.HotelSale, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	sale, err := s.hotelRepo.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hotel sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up hotel sale")
	}
	if sale.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hotel sale not found")
	}
	return sale, nil
}
