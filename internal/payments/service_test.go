package payments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kdhingra/meattrack-backend/internal/vendors"
	"github.com/kdhingra/meattrack-backend/pkg/db"
	"github.com/kdhingra/meattrack-backend/pkg/db/models"
	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE vendors (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			phone TEXT,
			notes TEXT,
			specializations TEXT,
			balance NUMERIC NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE vendor_payments (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			vendor_id TEXT NOT NULL,
			amount NUMERIC NOT NULL,
			notes TEXT,
			pay_date DATE NOT NULL,
			created_at DATETIME
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func seedVendor(t *testing.T, conn *gorm.DB, userID uuid.UUID, balance string) *models.Vendor {
	t.Helper()

	vendor := &models.Vendor{
		ID:      uuid.New(),
		UserID:  userID,
		Name:    "Delhi Fresh Poultry",
		Balance: decimal.RequireFromString(balance),
	}
	require.NoError(t, conn.Create(vendor).Error)
	return vendor
}

func newTestService(t *testing.T, conn *gorm.DB) (Service, vendors.Repository) {
	t.Helper()

	vendorRepo := vendors.NewRepository(conn)
	svc, err := NewService(db.NewFromConn(conn), NewRepository(conn), vendorRepo)
	require.NoError(t, err)
	return svc, vendorRepo
}

func vendorBalance(t *testing.T, repo vendors.Repository, id uuid.UUID) decimal.Decimal {
	t.Helper()

	vendor, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return vendor.Balance
}

func TestCreatePaymentReducesVendorBalance(t *testing.T) {
	conn := openTestDB(t)
	userID := uuid.New()
	vendor := seedVendor(t, conn, userID, "12000")
	svc, vendorRepo := newTestService(t, conn)

	payment, err := svc.Create(context.Background(), CreatePaymentInput{
		UserID:   userID,
		VendorID: vendor.ID,
		Amount:   decimal.RequireFromString("5000"),
		PayDate:  time.Date(2025, 4, 1, 18, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotNil(t, payment)

	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), payment.PayDate)
	balance := vendorBalance(t, vendorRepo, vendor.ID)
	assert.True(t, balance.Equal(decimal.RequireFromString("7000")), "balance %s", balance)
}

func TestPaymentMayOverpayBalance(t *testing.T) {
	conn := openTestDB(t)
	userID := uuid.New()
	vendor := seedVendor(t, conn, userID, "1000")
	svc, vendorRepo := newTestService(t, conn)

	_, err := svc.Create(context.Background(), CreatePaymentInput{
		UserID:   userID,
		VendorID: vendor.ID,
		Amount:   decimal.RequireFromString("1500"),
		PayDate:  time.Now(),
	})
	require.NoError(t, err)

	balance := vendorBalance(t, vendorRepo, vendor.ID)
	assert.True(t, balance.Equal(decimal.RequireFromString("-500")), "balance %s", balance)
}

func TestDeletePaymentRestoresVendorBalance(t *testing.T) {
	conn := openTestDB(t)
	userID := uuid.New()
	vendor := seedVendor(t, conn, userID, "9000")
	svc, vendorRepo := newTestService(t, conn)

	payment, err := svc.Create(context.Background(), CreatePaymentInput{
		UserID:   userID,
		VendorID: vendor.ID,
		Amount:   decimal.RequireFromString("2500"),
		PayDate:  time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userID, payment.ID))

	balance := vendorBalance(t, vendorRepo, vendor.ID)
	assert.True(t, balance.Equal(decimal.RequireFromString("9000")), "balance %s", balance)

	_, err = svc.Get(context.Background(), userID, payment.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCreatePaymentRejectsNonPositiveAmount(t *testing.T) {
	conn := openTestDB(t)
	userID := uuid.New()
	vendor := seedVendor(t, conn, userID, "1000")
	svc, _ := newTestService(t, conn)

	for name, amount := range map[string]string{"zero": "0", "negative": "-50"} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), CreatePaymentInput{
				UserID:   userID,
				VendorID: vendor.ID,
				Amount:   decimal.RequireFromString(amount),
				PayDate:  time.Now(),
			})
			require.Error(t, err)
			assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
		})
	}
}

func TestPaymentForeignVendorIsNotFound(t *testing.T) {
	conn := openTestDB(t)
	vendor := seedVendor(t, conn, uuid.New(), "1000")
	svc, _ := newTestService(t, conn)

	_, err := svc.Create(context.Background(), CreatePaymentInput{
		UserID:   uuid.New(),
		VendorID: vendor.ID,
		Amount:   decimal.RequireFromString("100"),
		PayDate:  time.Now(),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = svc.ListByVendor(context.Background(), uuid.New(), vendor.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
