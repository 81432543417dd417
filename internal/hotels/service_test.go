package hotels

import (
	"context"
	"testing"

	"github.com/google/uuid"
	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
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

	require.NoError(t, conn.Exec(`CREATE TABLE hotels (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		phone TEXT,
		address TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error)
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func TestHotelCRUD(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)
	userID := uuid.New()

	address := "12 MG Road"
	hotel, err := svc.Create(context.Background(), CreateHotelInput{
		UserID:  userID,
		Name:    "Hotel Paradise",
		Phone:   "9876500033",
		Address: &address,
	})
	require.NoError(t, err)
	require.NotNil(t, hotel.Address)
	assert.Equal(t, "12 MG Road", *hotel.Address)

	listed, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	newName := "Hotel Paradise Deluxe"
	updated, err := svc.Update(context.Background(), userID, hotel.ID, UpdateHotelInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)

	require.NoError(t, svc.Delete(context.Background(), userID, hotel.ID))

	_, err = svc.Get(context.Background(), userID, hotel.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestHotelScopedToOwner(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)

	hotel, err := svc.Create(context.Background(), CreateHotelInput{
		UserID: uuid.New(),
		Name:   "Hotel Paradise",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), uuid.New(), hotel.ID, UpdateHotelInput{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCreateHotelRequiresName(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.Create(context.Background(), CreateHotelInput{UserID: uuid.New(), Name: ""})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
