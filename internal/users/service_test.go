package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	pkgauth "github.com/kdhingra/meattrack-backend/pkg/auth"
	"github.com/kdhingra/meattrack-backend/pkg/config"
	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "meattrack-test",
		ExpirationMinutes: 30,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error)
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn), testJWTConfig(), testPasswordConfig())
	require.NoError(t, err)
	return svc
}

func TestRegisterAndLogin(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Owner@Example.COM",
		Password: "correct horse",
		Name:     "Karan",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", user.Email)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "owner@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, user.ID, result.User.ID)
	require.NotEmpty(t, result.AccessToken)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "owner@example.com",
		Password: "correct horse",
		Name:     "Karan",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{
		Email:    "owner@example.com",
		Password: "wrong horse",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLoginUnknownEmailMatchesWrongPassword(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
	assert.Equal(t, "invalid credentials", typed.Message())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)

	input := RegisterInput{Email: "owner@example.com", Password: "correct horse", Name: "Karan"}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestRegisterValidation(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)

	cases := map[string]RegisterInput{
		"bad email":      {Email: "not-an-email", Password: "long enough", Name: "K"},
		"short password": {Email: "k@example.com", Password: "short", Name: "K"},
		"missing name":   {Email: "k@example.com", Password: "long enough"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
		})
	}
}

func TestProfile(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "owner@example.com",
		Password: "correct horse",
		Name:     "Karan",
	})
	require.NoError(t, err)

	fetched, err := svc.Profile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, fetched.Email)

	_, err = svc.Profile(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
