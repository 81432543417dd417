package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgauth "github.com/kdhingra/meattrack-backend/pkg/auth"
	"github.com/kdhingra/meattrack-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "meattrack-test",
		ExpirationMinutes: 30,
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	handler := Auth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthSeedsUserContext(t *testing.T) {
	userID := uuid.New()
	token, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Email:  "owner@example.com",
	})
	require.NoError(t, err)

	var seenUserID string
	handler := Auth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, userID.String(), seenUserID)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	token, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now().Add(-2*time.Hour), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "owner@example.com",
	})
	require.NoError(t, err)

	handler := Auth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
