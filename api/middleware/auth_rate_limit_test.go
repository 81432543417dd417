package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type memoryLimiterStore struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func newMemoryLimiterStore() *memoryLimiterStore {
	return &memoryLimiterStore{counts: map[string]int64{}}
}

func (s *memoryLimiterStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[key]++
	return s.counts[key], nil
}

func loginRequest(email string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"`+email+`","password":"x"}`))
	req.RemoteAddr = "203.0.113.9:4411"
	return req
}

func TestAuthRateLimitAllowsUnderLimit(t *testing.T) {
	store := newMemoryLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 5, 3)

	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest("owner@example.com"))
		assert.Equal(t, http.StatusNoContent, rec.Code, "attempt %d", i+1)
	}
}

func TestAuthRateLimitBlocksEmailOverLimit(t *testing.T) {
	store := newMemoryLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 100, 2)

	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest("owner@example.com"))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("owner@example.com"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// A different email keeps its own counter.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("other@example.com"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthRateLimitBlocksIPOverLimit(t *testing.T) {
	store := newMemoryLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)

	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest("a@example.com"))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("b@example.com"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	store := newMemoryLimiterStore()
	policy := NewAuthRateLimitPolicy("login", 0, 0, 0)

	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("owner@example.com"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, store.counts)
}
