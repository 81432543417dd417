package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdhingra/meattrack-backend/api/middleware"
	"github.com/kdhingra/meattrack-backend/internal/reports"
)

type stubReportsService struct {
	buildDaily func(ctx context.Context, userID uuid.UUID, day time.Time) (*reports.DailySummary, error)
	buildRange func(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]reports.DailySummary, error)
}

func (s *stubReportsService) BuildDaily(ctx context.Context, userID uuid.UUID, day time.Time) (*reports.DailySummary, error) {
	return s.buildDaily(ctx, userID, day)
}

func (s *stubReportsService) BuildRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]reports.DailySummary, error) {
	return s.buildRange(ctx, userID, start, end)
}

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := middleware.WithUserID(req.Context(), uuid.NewString())
	return req.WithContext(ctx)
}

func TestReportDailyParsesDate(t *testing.T) {
	var gotDay time.Time
	svc := &stubReportsService{
		buildDaily: func(_ context.Context, _ uuid.UUID, day time.Time) (*reports.DailySummary, error) {
			gotDay = day
			return &reports.DailySummary{Date: day.Format(reports.DateLayout)}, nil
		},
	}

	rec := httptest.NewRecorder()
	ReportDaily(svc, nil)(rec, authedRequest(http.MethodGet, "/api/v1/reports/daily?date=2025-04-01"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), gotDay)

	var envelope struct {
		Data reports.DailySummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, gotDay.Format(reports.DateLayout), envelope.Data.Date)
}

func TestReportDailyRejectsBadDate(t *testing.T) {
	svc := &stubReportsService{
		buildDaily: func(context.Context, uuid.UUID, time.Time) (*reports.DailySummary, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	for name, target := range map[string]string{
		"missing":   "/api/v1/reports/daily",
		"malformed": "/api/v1/reports/daily?date=01-04-2025",
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ReportDaily(svc, nil)(rec, authedRequest(http.MethodGet, target))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestReportDailyRequiresUserContext(t *testing.T) {
	svc := &stubReportsService{
		buildDaily: func(context.Context, uuid.UUID, time.Time) (*reports.DailySummary, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/daily?date=2025-04-01", nil)
	ReportDaily(svc, nil)(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReportRangeParsesBothBounds(t *testing.T) {
	var gotStart, gotEnd time.Time
	svc := &stubReportsService{
		buildRange: func(_ context.Context, _ uuid.UUID, start, end time.Time) ([]reports.DailySummary, error) {
			gotStart, gotEnd = start, end
			return []reports.DailySummary{}, nil
		},
	}

	rec := httptest.NewRecorder()
	ReportRange(svc, nil)(rec, authedRequest(http.MethodGet, "/api/v1/reports/range?start=2025-04-01&end=2025-04-07"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), gotStart)
	assert.Equal(t, time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC), gotEnd)
}

func TestReportRangeRequiresBothBounds(t *testing.T) {
	svc := &stubReportsService{
		buildRange: func(context.Context, uuid.UUID, time.Time, time.Time) ([]reports.DailySummary, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	ReportRange(svc, nil)(rec, authedRequest(http.MethodGet, "/api/v1/reports/range?start=2025-04-01"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
