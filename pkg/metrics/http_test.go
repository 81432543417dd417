package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestObserveRequestRecordsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/reports/daily", "200", 120*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/reports/daily", "200", 80*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]*dto.MetricFamily{}
	for _, fam := range families {
		byName[fam.GetName()] = fam
	}

	counter := byName["http_requests_total"]
	require.NotNil(t, counter)
	require.Len(t, counter.Metric, 1)
	require.Equal(t, float64(2), counter.Metric[0].GetCounter().GetValue())

	histogram := byName["http_request_duration_seconds"]
	require.NotNil(t, histogram)
	require.Equal(t, uint64(2), histogram.Metric[0].GetHistogram().GetSampleCount())
}

func TestObserveRequestNormalizesEmptyLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("", "", "", time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, fam := range families {
		if fam.GetName() != "http_requests_total" {
			continue
		}
		for _, label := range fam.Metric[0].GetLabel() {
			require.Equal(t, "unknown", label.GetValue())
		}
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "/", "200", time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest("GET", "/", "200", time.Millisecond)
}
