package metrics_test

import (
	"github.com/myrjola/veritruth/internal/metrics"
	"github.com/myrjola/veritruth/internal/models"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMetrics(t *testing.T) {
	m := metrics.New()
	m.ObserveAnalysis(models.VerdictFake, time.Second)
	m.ObserveAnalysis(models.VerdictFake, 2*time.Second)
	m.ObserveAnalysis(models.VerdictMixed, time.Second)
	m.ObserveFailure(3 * time.Second)
	m.ObserveRejected()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	exposition := string(body)
	require.Contains(t, exposition, `veritruth_analyses_total{verdict="Fake"} 2`)
	require.Contains(t, exposition, `veritruth_analyses_total{verdict="Mixed Context"} 1`)
	require.Contains(t, exposition, "veritruth_analysis_failures_total 1")
	require.Contains(t, exposition, "veritruth_analyses_rejected_total 1")
	require.Contains(t, exposition, `veritruth_engine_call_duration_seconds_count{outcome="success"} 3`)
	require.Contains(t, exposition, "go_goroutines")
}

func TestMetrics_nil(t *testing.T) {
	var m *metrics.Metrics
	require.NotPanics(t, func() {
		m.ObserveAnalysis(models.VerdictReal, time.Second)
		m.ObserveFailure(time.Second)
		m.ObserveRejected()
	})
}
