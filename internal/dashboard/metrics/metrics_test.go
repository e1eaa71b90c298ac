package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/holidash/internal/dashboard/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	m.Login(metrics.OutcomeSuccess)
	m.DirectoryLoaded("randomuser", 10, 1, nil)

	hc := &http.Client{}
	require.Same(t, hc, m.InstrumentClient("nager", hc))
}

func TestLoginAndDirectory(t *testing.T) {
	m := metrics.New()

	m.Login(metrics.OutcomeSuccess)
	m.Login(metrics.OutcomeWrongPassword)
	m.Login(metrics.OutcomeWrongPassword)
	require.Equal(t, 2.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues(metrics.OutcomeWrongPassword)))

	m.DirectoryLoaded("randomuser", 100, 2, nil)
	m.DirectoryLoaded("randomuser", 0, 0, errors.New("down"))
	require.Equal(t, 100.0, testutil.ToFloat64(m.DirectorySize))
	require.Equal(t, 2.0, testutil.ToFloat64(m.Collisions))
	require.Equal(t, 1.0, testutil.ToFloat64(m.DirectoryLoads.WithLabelValues("randomuser", "error")))
}

func TestInstrumentClientAndHandler(t *testing.T) {
	m := metrics.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	t.Cleanup(srv.Close)

	resp, err := m.InstrumentClient("hellosalut", nil).Get(srv.URL)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	require.Equal(t, 1, testutil.CollectAndCount(m.UpstreamLatency, "holidash_upstream_request_duration_seconds"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `holidash_upstream_request_duration_seconds_count{code="418",upstream="hellosalut"} 1`)
}
