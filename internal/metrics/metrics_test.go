package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"":  "/",
		"/": "/",
		"/contracts/507f1f77bcf86cd799439011/payments":           "/contracts/:id/payments",
		"/apartments/507f1f77bcf86cd799439011/check_maintenance": "/apartments/:id/check_maintenance",
		"/reports/payments/stats?skip=1":                         "/reports/payments/stats",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePath(in), in)
	}
}

func TestWithMetrics_CountsStatus(t *testing.T) {
	_, err := Register(Config{Registry: prometheus.NewRegistry()})
	require.NoError(t, err)

	h := WithMetrics(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/brew", "418"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", nil))
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/brew", "418"))
	assert.Equal(t, before+1, after)
}
