package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestMetricsExposed(t *testing.T) {
	Register()

	before := testutil.ToFloat64(LookupsTotal.WithLabelValues(OutcomePartial))
	LookupsTotal.WithLabelValues(OutcomePartial).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(LookupsTotal.WithLabelValues(OutcomePartial)))

	rec := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ac_lookups_total")
}
