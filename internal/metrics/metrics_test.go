package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCacheLookup(t *testing.T) {
	before := testutil.ToFloat64(cacheLookups.WithLabelValues("test_key", ResultHit))
	RecordCacheLookup("test_key", ResultHit)
	RecordCacheLookup("test_key", ResultHit)
	assert.Equal(t, before+2, testutil.ToFloat64(cacheLookups.WithLabelValues("test_key", ResultHit)))
}

func TestRecordSweptIgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(sweptEntries)
	RecordSwept(0)
	RecordSwept(-1)
	assert.Equal(t, before, testutil.ToFloat64(sweptEntries))
	RecordSwept(4)
	assert.Equal(t, before+4, testutil.ToFloat64(sweptEntries))
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordUpstream("ranking", OutcomeError)
	RecordHTTPRequest("/api/pokedata/", http.MethodGet, "200", 0.01)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `pokedata_upstream_requests_total{endpoint="ranking",outcome="error"}`))
	assert.True(t, strings.Contains(body, "pokedata_http_request_duration_seconds"))
}
