package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveQuery(t *testing.T) {
	before := testutil.ToFloat64(Queries.WithLabelValues("top_users"))
	beforeErr := testutil.ToFloat64(QueryErrors.WithLabelValues("top_users"))

	ObserveQuery("top_users", time.Now(), nil)
	ObserveQuery("top_users", time.Now(), errors.New("boom"))

	assert.Equal(t, before+2, testutil.ToFloat64(Queries.WithLabelValues("top_users")))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(QueryErrors.WithLabelValues("top_users")))
}

func TestMetricsExposure(t *testing.T) {
	ObserveQuery("search_tweets", time.Now().Add(-20*time.Millisecond), nil)
	LoaderBatches.Inc()
	LoaderRecords.Add(10)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	for _, m := range []string{
		"xbrowse_queries_total",
		"xbrowse_query_duration_seconds",
		"xbrowse_loader_batches_total",
		"xbrowse_loader_records_total",
	} {
		assert.Contains(t, body, m)
	}
}
