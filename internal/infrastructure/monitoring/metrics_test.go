package monitoring

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GriffinCanCode/horoscopefs/internal/domain/horoscope"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFetch(t *testing.T) {
	m := NewMetrics()

	m.RecordFetch(horoscope.Astrosage, horoscope.Daily, OutcomeOK)
	m.RecordFetch(horoscope.Astrosage, horoscope.Daily, OutcomeOK)
	m.RecordFetch(horoscope.IndianAstrology2000, horoscope.Weekly, OutcomeUnavailable)
	m.RecordFetch(horoscope.Astroyogi, horoscope.Monthly, OutcomeError)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("Astrosage", "daily", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("Astroyogi", "monthly", OutcomeError)))

	snapshot := m.Snapshot()
	assert.Equal(t, int64(4), snapshot.Fetches)
	assert.Equal(t, int64(1), snapshot.FetchFailures)
}

func TestRecordWarm(t *testing.T) {
	m := NewMetrics()

	m.RecordWarm(horoscope.Astrosage, 200*time.Millisecond)
	m.RecordWarm(horoscope.Astroyogi, 300*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SourcesWarmed))
	assert.Equal(t, 1, testutil.CollectAndCount(m.WarmDuration.WithLabelValues("Astrosage").(prometheus.Collector)))

	snapshot := m.Snapshot()
	assert.Equal(t, int64(2), snapshot.Warmed)
	assert.InDelta(t, 0.5, snapshot.WarmSeconds, 1e-9)
}

func TestRecordOperationAndPanic(t *testing.T) {
	m := NewMetrics()

	m.RecordOperation("getattr", "content-file")
	m.RecordOperation("getattr", "content-file")
	m.RecordOperation("readdir", "root")
	m.RecordPanic(horoscope.AstroyogiCareer)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("getattr", "content-file")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SitePanics.WithLabelValues("AstroyogiCareer")))
	assert.Equal(t, int64(3), m.Snapshot().Operations)
}

func TestMetricsAreIsolated(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordOperation("read", "content-file")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.OperationsTotal.WithLabelValues("read", "content-file")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.OperationsTotal.WithLabelValues("read", "content-file")))
}

func TestHandler(t *testing.T) {
	m := NewMetrics()
	m.RecordFetch(horoscope.Astrosage, horoscope.Weekly, OutcomeOK)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `horoscopefs_fetches_total{outcome="ok",source="Astrosage",type="weekly"} 1`)
	assert.Contains(t, string(body), "horoscopefs_uptime_seconds")
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/status/:source", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	for _, path := range []string{"/status/Astrosage", "/status/Astroyogi", "/missing"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/status/:source", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	count, err := testutil.GatherAndCount(m.Registry(), "horoscopefs_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
