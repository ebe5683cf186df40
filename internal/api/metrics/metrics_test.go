package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCount(t *testing.T, method, route, code string) uint64 {
	t.Helper()
	var m dto.Metric
	obs := HTTPRequestDuration.WithLabelValues(method, route, code)
	require.NoError(t, obs.(prometheus.Metric).Write(&m))
	return m.GetHistogram().GetSampleCount()
}

func TestMiddleware_RecordsRenderedStatus(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/teapot/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})
	e.GET("/ok", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	beforeErr := sampleCount(t, http.MethodGet, "/teapot/:id", "418")
	beforeOK := sampleCount(t, http.MethodGet, "/ok", "200")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot/1", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, beforeErr+1, sampleCount(t, http.MethodGet, "/teapot/:id", "418"))
	assert.Equal(t, beforeOK+1, sampleCount(t, http.MethodGet, "/ok", "200"))
}
