package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datallboy/gofetch/internal/app"
	"github.com/datallboy/gofetch/internal/infra/config"
	"github.com/datallboy/gofetch/internal/infra/logger"
)

func TestServerRoutes(t *testing.T) {
	cfg := &config.Config{
		Fetch: config.FetchConfig{ConcurrencyLimit: 1, RequestTimeout: time.Second, WorkDirParent: t.TempDir()},
		Store: config.StoreConfig{Driver: "none"},
	}
	ac, err := app.NewContext(cfg, logger.Nop())
	require.NoError(t, err)

	e := NewServer(ac)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// empty target list is a valid batch
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/batches", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":0`)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gofetch_batches_total 1")
}
