package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/redhat-appstudio/statuspage-mirror/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRoutes(t *testing.T) {
	store, err := storage.NewSQLiteStore(storage.SQLiteConfig{Path: filepath.Join(t.TempDir(), "routes.sqlite")})
	require.NoError(t, err)
	defer store.Close()

	app := fiber.New()
	SetupRoutes(app, store)

	tests := []struct {
		path       string
		statusCode int
		contains   string
	}{
		{"/", http.StatusOK, "Status Page Mirror"},
		{"/api/v1/health", http.StatusOK, "healthy"},
		{"/api/v1/incidents", http.StatusOK, `"count":0`},
		{"/api/v1/incidents/unknown", http.StatusNotFound, "not tracked"},
		{"/metrics", http.StatusOK, "go_goroutines"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.statusCode, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), tt.contains)
		})
	}
}

func TestSetupRoutes_WithoutStore(t *testing.T) {
	app := fiber.New()
	SetupRoutes(app, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/incidents", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "Expected incidents API to be absent")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
