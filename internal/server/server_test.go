package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localnerve/jam-build-breezemeta/internal/config"
	"github.com/localnerve/jam-build-breezemeta/internal/metadata"
	"github.com/localnerve/jam-build-breezemeta/internal/modelfile"
	"github.com/localnerve/jam-build-breezemeta/internal/services"
	"github.com/localnerve/jam-build-breezemeta/internal/types"
	"github.com/localnerve/jam-build-breezemeta/internal/utils"
)

func testApp(t *testing.T) *httpApp {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc, err := services.NewMetadataService(nil, services.MetadataOptions{Registerer: reg})
	require.NoError(t, err)
	require.NoError(t, svc.RegisterDefaults())

	broken, err := modelfile.Parse([]byte("namespace: S\ntypes:\n  - name: A\n    base: Missing\n    properties: []\n"))
	require.NoError(t, err)
	require.NoError(t, svc.Register("broken", services.StaticContext(broken)))

	return &httpApp{t: t, app: New(Deps{
		Config:     &config.Config{DBType: "none"},
		Metadata:   svc,
		Registerer: reg,
	})}
}

type httpApp struct {
	t   *testing.T
	app *fiber.App
}

func (h *httpApp) get(path string, header map[string]string, out any) int {
	h.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(h.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestGetMetadata(t *testing.T) {
	app := testApp(t)

	var doc metadata.BreezeMetadata
	status := app.get("/api/breeze/northwind/Metadata", nil, &doc)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1.0.5", doc.MetadataVersion)
	assert.NotEmpty(t, doc.StructuralTypes)
	assert.NotEmpty(t, doc.EnumTypes)
}

func TestGetMetadataErrors(t *testing.T) {
	app := testApp(t)

	tests := []struct {
		name   string
		path   string
		header map[string]string
		status int
		kind   string
	}{
		{"unknown context", "/api/breeze/inventory/Metadata", nil, http.StatusNotFound, types.ErrorTypeNotFound},
		{"unsupported model", "/api/breeze/broken/Metadata", nil, http.StatusInternalServerError, types.ErrorTypeUnsupportedModel},
		{"version conflict", "/api/breeze/northwind/Metadata", map[string]string{"X-Metadata-Version": "2.0.0"}, http.StatusConflict, types.ErrorTypeVersion},
		{"unknown route", "/api/nothing", nil, http.StatusNotFound, types.ErrorTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body utils.ErrorResponseStruct
			status := app.get(tt.path, tt.header, &body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.kind, body.Type)
			assert.False(t, body.Ok)
			assert.Equal(t, tt.path, body.URL)
		})
	}
}

func TestUnsupportedModelMessage(t *testing.T) {
	app := testApp(t)
	var body utils.ErrorResponseStruct
	app.get("/api/breeze/broken/Metadata", nil, &body)
	assert.Contains(t, body.Message, "A:#S")
	assert.Contains(t, body.Message, "unknown base type")
}

func TestListContexts(t *testing.T) {
	app := testApp(t)
	var body utils.ContextsResponseStruct
	status := app.get("/api/breeze", nil, &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"accounts", "broken", "northwind"}, body.Contexts)
	assert.Equal(t, "1.0.5", body.MetadataVersion)
}

func TestHealth(t *testing.T) {
	app := testApp(t)
	var body services.HealthCheckResult
	status := app.get("/api/health", nil, &body)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "disabled", body.Database)
	assert.Equal(t, "error", body.Contexts["broken"])
	assert.Equal(t, "ok", body.Contexts["northwind"])
}

func TestMetricsEndpoint(t *testing.T) {
	app := testApp(t)
	assert.Equal(t, http.StatusOK, app.get("/metrics", nil, nil))
}
