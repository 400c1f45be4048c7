package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "framtt_backend/internal/http"
	"framtt_backend/platform/config"
	"framtt_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pingModule struct{}

func (pingModule) Name() string { return "ping" }

func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	ctx.Admin.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "admin pong") })
}

func newTestEngine() *gin.Engine {
	cfg := &config.Config{
		JWTSecret:      "secret",
		APIKey:         "key-123",
		CORSOrigins:    []string{"https://framtt.com"},
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}
	return New(&apphttp.App{Config: cfg, Logger: logger.Discard(), Modules: []apphttp.Module{pingModule{}}})
}

func get(engine *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestPublicAndAdminGroups(t *testing.T) {
	engine := newTestEngine()

	assert.Equal(t, http.StatusOK, get(engine, "/api/v1/ping", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, get(engine, "/api/v1/admin/ping", nil).Code)
	assert.Equal(t, http.StatusOK, get(engine, "/api/v1/admin/ping", map[string]string{"X-API-Key": "key-123"}).Code)
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	rec := get(newTestEngine(), "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "route not found")
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	rec := get(newTestEngine(), "/api/v1/ping", map[string]string{"Origin": "https://framtt.com"})
	assert.Equal(t, "https://framtt.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	engine := newTestEngine()
	get(engine, "/api/v1/ping", nil)

	rec := get(engine, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "framtt_http_requests_total")
}
