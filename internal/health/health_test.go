package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apphttp "framtt_backend/internal/http"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func serve(t *testing.T, deps Deps, path string) (*httptest.ResponseRecorder, DetailedResponse) {
	t.Helper()
	m := NewModule(deps)
	m.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }

	engine := gin.New()
	m.RegisterRoutes(&apphttp.RouterContext{Engine: engine, V1: engine.Group("/api/v1")})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body DetailedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestBasicHealth(t *testing.T) {
	rec, body := serve(t, Deps{Version: "1.2.3"}, "/api/v1/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, StatusOK, body.Status)
	assert.Equal(t, serviceName, body.Service)
	assert.Equal(t, "1.2.3", body.Version)
	assert.Nil(t, body.Checks)
}

func TestDetailedHealth(t *testing.T) {
	cases := []struct {
		name       string
		deps       Deps
		wantCode   int
		wantStatus string
	}{
		{
			name:       "all healthy",
			deps:       Deps{Database: fakePinger{}, EmailAvailable: true},
			wantCode:   http.StatusOK,
			wantStatus: StatusOK,
		},
		{
			name:       "database down",
			deps:       Deps{Database: fakePinger{err: errors.New("connection refused")}, EmailAvailable: true},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: StatusUnhealthy,
		},
		{
			name:       "email not configured",
			deps:       Deps{Database: fakePinger{}},
			wantCode:   http.StatusOK,
			wantStatus: StatusDegraded,
		},
		{
			name:       "redis down",
			deps:       Deps{Database: fakePinger{}, Redis: fakePinger{err: errors.New("timeout")}, EmailAvailable: true},
			wantCode:   http.StatusOK,
			wantStatus: StatusDegraded,
		},
		{
			name: "missing env",
			deps: Deps{Database: fakePinger{}, EmailAvailable: true, MissingEnv: func() []string {
				return []string{"JWT_SECRET"}
			}},
			wantCode:   http.StatusOK,
			wantStatus: StatusDegraded,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := serve(t, tc.deps, "/api/v1/health/detailed")
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.wantStatus, body.Status)
			assert.Contains(t, body.Checks, "database")
		})
	}
}

func TestRedisPingerAgainstMiniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	p := NewRedisPinger(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = p.Close() }()

	require.NoError(t, p.Ping(context.Background()))

	mr.Close()
	assert.Error(t, p.Ping(context.Background()))
}
