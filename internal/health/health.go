// Package health serves the liveness and detailed readiness endpoints.
package health

import (
	"context"
	"net/http"
	"strings"
	"time"

	apphttp "framtt_backend/internal/http"
	"framtt_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const (
	serviceName  = "framtt-backend"
	checkTimeout = 3 * time.Second

	StatusOK        = "ok"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Pinger is anything that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the probes behind the detailed check. Redis is optional.
type Deps struct {
	Version        string
	Database       Pinger
	Redis          Pinger
	EmailAvailable bool
	MissingEnv     func() []string
}

type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type BasicResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

type DetailedResponse struct {
	BasicResponse
	Checks map[string]Check `json:"checks"`
}

// Module serves /api/v1/health and /api/v1/health/detailed.
type Module struct {
	deps Deps
	now  func() time.Time
}

func NewModule(deps Deps) *Module {
	if deps.MissingEnv == nil {
		deps.MissingEnv = func() []string { return nil }
	}
	return &Module{deps: deps, now: time.Now}
}

func (m *Module) Name() string {
	return "health"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	rg := ctx.V1.Group("/health")
	rg.GET("", m.Basic)
	rg.GET("/detailed", m.Detailed)
}

// GET /api/v1/health
func (m *Module) Basic(c *gin.Context) {
	httpkit.OK(c, m.basic(StatusOK))
}

// GET /api/v1/health/detailed
func (m *Module) Detailed(c *gin.Context) {
	resp := m.detailed(c.Request.Context())
	status := http.StatusOK
	if resp.Status == StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	httpkit.JSON(c, status, resp)
}

func (m *Module) basic(status string) BasicResponse {
	return BasicResponse{
		Status:    status,
		Timestamp: m.now().UTC(),
		Service:   serviceName,
		Version:   m.deps.Version,
	}
}

// detailed is unhealthy when the database is down and degraded when any
// other check fails.
func (m *Module) detailed(ctx context.Context) DetailedResponse {
	checks := map[string]Check{
		"database": ping(ctx, m.deps.Database),
	}
	if m.deps.Redis != nil {
		checks["redis"] = ping(ctx, m.deps.Redis)
	}

	if m.deps.EmailAvailable {
		checks["email"] = Check{Status: StatusOK}
	} else {
		checks["email"] = Check{Status: StatusDegraded, Error: "email delivery not configured"}
	}

	if missing := m.deps.MissingEnv(); len(missing) > 0 {
		checks["environment"] = Check{Status: StatusDegraded, Error: "missing: " + strings.Join(missing, ", ")}
	} else {
		checks["environment"] = Check{Status: StatusOK}
	}

	overall := StatusOK
	for _, check := range checks {
		if check.Status != StatusOK {
			overall = StatusDegraded
		}
	}
	if checks["database"].Status != StatusOK {
		overall = StatusUnhealthy
	}

	return DetailedResponse{BasicResponse: m.basic(overall), Checks: checks}
}

func ping(ctx context.Context, p Pinger) Check {
	if p == nil {
		return Check{Status: StatusUnhealthy, Error: "not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return Check{Status: StatusUnhealthy, Error: err.Error()}
	}
	return Check{Status: StatusOK}
}

var _ apphttp.Module = (*Module)(nil)
