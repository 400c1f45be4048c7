// Package demo provides the demo request bounded context module.
package demo

import (
	"time"

	"framtt_backend/internal/demo/handler"
	"framtt_backend/internal/demo/repository"
	"framtt_backend/internal/demo/service"
	"framtt_backend/internal/events"
	apphttp "framtt_backend/internal/http"
	"framtt_backend/platform/config"
	"framtt_backend/platform/httpkit"
	"framtt_backend/platform/logger"
	"framtt_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	submitLimit  = 3
	submitWindow = 5 * time.Minute
)

// Module is the demo request bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule wires the demo module. leads may be nil, in which case demo
// requests are stored without touching leads.
func NewModule(pool *pgxpool.Pool, leads service.LeadUpserter, eventBus events.Bus, val *validator.Validator, cfg config.PhoneConfig, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), leads, eventBus, cfg.GetDefaultPhoneRegion(), log)
	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "demo"
}

// RegisterRoutes mounts the public demo routes and the admin endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	limiter := httpkit.NewWindowRateLimiter(submitLimit, submitWindow, ctx.Logger)
	m.handler.RegisterRoutes(ctx.V1.Group("/demo"), limiter.RateLimit())
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/demo-requests"))
}

var _ apphttp.Module = (*Module)(nil)
