// Package questionnaire provides the questionnaire bounded context module.
package questionnaire

import (
	"time"

	"framtt_backend/internal/events"
	apphttp "framtt_backend/internal/http"
	"framtt_backend/internal/questionnaire/handler"
	"framtt_backend/internal/questionnaire/repository"
	"framtt_backend/internal/questionnaire/service"
	"framtt_backend/platform/httpkit"
	"framtt_backend/platform/logger"
	"framtt_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	submitLimit  = 3
	submitWindow = time.Minute
)

// Module is the questionnaire bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), eventBus, log)
	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "questionnaire"
}

// RegisterRoutes mounts the public questionnaire routes and the admin listing.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	limiter := httpkit.NewWindowRateLimiter(submitLimit, submitWindow, ctx.Logger)
	m.handler.RegisterRoutes(ctx.V1.Group("/questionnaire"), limiter.RateLimit())
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/questionnaires"))
}

var _ apphttp.Module = (*Module)(nil)
