// Package analytics provides the reporting bounded context module.
package analytics

import (
	"framtt_backend/internal/analytics/handler"
	"framtt_backend/internal/analytics/repository"
	"framtt_backend/internal/analytics/service"
	apphttp "framtt_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the analytics bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool) *Module {
	return &Module{handler: handler.New(service.New(repository.New(pool)))}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "analytics"
}

// RegisterRoutes mounts the analytics routes. Lead analytics is also served
// under the leads prefix.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Admin.Group("/analytics"))
	ctx.Admin.GET("/leads/analytics", m.handler.Leads)
}

var _ apphttp.Module = (*Module)(nil)
