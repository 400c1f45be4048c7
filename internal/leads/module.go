// Package leads provides the lead management bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"framtt_backend/internal/adapters/storage"
	"framtt_backend/internal/events"
	apphttp "framtt_backend/internal/http"
	"framtt_backend/internal/leads/handler"
	"framtt_backend/internal/leads/repository"
	"framtt_backend/internal/leads/service"
	"framtt_backend/platform/config"
	"framtt_backend/platform/logger"
	"framtt_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// ModuleConfig is the configuration the leads module reads.
type ModuleConfig interface {
	config.PhoneConfig
	config.StorageConfig
}

// NewModule creates and initializes the leads module with all its dependencies.
// store may be nil, which disables stored exports.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, store storage.ObjectStore, val *validator.Validator, cfg ModuleConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus, cfg.GetDefaultPhoneRegion(), log)
	exporter := service.NewExporter(repo, store, cfg.GetMinIOBucketExports())

	return &Module{
		handler: handler.New(svc, exporter, val),
		service: svc,
	}
}

// Service exposes the lead service for cross-module adapters.
func (m *Module) Service() *service.Service {
	return m.service
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// RegisterRoutes mounts lead routes on the admin group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Admin.Group("/leads"))
}

var _ apphttp.Module = (*Module)(nil)
