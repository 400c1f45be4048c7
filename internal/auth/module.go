// Package auth provides the staff authentication bounded context module.
package auth

import (
	"framtt_backend/internal/auth/handler"
	"framtt_backend/internal/auth/repository"
	"framtt_backend/internal/auth/service"
	authvalidator "framtt_backend/internal/auth/validator"
	apphttp "framtt_backend/internal/http"
	"framtt_backend/platform/config"
	"framtt_backend/platform/logger"
	"framtt_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the auth module and registers the password rule on val.
func NewModule(pool *pgxpool.Pool, cfg config.AuthConfig, val *validator.Validator, log *logger.Logger) (*Module, error) {
	if err := authvalidator.RegisterPasswordRules(val); err != nil {
		return nil, err
	}

	svc := service.New(repository.New(pool), cfg, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service exposes the auth service for the seed command.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts login behind the auth rate limiter and the profile
// routes under admin.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)

	m.handler.RegisterAdminRoutes(ctx.Admin)
}

var _ apphttp.Module = (*Module)(nil)
