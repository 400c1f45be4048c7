package handler

import (
	"net/http"

	"framtt_backend/internal/auth/service"
	"framtt_backend/internal/auth/transport"
	"framtt_backend/platform/httpkit"
	"framtt_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgNoUserBehindKey  = "api key callers have no user profile"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.Me)
	rg.POST("/users", httpkit.RequireRole(httpkit.RoleAdmin), h.CreateUser)
}

// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Details(err))
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// GET /api/v1/admin/me
func (h *Handler) Me(c *gin.Context) {
	actor := httpkit.GetIdentity(c).ActorID()
	if actor == nil {
		httpkit.Error(c, http.StatusNotFound, msgNoUserBehindKey, nil)
		return
	}

	resp, err := h.svc.Me(c.Request.Context(), *actor)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// POST /api/v1/admin/users
func (h *Handler) CreateUser(c *gin.Context) {
	var req transport.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Details(err))
		return
	}

	resp, err := h.svc.CreateUser(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, resp)
}
