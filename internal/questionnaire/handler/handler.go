package handler

import (
	"net/http"

	"framtt_backend/internal/questionnaire/service"
	"framtt_backend/internal/questionnaire/transport"
	"framtt_backend/platform/httpkit"
	"framtt_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidSession   = "invalid session id"
)

// Handler serves the questionnaire endpoints.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the public routes. submitLimit guards the submit
// endpoint only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, submitLimit gin.HandlerFunc) {
	rg.POST("/submit", submitLimit, h.Submit)
	rg.GET("/solutions/:sessionId", h.Solutions)
	rg.GET("/:sessionId", h.Answers)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

// POST /api/v1/questionnaire/submit
func (h *Handler) Submit(c *gin.Context) {
	var req transport.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Details(err))
		return
	}

	resp, err := h.svc.Submit(c.Request.Context(), req, httpkit.ClientMetaFrom(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, resp)
}

// GET /api/v1/questionnaire/solutions/:sessionId
func (h *Handler) Solutions(c *gin.Context) {
	sessionID, ok := parseSession(c)
	if !ok {
		return
	}

	resp, err := h.svc.Solutions(c.Request.Context(), sessionID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// GET /api/v1/questionnaire/:sessionId
func (h *Handler) Answers(c *gin.Context) {
	sessionID, ok := parseSession(c)
	if !ok {
		return
	}

	resp, err := h.svc.Answers(c.Request.Context(), sessionID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// GET /api/v1/admin/questionnaires
func (h *Handler) List(c *gin.Context) {
	var req transport.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Details(err))
		return
	}

	resp, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func parseSession(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSession, nil)
		return uuid.Nil, false
	}
	return id, true
}
