package handler

import (
	"context"
	"net/http"

	"framtt_backend/internal/analytics/service"
	"framtt_backend/internal/analytics/transport"
	"framtt_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "invalid request"

// Handler serves the admin analytics endpoints.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/overview", h.Overview)
	rg.GET("/questionnaires", h.Questionnaires)
	rg.GET("/demo-requests", h.DemoRequests)
	rg.GET("/leads", h.Leads)
	rg.GET("/conversion-funnel", h.ConversionFunnel)
}

// GET /api/v1/admin/analytics/overview
func (h *Handler) Overview(c *gin.Context) {
	serve(c, h.svc.Overview)
}

// GET /api/v1/admin/analytics/questionnaires
func (h *Handler) Questionnaires(c *gin.Context) {
	serve(c, h.svc.Questionnaires)
}

// GET /api/v1/admin/analytics/demo-requests
func (h *Handler) DemoRequests(c *gin.Context) {
	serve(c, h.svc.DemoRequests)
}

// GET /api/v1/admin/analytics/leads
// GET /api/v1/admin/leads/analytics
func (h *Handler) Leads(c *gin.Context) {
	serve(c, h.svc.Leads)
}

// GET /api/v1/admin/analytics/conversion-funnel
func (h *Handler) ConversionFunnel(c *gin.Context) {
	serve(c, h.svc.ConversionFunnel)
}

// serve binds the date range, runs fn and writes its result.
func serve[T any](c *gin.Context, fn func(context.Context, transport.RangeRequest) (T, error)) {
	var req transport.RangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := fn(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
