package handler

import (
	"fmt"
	"net/http"

	"framtt_backend/internal/leads/service"
	"framtt_backend/internal/leads/transport"
	"framtt_backend/platform/httpkit"
	"framtt_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid lead id"
)

// Handler serves the admin lead endpoints.
type Handler struct {
	svc      *service.Service
	exporter *service.Exporter
	val      *validator.Validator
}

func New(svc *service.Service, exporter *service.Exporter, val *validator.Validator) *Handler {
	transport.RegisterOptionalTypes(val)
	return &Handler{svc: svc, exporter: exporter, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/export.csv", h.Export)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.POST("/:id/activities", h.AddActivity)
	rg.GET("/:id/activities", h.ListActivities)
}

// GET /api/v1/admin/leads
func (h *Handler) List(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Details(err))
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GET /api/v1/admin/leads/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	lead, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// PUT /api/v1/admin/leads/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Details(err))
		return
	}

	lead, err := h.svc.Update(c.Request.Context(), id, req, actorOf(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// POST /api/v1/admin/leads/:id/activities
func (h *Handler) AddActivity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.AddActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Details(err))
		return
	}

	activity, err := h.svc.AddActivity(c.Request.Context(), id, req, actorOf(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, activity)
}

// GET /api/v1/admin/leads/:id/activities
func (h *Handler) ListActivities(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	activities, err := h.svc.ListActivities(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": activities})
}

// GET /api/v1/admin/leads/export.csv
// With ?store=true the file goes to object storage and a download URL is returned.
func (h *Handler) Export(c *gin.Context) {
	var req transport.ExportLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Details(err))
		return
	}

	if req.Store {
		stored, err := h.exporter.StoreCSV(c.Request.Context(), req.ListLeadsRequest)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.JSON(c, http.StatusCreated, stored)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename=leads.csv")
	c.Status(http.StatusOK)
	if _, err := h.exporter.WriteCSV(c.Request.Context(), req.ListLeadsRequest, c.Writer); err != nil {
		if !c.Writer.Written() {
			c.Writer.Header().Del("Content-Type")
			c.Writer.Header().Del("Content-Disposition")
			httpkit.HandleError(c, err)
			return
		}
		// Rows already went out; the request log is the only place left to report it.
		_ = c.Error(fmt.Errorf("lead export: %w", err))
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}

func actorOf(c *gin.Context) *string {
	actor := httpkit.GetIdentity(c).ActorID()
	if actor == nil {
		return nil
	}
	value := actor.String()
	return &value
}
