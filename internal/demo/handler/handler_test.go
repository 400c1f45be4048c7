package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"framtt_backend/internal/demo/repository"
	"framtt_backend/internal/demo/service"
	"framtt_backend/internal/events"
	"framtt_backend/platform/apperr"
	"framtt_backend/platform/logger"
	"framtt_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryRepo struct {
	rows map[uuid.UUID]repository.DemoRequest
}

func (r *memoryRepo) Create(_ context.Context, d repository.DemoRequest) (repository.DemoRequest, error) {
	d.CreatedAt = time.Now()
	r.rows[d.ID] = d
	return d, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (repository.DemoRequest, error) {
	d, ok := r.rows[id]
	if !ok {
		return repository.DemoRequest{}, apperr.NotFound("demo request not found")
	}
	return d, nil
}

func (r *memoryRepo) UpdateStatus(_ context.Context, p repository.UpdateStatusParams) (repository.DemoRequest, error) {
	d, ok := r.rows[p.ID]
	if !ok {
		return repository.DemoRequest{}, apperr.NotFound("demo request not found")
	}
	d.Status = p.Status
	r.rows[p.ID] = d
	return d, nil
}

func (r *memoryRepo) List(context.Context, repository.ListParams) ([]repository.DemoRequest, int, error) {
	return nil, 0, nil
}

type nopBus struct{}

func (nopBus) Publish(context.Context, events.Event)           {}
func (nopBus) PublishSync(context.Context, events.Event) error { return nil }
func (nopBus) Subscribe(string, events.Handler)                {}

func newEngine(repo *memoryRepo) *gin.Engine {
	h := New(service.New(repo, nil, nopBus{}, "US", logger.Discard()), validator.New("US"))
	r := gin.New()
	h.RegisterRoutes(r.Group("/demo"), func(c *gin.Context) { c.Next() })
	h.RegisterAdminRoutes(r.Group("/admin/demo-requests"))
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitValidation(t *testing.T) {
	r := newEngine(&memoryRepo{rows: map[uuid.UUID]repository.DemoRequest{}})

	cases := []struct {
		name     string
		body     string
		wantCode int
		wantText string
	}{
		{"valid", `{"type":"general","name":"Dana","email":"dana@example.com"}`, http.StatusCreated, `"estimatedResponseTime":"24 hours"`},
		{"missing type", `{"name":"Dana"}`, http.StatusBadRequest, `"type"`},
		{"bad type", `{"type":"webinar"}`, http.StatusBadRequest, `"type"`},
		{"short name", `{"type":"general","name":"D"}`, http.StatusBadRequest, `"name"`},
		{"bad email", `{"type":"general","email":"nope"}`, http.StatusBadRequest, `"email"`},
		{"fleet too large", `{"type":"general","vehicleCount":10001}`, http.StatusBadRequest, `"vehicleCount"`},
		{"bad timeline", `{"type":"general","timeline":"someday"}`, http.StatusBadRequest, `"timeline"`},
		{"bad module", `{"type":"module","moduleId":"teleport"}`, http.StatusBadRequest, `"moduleId"`},
		{"bad session", `{"type":"general","sessionId":"123"}`, http.StatusBadRequest, `"sessionId"`},
		{"bad phone", `{"type":"general","phone":"call me"}`, http.StatusBadRequest, `"phone"`},
		{"malformed json", `{"type":`, http.StatusBadRequest, msgInvalidRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(r, "/demo/request", tc.body)
			require.Equal(t, tc.wantCode, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), tc.wantText)
		})
	}
}

func TestGetPublicHidesContactDetails(t *testing.T) {
	r := newEngine(&memoryRepo{rows: map[uuid.UUID]repository.DemoRequest{}})

	w := postJSON(r, "/demo/request", `{"type":"pricing","email":"secret@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := strings.Split(strings.Split(w.Body.String(), `"requestId":"`)[1], `"`)[0]

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/demo/request/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"type":"pricing"`)
	assert.NotContains(t, w.Body.String(), "secret@example.com")
}

func TestGetPublicMissing(t *testing.T) {
	r := newEngine(&memoryRepo{rows: map[uuid.UUID]repository.DemoRequest{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/demo/request/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	r := newEngine(&memoryRepo{rows: map[uuid.UUID]repository.DemoRequest{}})

	req := httptest.NewRequest(http.MethodPatch, "/admin/demo-requests/"+uuid.NewString()+"/status", strings.NewReader(`{"status":"won"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"status"`)
}
