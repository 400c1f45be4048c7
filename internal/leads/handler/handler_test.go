package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"framtt_backend/internal/events"
	"framtt_backend/internal/leads/repository"
	"framtt_backend/internal/leads/service"
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
	leads      map[uuid.UUID]repository.Lead
	activities []repository.Activity
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	return lead, nil
}

func (r *memoryRepo) GetByEmail(context.Context, string) (repository.Lead, error) {
	return repository.Lead{}, apperr.NotFound("lead not found")
}

func (r *memoryRepo) List(context.Context, repository.ListParams) ([]repository.Lead, int, error) {
	out := make([]repository.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		out = append(out, lead)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Stream(_ context.Context, _ repository.ListParams, fn func(repository.Lead) error) error {
	for _, lead := range r.leads {
		if err := fn(lead); err != nil {
			return err
		}
	}
	return nil
}

func (r *memoryRepo) Create(_ context.Context, lead repository.Lead) (repository.Lead, error) {
	r.leads[lead.ID] = lead
	return lead, nil
}

func (r *memoryRepo) Save(_ context.Context, lead repository.Lead) (repository.Lead, error) {
	lead.UpdatedAt = time.Now()
	r.leads[lead.ID] = lead
	return lead, nil
}

func (r *memoryRepo) AddActivity(_ context.Context, p repository.CreateActivityParams) (repository.Activity, error) {
	if _, ok := r.leads[p.LeadID]; !ok {
		return repository.Activity{}, apperr.NotFound("lead not found")
	}
	a := repository.Activity{
		ID:          uuid.New(),
		LeadID:      p.LeadID,
		Type:        p.Type,
		Description: p.Description,
		ActorID:     p.ActorID,
		CreatedAt:   time.Now(),
	}
	r.activities = append(r.activities, a)
	return a, nil
}

func (r *memoryRepo) ListActivities(_ context.Context, leadID uuid.UUID) ([]repository.Activity, error) {
	var out []repository.Activity
	for i := len(r.activities) - 1; i >= 0; i-- {
		if r.activities[i].LeadID == leadID {
			out = append(out, r.activities[i])
		}
	}
	return out, nil
}

type nopBus struct{}

func (nopBus) Publish(context.Context, events.Event)           {}
func (nopBus) PublishSync(context.Context, events.Event) error { return nil }
func (nopBus) Subscribe(string, events.Handler)                {}

func newEngine(t *testing.T) (*gin.Engine, *memoryRepo, uuid.UUID) {
	t.Helper()
	email := "anna@citycars.com"
	id := uuid.New()
	repo := &memoryRepo{leads: map[uuid.UUID]repository.Lead{
		id: {ID: id, Email: &email, Industry: "car_rental", Source: "website", Status: "new", Score: 10, CreatedAt: time.Now()},
	}}

	svc := service.New(repo, nopBus{}, "US", logger.Discard())
	h := New(svc, service.NewExporter(repo, nil, "exports"), validator.New("US"))
	r := gin.New()
	h.RegisterRoutes(r.Group("/admin/leads"))
	return r, repo, id
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetByID(t *testing.T) {
	r, _, id := newEngine(t)

	w := do(r, http.MethodGet, "/admin/leads/"+id.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "anna@citycars.com", body["email"])

	w = do(r, http.MethodGet, "/admin/leads/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/admin/leads/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateRecomputesScore(t *testing.T) {
	r, repo, id := newEngine(t)

	w := do(r, http.MethodPut, "/admin/leads/"+id.String(), `{"vehicleCount": 25}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, 20, repo.leads[id].Score)
	require.NotEmpty(t, repo.activities)
	assert.Equal(t, "updated", repo.activities[0].Type)
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	r, _, id := newEngine(t)

	w := do(r, http.MethodPut, "/admin/leads/"+id.String(), `{"status": "maybe"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddAndListActivities(t *testing.T) {
	r, _, id := newEngine(t)

	w := do(r, http.MethodPost, "/admin/leads/"+id.String()+"/activities", `{"type": "call", "description": "Intro call"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(r, http.MethodPost, "/admin/leads/"+id.String()+"/activities", `{"type": "call"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/admin/leads/"+id.String()+"/activities", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Intro call", body.Data[0]["description"])
}

func TestExportCSV(t *testing.T) {
	r, _, _ := newEngine(t)

	w := do(r, http.MethodGet, "/admin/leads/export.csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "anna@citycars.com")
}

func TestExportStoreWithoutStorage(t *testing.T) {
	r, _, _ := newEngine(t)

	w := do(r, http.MethodGet, "/admin/leads/export.csv?store=true", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
