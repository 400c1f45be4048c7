package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"framtt_backend/internal/events"
	"framtt_backend/internal/questionnaire/repository"
	"framtt_backend/internal/questionnaire/transport"
	"framtt_backend/platform/apperr"
	"framtt_backend/platform/httpkit"
	"framtt_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	mu    sync.Mutex
	rows  []repository.Questionnaire
	clock time.Time
}

func (r *fakeRepo) Create(_ context.Context, q repository.Questionnaire) (repository.Questionnaire, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = r.clock.Add(time.Minute)
	q.ID = uuid.New()
	q.CompletedAt = r.clock
	q.CreatedAt = r.clock
	r.rows = append(r.rows, q)
	return q, nil
}

func (r *fakeRepo) LatestBySession(_ context.Context, sessionID uuid.UUID) (repository.Questionnaire, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *repository.Questionnaire
	for i := range r.rows {
		if r.rows[i].SessionID != sessionID {
			continue
		}
		if latest == nil || r.rows[i].CreatedAt.After(latest.CreatedAt) {
			latest = &r.rows[i]
		}
	}
	if latest == nil {
		return repository.Questionnaire{}, apperr.NotFound("questionnaire not found")
	}
	return *latest, nil
}

func (r *fakeRepo) List(_ context.Context, params repository.ListParams) ([]repository.Questionnaire, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]repository.Questionnaire, 0, len(r.rows))
	for _, q := range r.rows {
		if params.DateFrom != nil && q.CreatedAt.Before(*params.DateFrom) {
			continue
		}
		if params.DateTo != nil && q.CreatedAt.After(*params.DateTo) {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := len(out)
	if params.Offset >= len(out) {
		return []repository.Questionnaire{}, total, nil
	}
	end := params.Offset + params.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[params.Offset:end], total, nil
}

type recordingBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func newTestService() (*Service, *fakeRepo, *recordingBus) {
	repo := &fakeRepo{clock: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	bus := &recordingBus{}
	return New(repo, bus, logger.Discard()), repo, bus
}

func boolPtr(v bool) *bool { return &v }
func strPtr(s string) *string { return &s }

func answers(revenue, chat, tracking, whatsapp, marketing, software bool) transport.SubmitRequest {
	return transport.SubmitRequest{
		MonitorRevenue:       boolPtr(revenue),
		SeamlessCustomerChat: boolPtr(chat),
		TrackVehiclesLive:    boolPtr(tracking),
		UseWhatsApp:          boolPtr(whatsapp),
		SpendOnMarketing:     boolPtr(marketing),
		UseRentalSoftware:    boolPtr(software),
	}
}

func TestSubmitGeneratesSessionAndRecommends(t *testing.T) {
	svc, repo, bus := newTestService()

	resp, err := svc.Submit(context.Background(), answers(true, false, true, false, false, false), httpkit.ClientMeta{IPAddress: strPtr("10.0.0.1")})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if resp.SessionID == uuid.Nil {
		t.Fatal("expected a generated session id")
	}
	if resp.TotalSolutions != 4 || resp.RecommendedCount != 2 {
		t.Fatalf("expected 4 solutions and 2 recommended, got %d and %d", resp.TotalSolutions, resp.RecommendedCount)
	}
	if resp.Solutions[0].ID != "analytics" || resp.Solutions[3].ID != "website" {
		t.Fatalf("unexpected order %+v", resp.Solutions)
	}
	if repo.rows[0].IPAddress == nil || *repo.rows[0].IPAddress != "10.0.0.1" {
		t.Fatal("expected client metadata to be stored")
	}
	if len(bus.published) != 1 || bus.published[0].EventName() != "questionnaire.submitted" {
		t.Fatalf("expected one questionnaire.submitted event, got %v", bus.published)
	}
}

func TestSubmitKeepsProvidedSession(t *testing.T) {
	svc, _, _ := newTestService()
	session := uuid.New()
	req := answers(false, false, false, false, false, true)
	req.SessionID = strPtr(session.String())

	resp, err := svc.Submit(context.Background(), req, httpkit.ClientMeta{})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if resp.SessionID != session {
		t.Fatalf("expected session %s, got %s", session, resp.SessionID)
	}
	if resp.TotalSolutions != 1 || resp.Solutions[0].ID != "booking" {
		t.Fatalf("expected booking only, got %+v", resp.Solutions)
	}
}

func TestSubmitRejectsMalformedSession(t *testing.T) {
	svc, _, _ := newTestService()
	req := answers(false, false, false, false, false, false)
	req.SessionID = strPtr("not-a-uuid")

	_, err := svc.Submit(context.Background(), req, httpkit.ClientMeta{})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSolutionsUsesLatestSubmission(t *testing.T) {
	svc, _, _ := newTestService()
	session := uuid.New()

	first := answers(false, false, false, false, false, false)
	first.SessionID = strPtr(session.String())
	second := answers(true, true, true, true, true, true)
	second.SessionID = strPtr(session.String())

	for _, req := range []transport.SubmitRequest{first, second} {
		if _, err := svc.Submit(context.Background(), req, httpkit.ClientMeta{}); err != nil {
			t.Fatalf("Submit returned error: %v", err)
		}
	}

	resp, err := svc.Solutions(context.Background(), session)
	if err != nil {
		t.Fatalf("Solutions returned error: %v", err)
	}
	if resp.RecommendedCount != 5 || resp.TotalSolutions != 6 {
		t.Fatalf("expected latest answers to win, got %d/%d", resp.RecommendedCount, resp.TotalSolutions)
	}
	if resp.CompletedAt.IsZero() {
		t.Fatal("expected completedAt to be set")
	}
}

func TestLookupsReturnNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.Solutions(context.Background(), uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Answers(context.Background(), uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListPaginatesNewestFirst(t *testing.T) {
	svc, _, _ := newTestService()
	for i := 0; i < 3; i++ {
		if _, err := svc.Submit(context.Background(), answers(i == 0, false, false, false, false, false), httpkit.ClientMeta{}); err != nil {
			t.Fatalf("Submit returned error: %v", err)
		}
	}

	resp, err := svc.List(context.Background(), transport.ListRequest{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(resp.Data) != 2 || resp.Pagination.TotalItems != 3 || resp.Pagination.TotalPages != 2 {
		t.Fatalf("unexpected page %+v", resp.Pagination)
	}
	if !resp.Data[0].CreatedAt.After(resp.Data[1].CreatedAt) {
		t.Fatal("expected newest first")
	}
}

func TestListRejectsInvertedRange(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.List(context.Background(), transport.ListRequest{DateFrom: "2026-05-02", DateTo: "2026-05-01"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
