package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"framtt_backend/internal/demo/repository"
	"framtt_backend/internal/demo/transport"
	"framtt_backend/internal/events"
	"framtt_backend/platform/apperr"
	"framtt_backend/platform/httpkit"
	"framtt_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]repository.DemoRequest
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[uuid.UUID]repository.DemoRequest)}
}

func (r *fakeRepo) Create(_ context.Context, d repository.DemoRequest) (repository.DemoRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return repository.DemoRequest{}, r.createErr
	}
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	r.rows[d.ID] = d
	return d, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.DemoRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.rows[id]
	if !ok {
		return repository.DemoRequest{}, apperr.NotFound("demo request not found")
	}
	return d, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, p repository.UpdateStatusParams) (repository.DemoRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.rows[p.ID]
	if !ok {
		return repository.DemoRequest{}, apperr.NotFound("demo request not found")
	}
	d.Status = p.Status
	if p.Notes != nil {
		d.Notes = p.Notes
	}
	if p.AssignedTo != nil {
		d.AssignedTo = p.AssignedTo
	}
	r.rows[p.ID] = d
	return d, nil
}

func (r *fakeRepo) List(_ context.Context, p repository.ListParams) ([]repository.DemoRequest, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]repository.DemoRequest, 0, len(r.rows))
	for _, d := range r.rows {
		if p.Type != nil && d.Type != *p.Type {
			continue
		}
		out = append(out, d)
	}
	return out, len(out), nil
}

type fakeLeads struct {
	calls []LeadUpsert
	err   error
}

func (f *fakeLeads) UpsertFromDemo(_ context.Context, p LeadUpsert) (uuid.UUID, bool, error) {
	f.calls = append(f.calls, p)
	if f.err != nil {
		return uuid.Nil, false, f.err
	}
	return uuid.New(), true, nil
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

func newTestService() (*Service, *fakeRepo, *fakeLeads, *recordingBus) {
	repo := newFakeRepo()
	leads := &fakeLeads{}
	bus := &recordingBus{}
	return New(repo, leads, bus, "US", logger.Discard()), repo, leads, bus
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }

func TestSubmitStoresAndLinksLead(t *testing.T) {
	svc, repo, leads, bus := newTestService()

	resp, err := svc.Submit(context.Background(), transport.SubmitRequest{
		Type:              TypePricing,
		Name:              strPtr("  Dana <b>Reyes</b> "),
		Email:             strPtr("Dana@Example.com "),
		Phone:             strPtr("(415) 555-2671"),
		VehicleCount:      intPtr(40),
		CurrentChallenges: strPtr("Double bookings"),
	}, httpkit.ClientMeta{IPAddress: strPtr("192.0.2.1")})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	stored := repo.rows[resp.RequestID]
	if stored.Status != "new" || stored.Priority != "medium" || stored.PreferredContact != "email" {
		t.Fatalf("unexpected routing defaults %+v", stored)
	}
	if *stored.Name != "Dana Reyes" || *stored.Email != "dana@example.com" {
		t.Fatalf("expected sanitized contact, got %q %q", *stored.Name, *stored.Email)
	}
	if *stored.Phone != "+14155552671" {
		t.Fatalf("expected E.164 phone, got %q", *stored.Phone)
	}

	if len(leads.calls) != 1 || leads.calls[0].Email != "dana@example.com" || leads.calls[0].DemoRequestID != resp.RequestID {
		t.Fatalf("unexpected lead upsert calls %+v", leads.calls)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected one event, got %d", len(bus.published))
	}
	event, ok := bus.published[0].(events.DemoRequestSubmitted)
	if !ok || event.LeadID == nil || event.Type != TypePricing {
		t.Fatalf("unexpected event %+v", bus.published[0])
	}

	if resp.EstimatedResponseTime != "24 hours" || len(resp.NextSteps) != 3 || resp.NextSteps[0] != "Our sales team will prepare a customized quote" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestSubmitWithoutEmailSkipsLead(t *testing.T) {
	svc, _, leads, bus := newTestService()

	if _, err := svc.Submit(context.Background(), transport.SubmitRequest{Type: TypeGeneral}, httpkit.ClientMeta{}); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if len(leads.calls) != 0 {
		t.Fatalf("expected no lead upsert, got %d", len(leads.calls))
	}
	if len(bus.published) != 1 {
		t.Fatal("expected the event to be published without an email")
	}
}

func TestSubmitSurvivesLeadFailure(t *testing.T) {
	svc, _, leads, bus := newTestService()
	leads.err = errors.New("leads table locked")

	resp, err := svc.Submit(context.Background(), transport.SubmitRequest{Type: TypeModule, Email: strPtr("a@b.co")}, httpkit.ClientMeta{})
	if err != nil {
		t.Fatalf("expected lead failure to be swallowed, got %v", err)
	}
	if resp.RequestID == uuid.Nil {
		t.Fatal("expected a request id")
	}
	event := bus.published[0].(events.DemoRequestSubmitted)
	if event.LeadID != nil {
		t.Fatal("expected no lead id after a failed upsert")
	}
}

func TestSubmitFailsWhenStoreFails(t *testing.T) {
	svc, repo, leads, bus := newTestService()
	repo.createErr = errors.New("connection refused")

	if _, err := svc.Submit(context.Background(), transport.SubmitRequest{Type: TypeGeneral, Email: strPtr("a@b.co")}, httpkit.ClientMeta{}); err == nil {
		t.Fatal("expected store failure to be returned")
	}
	if len(leads.calls) != 0 || len(bus.published) != 0 {
		t.Fatal("expected nothing downstream after a failed store")
	}
}

func TestGetPublicUsesTypeSteps(t *testing.T) {
	svc, _, _, _ := newTestService()
	resp, err := svc.Submit(context.Background(), transport.SubmitRequest{Type: TypeFull, SessionID: strPtr(uuid.NewString())}, httpkit.ClientMeta{})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	view, err := svc.GetPublic(context.Background(), resp.RequestID)
	if err != nil {
		t.Fatalf("GetPublic returned error: %v", err)
	}
	if view.Type != TypeFull || view.NextSteps[0] != "We'll create a comprehensive demo experience" || view.CreatedAt.IsZero() {
		t.Fatalf("unexpected view %+v", view)
	}

	if _, err := svc.GetPublic(context.Background(), uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateStatusKeepsOmittedFields(t *testing.T) {
	svc, _, _, _ := newTestService()
	resp, _ := svc.Submit(context.Background(), transport.SubmitRequest{Type: TypeGeneral}, httpkit.ClientMeta{})

	if _, err := svc.UpdateStatus(context.Background(), resp.RequestID, transport.UpdateStatusRequest{
		Status: "contacted", Notes: strPtr("left voicemail"), AssignedTo: strPtr("sam"),
	}); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), resp.RequestID, transport.UpdateStatusRequest{Status: "qualified"})
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Status != "qualified" || *updated.Notes != "left voicemail" || *updated.AssignedTo != "sam" {
		t.Fatalf("expected notes and assignee to be kept, got %+v", updated)
	}
}

func TestListRejectsInvertedRange(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.List(context.Background(), transport.ListRequest{DateFrom: "2026-06-10", DateTo: "2026-06-01"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
