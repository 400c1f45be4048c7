// Package service holds the demo request workflow.
package service

import (
	"context"

	"framtt_backend/internal/demo/repository"
	"framtt_backend/internal/demo/transport"
	"framtt_backend/internal/events"
	"framtt_backend/platform/apperr"
	"framtt_backend/platform/daterange"
	"framtt_backend/platform/httpkit"
	"framtt_backend/platform/logger"
	"framtt_backend/platform/phone"
	"framtt_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	statusNew               = "new"
	priorityMedium          = "medium"
	defaultPreferredContact = "email"
)

// LeadUpsert is what the lead side needs from a stored demo request.
type LeadUpsert struct {
	DemoRequestID     uuid.UUID
	RequestType       string
	SessionID         *uuid.UUID
	Name              *string
	Email             string
	Company           *string
	Phone             *string
	VehicleCount      *int
	Timeline          *string
	CurrentChallenges *string
}

// LeadUpserter creates or merges the lead behind a demo request.
type LeadUpserter interface {
	UpsertFromDemo(ctx context.Context, p LeadUpsert) (leadID uuid.UUID, created bool, err error)
}

type Service struct {
	repo        repository.DemoRequestRepository
	leads       LeadUpserter
	eventBus    events.Bus
	phoneRegion string
	log         *logger.Logger
}

func New(repo repository.DemoRequestRepository, leads LeadUpserter, eventBus events.Bus, phoneRegion string, log *logger.Logger) *Service {
	return &Service{repo: repo, leads: leads, eventBus: eventBus, phoneRegion: phoneRegion, log: log}
}

// Submit stores the request, then links a lead and announces the request.
// Only the store step can fail the call.
func (s *Service) Submit(ctx context.Context, req transport.SubmitRequest, meta httpkit.ClientMeta) (transport.SubmitResponse, error) {
	record, err := s.buildRecord(req, meta)
	if err != nil {
		return transport.SubmitResponse{}, err
	}

	saved, err := s.repo.Create(ctx, record)
	if err != nil {
		return transport.SubmitResponse{}, err
	}
	log := s.log.WithContext(ctx)
	log.Info("demo request stored", "id", saved.ID, "type", saved.Type)
	httpkit.DemoRequestsSubmitted.WithLabelValues(saved.Type).Inc()

	leadID := s.linkLead(ctx, saved)

	s.eventBus.Publish(ctx, submittedEvent(saved, leadID))

	return transport.SubmitResponse{
		RequestID:             saved.ID,
		Type:                  saved.Type,
		Status:                saved.Status,
		EstimatedResponseTime: transport.EstimatedResponseTime,
		NextSteps:             NextSteps(saved.Type),
	}, nil
}

// GetPublic returns the requester-facing view of a request.
func (s *Service) GetPublic(ctx context.Context, id uuid.UUID) (transport.PublicDemoRequestResponse, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.PublicDemoRequestResponse{}, err
	}
	return transport.PublicDemoRequestResponse{
		RequestID:             d.ID,
		Type:                  d.Type,
		Status:                d.Status,
		CreatedAt:             d.CreatedAt,
		EstimatedResponseTime: transport.EstimatedResponseTime,
		NextSteps:             NextSteps(d.Type),
	}, nil
}

func (s *Service) List(ctx context.Context, req transport.ListRequest) (transport.ListResponse, error) {
	from, to, err := daterange.ParseOptional(req.DateFrom, req.DateTo)
	if err != nil {
		return transport.ListResponse{}, err
	}

	page, limit, offset := httpkit.ClampPage(req.Page, req.Limit)
	items, total, err := s.repo.List(ctx, repository.ListParams{
		Status:     optional(req.Status),
		Type:       optional(req.Type),
		Priority:   optional(req.Priority),
		AssignedTo: optional(req.AssignedTo),
		DateFrom:   from,
		DateTo:     to,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		return transport.ListResponse{}, err
	}

	data := make([]transport.DemoRequestResponse, 0, len(items))
	for _, d := range items {
		data = append(data, toResponse(d))
	}
	return transport.ListResponse{Data: data, Pagination: httpkit.NewPagination(page, limit, total)}, nil
}

// UpdateStatus moves a request along the sales pipeline. Omitted notes and
// assignee keep their stored values.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req transport.UpdateStatusRequest) (transport.DemoRequestResponse, error) {
	updated, err := s.repo.UpdateStatus(ctx, repository.UpdateStatusParams{
		ID:         id,
		Status:     req.Status,
		Notes:      sanitize.TextPtr(req.Notes),
		AssignedTo: sanitize.TextPtr(req.AssignedTo),
	})
	if err != nil {
		return transport.DemoRequestResponse{}, err
	}
	s.log.WithContext(ctx).Info("demo request status updated", "id", id, "status", updated.Status)
	return toResponse(updated), nil
}

func (s *Service) buildRecord(req transport.SubmitRequest, meta httpkit.ClientMeta) (repository.DemoRequest, error) {
	record := repository.DemoRequest{
		ID:                uuid.New(),
		Type:              req.Type,
		ModuleID:          sanitize.TextPtr(req.ModuleID),
		Name:              sanitize.TextPtr(req.Name),
		Email:             sanitize.EmailPtr(req.Email),
		Company:           sanitize.TextPtr(req.Company),
		VehicleCount:      req.VehicleCount,
		CurrentChallenges: sanitize.TextPtr(req.CurrentChallenges),
		Timeline:          sanitize.TextPtr(req.Timeline),
		PreferredContact:  defaultPreferredContact,
		BestTime:          sanitize.TextPtr(req.BestTime),
		Message:           sanitize.TextPtr(req.Message),
		IPAddress:         meta.IPAddress,
		UserAgent:         meta.UserAgent,
		Referrer:          meta.Referrer,
		Status:            statusNew,
		Priority:          priorityMedium,
	}
	if record.Type == "" {
		record.Type = TypeGeneral
	}
	if v := sanitize.TextPtr(req.PreferredContact); v != nil {
		record.PreferredContact = *v
	}
	if req.SessionID != nil && *req.SessionID != "" {
		sessionID, err := uuid.Parse(*req.SessionID)
		if err != nil {
			return repository.DemoRequest{}, apperr.Validation("sessionId must be a valid UUID")
		}
		record.SessionID = &sessionID
	}
	if v := sanitize.TextPtr(req.Phone); v != nil {
		normalized := phone.NormalizeE164(*v, s.phoneRegion)
		record.Phone = &normalized
	}
	return record, nil
}

// linkLead upserts the lead for a request with an email. Failures are logged
// and swallowed; the request itself is already stored.
func (s *Service) linkLead(ctx context.Context, d repository.DemoRequest) *uuid.UUID {
	if d.Email == nil || s.leads == nil {
		return nil
	}

	leadID, created, err := s.leads.UpsertFromDemo(ctx, LeadUpsert{
		DemoRequestID:     d.ID,
		RequestType:       d.Type,
		SessionID:         d.SessionID,
		Name:              d.Name,
		Email:             *d.Email,
		Company:           d.Company,
		Phone:             d.Phone,
		VehicleCount:      d.VehicleCount,
		Timeline:          d.Timeline,
		CurrentChallenges: d.CurrentChallenges,
	})
	if err != nil {
		s.log.WithContext(ctx).Error("lead upsert from demo request failed", "demoRequestId", d.ID, "error", err)
		return nil
	}

	s.log.WithContext(ctx).Info("lead linked to demo request", "demoRequestId", d.ID, "leadId", leadID, "created", created)
	return &leadID
}

func submittedEvent(d repository.DemoRequest, leadID *uuid.UUID) events.DemoRequestSubmitted {
	return events.DemoRequestSubmitted{
		BaseEvent:         events.NewBaseEvent(),
		RequestID:         d.ID,
		LeadID:            leadID,
		Type:              d.Type,
		ModuleID:          deref(d.ModuleID),
		Name:              deref(d.Name),
		Email:             deref(d.Email),
		Company:           deref(d.Company),
		Phone:             deref(d.Phone),
		VehicleCount:      d.VehicleCount,
		CurrentChallenges: deref(d.CurrentChallenges),
		Timeline:          deref(d.Timeline),
		PreferredContact:  d.PreferredContact,
		BestTime:          deref(d.BestTime),
		Message:           deref(d.Message),
	}
}

func toResponse(d repository.DemoRequest) transport.DemoRequestResponse {
	return transport.DemoRequestResponse{
		ID:                d.ID,
		SessionID:         d.SessionID,
		Type:              d.Type,
		ModuleID:          d.ModuleID,
		Name:              d.Name,
		Email:             d.Email,
		Company:           d.Company,
		Phone:             d.Phone,
		VehicleCount:      d.VehicleCount,
		CurrentChallenges: d.CurrentChallenges,
		Timeline:          d.Timeline,
		PreferredContact:  d.PreferredContact,
		BestTime:          d.BestTime,
		Message:           d.Message,
		IPAddress:         d.IPAddress,
		UserAgent:         d.UserAgent,
		Referrer:          d.Referrer,
		Status:            d.Status,
		Priority:          d.Priority,
		AssignedTo:        d.AssignedTo,
		FollowUpDate:      d.FollowUpDate,
		Notes:             d.Notes,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
