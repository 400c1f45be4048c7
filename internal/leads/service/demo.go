package service

import (
	"context"

	"framtt_backend/internal/events"
	"framtt_backend/internal/leads/domain"
	"framtt_backend/internal/leads/repository"
	"framtt_backend/internal/leads/scoring"
	"framtt_backend/platform/apperr"
	"framtt_backend/platform/httpkit"
	"framtt_backend/platform/sanitize"

	"github.com/google/uuid"
)

// DemoLeadParams is the lead-relevant part of a stored demo request.
type DemoLeadParams struct {
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

// UpsertResult reports which lead a demo request landed on.
type UpsertResult struct {
	LeadID  uuid.UUID
	Created bool
}

// UpsertFromDemo creates the lead for the request's email or merges the
// request into the existing one. Matching is case-insensitive.
func (s *Service) UpsertFromDemo(ctx context.Context, p DemoLeadParams) (UpsertResult, error) {
	email := sanitize.Email(p.Email)
	if email == "" {
		return UpsertResult{}, apperr.Validation("demo request has no email to match a lead")
	}
	p.Email = email

	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return s.mergeDemo(ctx, existing, p)
	case !apperr.Is(err, apperr.KindNotFound):
		return UpsertResult{}, err
	}

	result, err := s.createFromDemo(ctx, p)
	if apperr.Is(err, apperr.KindConflict) {
		// A concurrent request inserted the same email first.
		existing, err = s.repo.GetByEmail(ctx, email)
		if err != nil {
			return UpsertResult{}, err
		}
		return s.mergeDemo(ctx, existing, p)
	}
	return result, err
}

func (s *Service) createFromDemo(ctx context.Context, p DemoLeadParams) (UpsertResult, error) {
	now := s.now().UTC()
	demoID := p.DemoRequestID
	lead := repository.Lead{
		ID:              uuid.New(),
		SessionID:       p.SessionID,
		DemoRequestID:   &demoID,
		Name:            p.Name,
		Email:           &p.Email,
		Company:         p.Company,
		Phone:           p.Phone,
		VehicleCount:    p.VehicleCount,
		Timeline:        p.Timeline,
		PainPoints:      p.CurrentChallenges,
		Industry:        domain.DefaultIndustry,
		Source:          domain.SourceWebsite,
		Status:          domain.StatusNew,
		Tags:            []string{},
		LastContactDate: &now,
	}
	lead.Score = scoring.Compute(signalsOf(lead))

	created, err := s.repo.Create(ctx, lead)
	if err != nil {
		return UpsertResult{}, err
	}
	httpkit.LeadsChanged.WithLabelValues("created").Inc()

	s.record(ctx, created.ID, domain.ActivityCreated, "Lead created from demo request: "+p.RequestType, nil)
	s.eventBus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    created.ID,
		Email:     p.Email,
		Source:    created.Source,
		Score:     created.Score,
	})

	s.log.WithContext(ctx).Info("lead created", "id", created.ID, "demoRequestId", p.DemoRequestID, "score", created.Score)
	return UpsertResult{LeadID: created.ID, Created: true}, nil
}

func (s *Service) mergeDemo(ctx context.Context, lead repository.Lead, p DemoLeadParams) (UpsertResult, error) {
	oldScore := lead.Score
	now := s.now().UTC()
	demoID := p.DemoRequestID

	if p.Name != nil {
		lead.Name = p.Name
	}
	if p.Company != nil {
		lead.Company = p.Company
	}
	if p.Phone != nil {
		lead.Phone = p.Phone
	}
	// Zero means "not given" here, as in scoring.
	if p.VehicleCount != nil && *p.VehicleCount > 0 {
		lead.VehicleCount = p.VehicleCount
	}
	if p.Timeline != nil {
		lead.Timeline = p.Timeline
	}
	if lead.SessionID == nil {
		lead.SessionID = p.SessionID
	}
	lead.DemoRequestID = &demoID
	lead.LastContactDate = &now
	lead.Score = scoring.Compute(signalsOf(lead))

	saved, err := s.repo.Save(ctx, lead)
	if err != nil {
		return UpsertResult{}, err
	}
	httpkit.LeadsChanged.WithLabelValues("updated").Inc()

	s.record(ctx, saved.ID, domain.ActivityDemoRequest, "New demo request: "+p.RequestType, nil)
	if oldScore != saved.Score {
		s.eventBus.Publish(ctx, events.LeadScoreChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    saved.ID,
			OldScore:  oldScore,
			NewScore:  saved.Score,
		})
	}

	s.log.WithContext(ctx).Info("lead updated from demo request", "id", saved.ID, "demoRequestId", p.DemoRequestID, "score", saved.Score)
	return UpsertResult{LeadID: saved.ID, Created: false}, nil
}
