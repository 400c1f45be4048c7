// Package service implements lead management: listing, partial updates with
// score maintenance, the activity trail, and the demo-request upsert.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"framtt_backend/internal/events"
	"framtt_backend/internal/leads/domain"
	"framtt_backend/internal/leads/repository"
	"framtt_backend/internal/leads/scoring"
	"framtt_backend/internal/leads/transport"
	"framtt_backend/platform/daterange"
	"framtt_backend/platform/httpkit"
	"framtt_backend/platform/logger"
	"framtt_backend/platform/phone"
	"framtt_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Service handles lead business logic.
type Service struct {
	repo        repository.LeadsRepository
	eventBus    events.Bus
	phoneRegion string
	log         *logger.Logger
	now         func() time.Time
}

// New creates a lead service.
func New(repo repository.LeadsRepository, eventBus events.Bus, phoneRegion string, log *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		eventBus:    eventBus,
		phoneRegion: phoneRegion,
		log:         log,
		now:         time.Now,
	}
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return toLeadResponse(lead), nil
}

func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	params, err := listParams(req)
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	page, limit, offset := httpkit.ClampPage(req.Page, req.Limit)
	params.Limit = limit
	params.Offset = offset

	leads, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	items := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		items = append(items, toLeadResponse(lead))
	}

	return transport.LeadListResponse{
		Data:       items,
		Pagination: httpkit.NewPagination(page, limit, total),
		Filters: transport.ListFilters{
			Status:     req.Status,
			AssignedTo: req.AssignedTo,
			MinScore:   req.MinScore,
			Source:     req.Source,
			DateFrom:   req.DateFrom,
			DateTo:     req.DateTo,
		},
	}, nil
}

// Update applies a partial update. When a scoring field changes the score is
// recomputed; otherwise an explicit score is stored as an operator override.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest, actorID *string) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	before := lead

	changed, scoringTouched := s.applyUpdate(&lead, req)
	if len(changed) == 0 {
		return toLeadResponse(lead), nil
	}

	override := false
	switch {
	case scoringTouched:
		lead.Score = scoring.Compute(signalsOf(lead))
	case req.Score.Set && req.Score.Value != nil:
		lead.Score = *req.Score.Value
		override = true
	}

	saved, err := s.repo.Save(ctx, lead)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	httpkit.LeadsChanged.WithLabelValues("updated").Inc()

	s.record(ctx, saved.ID, domain.ActivityUpdated, "Lead updated: "+strings.Join(changed, ", "), actorID)
	if before.Status != saved.Status {
		s.record(ctx, saved.ID, domain.ActivityStatusChange,
			fmt.Sprintf("Status changed from %s to %s", before.Status, saved.Status), actorID)
	}
	if before.Score != saved.Score {
		if override {
			s.record(ctx, saved.ID, domain.ActivityScoreChange,
				fmt.Sprintf("Score manually set from %d to %d", before.Score, saved.Score), actorID)
		}
		s.eventBus.Publish(ctx, events.LeadScoreChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    saved.ID,
			OldScore:  before.Score,
			NewScore:  saved.Score,
			Override:  override,
		})
	}

	s.log.WithContext(ctx).Info("lead updated", "id", saved.ID, "fields", changed, "score", saved.Score)
	return toLeadResponse(saved), nil
}

func (s *Service) AddActivity(ctx context.Context, leadID uuid.UUID, req transport.AddActivityRequest, actorID *string) (transport.ActivityResponse, error) {
	activity, err := s.repo.AddActivity(ctx, repository.CreateActivityParams{
		LeadID:      leadID,
		Type:        req.Type,
		Description: sanitize.Text(req.Description),
		ActorID:     actorID,
	})
	if err != nil {
		return transport.ActivityResponse{}, err
	}
	return toActivityResponse(activity), nil
}

func (s *Service) ListActivities(ctx context.Context, leadID uuid.UUID) ([]transport.ActivityResponse, error) {
	if _, err := s.repo.GetByID(ctx, leadID); err != nil {
		return nil, err
	}

	activities, err := s.repo.ListActivities(ctx, leadID)
	if err != nil {
		return nil, err
	}

	out := make([]transport.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, toActivityResponse(a))
	}
	return out, nil
}

// record appends an activity after a successful write. The write already
// happened, so a failure here is logged rather than returned.
func (s *Service) record(ctx context.Context, leadID uuid.UUID, activityType, description string, actorID *string) {
	_, err := s.repo.AddActivity(ctx, repository.CreateActivityParams{
		LeadID:      leadID,
		Type:        activityType,
		Description: description,
		ActorID:     actorID,
	})
	if err != nil {
		s.log.WithContext(ctx).Error("lead activity append failed", "leadId", leadID, "type", activityType, "error", err)
	}
}

// applyUpdate copies every present field onto lead and returns the JSON names
// of the fields that were set, plus whether any of them feeds the score.
func (s *Service) applyUpdate(lead *repository.Lead, req transport.UpdateLeadRequest) ([]string, bool) {
	changed := make([]string, 0, 8)
	scoringTouched := false

	text := func(name string, opt transport.Optional[string], dst **string, scored bool) {
		if !opt.Set {
			return
		}
		*dst = sanitize.TextPtr(opt.Value)
		changed = append(changed, name)
		scoringTouched = scoringTouched || scored
	}

	if req.SessionID.Set {
		lead.SessionID = parseUUIDPtr(req.SessionID.Value)
		changed = append(changed, "sessionId")
	}
	text("name", req.Name, &lead.Name, false)
	if req.Email.Set {
		lead.Email = sanitize.EmailPtr(req.Email.Value)
		changed = append(changed, "email")
		scoringTouched = true
	}
	if req.Phone.Set {
		lead.Phone = s.normalizePhone(req.Phone.Value)
		changed = append(changed, "phone")
		scoringTouched = true
	}
	text("company", req.Company, &lead.Company, true)
	text("website", req.Website, &lead.Website, true)
	if req.Industry.Set {
		lead.Industry = domain.DefaultIndustry
		if v := sanitize.TextPtr(req.Industry.Value); v != nil {
			lead.Industry = *v
		}
		changed = append(changed, "industry")
	}
	text("companySize", req.CompanySize, &lead.CompanySize, false)
	if req.VehicleCount.Set {
		lead.VehicleCount = req.VehicleCount.Value
		changed = append(changed, "vehicleCount")
		scoringTouched = true
	}
	text("currentRevenue", req.CurrentRevenue, &lead.CurrentRevenue, true)
	text("currentSoftware", req.CurrentSoftware, &lead.CurrentSoftware, false)
	text("painPoints", req.PainPoints, &lead.PainPoints, true)
	text("budget", req.Budget, &lead.Budget, true)
	text("timeline", req.Timeline, &lead.Timeline, true)
	text("decisionMaker", req.DecisionMaker, &lead.DecisionMaker, true)
	if req.Source.Set && req.Source.Value != nil {
		lead.Source = *req.Source.Value
		changed = append(changed, "source")
	}
	if req.Status.Set && req.Status.Value != nil {
		lead.Status = *req.Status.Value
		changed = append(changed, "status")
	}
	if req.Score.Set && req.Score.Value != nil {
		changed = append(changed, "score")
	}
	text("assignedTo", req.AssignedTo, &lead.AssignedTo, false)
	if req.Tags.Set {
		lead.Tags = cleanTags(req.Tags.Value)
		changed = append(changed, "tags")
	}
	if req.NextFollowUp.Set {
		lead.NextFollowUp = req.NextFollowUp.Value
		changed = append(changed, "nextFollowUp")
	}
	if req.EstimatedValue.Set {
		lead.EstimatedValue = req.EstimatedValue.Value
		changed = append(changed, "estimatedValue")
	}
	text("notes", req.Notes, &lead.Notes, false)

	return changed, scoringTouched
}

func (s *Service) normalizePhone(value *string) *string {
	cleaned := sanitize.TextPtr(value)
	if cleaned == nil {
		return nil
	}
	normalized := phone.NormalizeE164(*cleaned, s.phoneRegion)
	return &normalized
}

func listParams(req transport.ListLeadsRequest) (repository.ListParams, error) {
	from, to, err := daterange.ParseOptional(req.DateFrom, req.DateTo)
	if err != nil {
		return repository.ListParams{}, err
	}

	return repository.ListParams{
		Status:     optionalString(req.Status),
		AssignedTo: optionalString(req.AssignedTo),
		Source:     optionalString(req.Source),
		MinScore:   req.MinScore,
		DateFrom:   from,
		DateTo:     to,
	}, nil
}

func signalsOf(lead repository.Lead) scoring.Signals {
	s := scoring.Signals{
		Company:        deref(lead.Company),
		Website:        deref(lead.Website),
		Phone:          deref(lead.Phone),
		Email:          deref(lead.Email),
		CurrentRevenue: deref(lead.CurrentRevenue),
		Budget:         deref(lead.Budget),
		Timeline:       deref(lead.Timeline),
		DecisionMaker:  deref(lead.DecisionMaker),
		PainPoints:     deref(lead.PainPoints),
	}
	if lead.VehicleCount != nil {
		s.VehicleCount = *lead.VehicleCount
	}
	return s
}

func cleanTags(tags *[]string) []string {
	out := make([]string, 0)
	if tags == nil {
		return out
	}
	seen := make(map[string]struct{}, len(*tags))
	for _, tag := range *tags {
		tag = sanitize.Text(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func parseUUIDPtr(value *string) *uuid.UUID {
	if value == nil {
		return nil
	}
	parsed, err := uuid.Parse(strings.TrimSpace(*value))
	if err != nil {
		return nil
	}
	return &parsed
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
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
