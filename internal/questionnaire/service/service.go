// Package service holds the questionnaire business logic.
package service

import (
	"context"

	"framtt_backend/internal/events"
	"framtt_backend/internal/questionnaire/recommend"
	"framtt_backend/internal/questionnaire/repository"
	"framtt_backend/internal/questionnaire/transport"
	"framtt_backend/platform/apperr"
	"framtt_backend/platform/daterange"
	"framtt_backend/platform/httpkit"
	"framtt_backend/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo     repository.QuestionnaireRepository
	eventBus events.Bus
	log      *logger.Logger
}

func New(repo repository.QuestionnaireRepository, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, eventBus: eventBus, log: log}
}

// Submit stores the answers and returns the recommendations for them.
// A missing session id is generated.
func (s *Service) Submit(ctx context.Context, req transport.SubmitRequest, meta httpkit.ClientMeta) (transport.SubmitResponse, error) {
	sessionID := uuid.New()
	if req.SessionID != nil && *req.SessionID != "" {
		parsed, err := uuid.Parse(*req.SessionID)
		if err != nil {
			return transport.SubmitResponse{}, apperr.Validation("sessionId must be a valid UUID")
		}
		sessionID = parsed
	}

	saved, err := s.repo.Create(ctx, repository.Questionnaire{
		SessionID:            sessionID,
		MonitorRevenue:       boolOf(req.MonitorRevenue),
		SeamlessCustomerChat: boolOf(req.SeamlessCustomerChat),
		TrackVehiclesLive:    boolOf(req.TrackVehiclesLive),
		UseWhatsApp:          boolOf(req.UseWhatsApp),
		SpendOnMarketing:     boolOf(req.SpendOnMarketing),
		UseRentalSoftware:    boolOf(req.UseRentalSoftware),
		IPAddress:            meta.IPAddress,
		UserAgent:            meta.UserAgent,
		Referrer:             meta.Referrer,
	})
	if err != nil {
		return transport.SubmitResponse{}, err
	}

	solutions := recommend.Solutions(answersOf(saved))
	recommended := recommend.RecommendedCount(solutions)

	httpkit.QuestionnairesSubmitted.Inc()
	s.log.WithContext(ctx).Info("questionnaire submitted", "id", saved.ID, "sessionId", saved.SessionID, "recommended", recommended)
	s.eventBus.Publish(ctx, events.QuestionnaireSubmitted{
		BaseEvent:        events.NewBaseEvent(),
		QuestionnaireID:  saved.ID,
		SessionID:        saved.SessionID,
		RecommendedCount: recommended,
	})

	return transport.SubmitResponse{
		SessionID:        saved.SessionID,
		Solutions:        solutions,
		TotalSolutions:   len(solutions),
		RecommendedCount: recommended,
	}, nil
}

// Solutions recomputes the recommendations for the latest submission of a
// session.
func (s *Service) Solutions(ctx context.Context, sessionID uuid.UUID) (transport.SolutionsResponse, error) {
	q, err := s.repo.LatestBySession(ctx, sessionID)
	if err != nil {
		return transport.SolutionsResponse{}, err
	}

	solutions := recommend.Solutions(answersOf(q))
	return transport.SolutionsResponse{
		SessionID:        q.SessionID,
		Solutions:        solutions,
		TotalSolutions:   len(solutions),
		RecommendedCount: recommend.RecommendedCount(solutions),
		CompletedAt:      q.CompletedAt,
	}, nil
}

func (s *Service) Answers(ctx context.Context, sessionID uuid.UUID) (transport.AnswersResponse, error) {
	q, err := s.repo.LatestBySession(ctx, sessionID)
	if err != nil {
		return transport.AnswersResponse{}, err
	}
	return toAnswersResponse(q), nil
}

func (s *Service) List(ctx context.Context, req transport.ListRequest) (transport.ListResponse, error) {
	from, to, err := daterange.ParseOptional(req.DateFrom, req.DateTo)
	if err != nil {
		return transport.ListResponse{}, err
	}

	page, limit, offset := httpkit.ClampPage(req.Page, req.Limit)
	items, total, err := s.repo.List(ctx, repository.ListParams{
		DateFrom: from,
		DateTo:   to,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return transport.ListResponse{}, err
	}

	data := make([]transport.AdminQuestionnaireResponse, 0, len(items))
	for _, q := range items {
		data = append(data, transport.AdminQuestionnaireResponse{
			ID:              q.ID,
			AnswersResponse: toAnswersResponse(q),
			IPAddress:       q.IPAddress,
			UserAgent:       q.UserAgent,
			Referrer:        q.Referrer,
			CreatedAt:       q.CreatedAt,
		})
	}

	return transport.ListResponse{
		Data:       data,
		Pagination: httpkit.NewPagination(page, limit, total),
	}, nil
}

func answersOf(q repository.Questionnaire) recommend.Answers {
	return recommend.Answers{
		MonitorRevenue:       q.MonitorRevenue,
		SeamlessCustomerChat: q.SeamlessCustomerChat,
		TrackVehiclesLive:    q.TrackVehiclesLive,
		UseWhatsApp:          q.UseWhatsApp,
		SpendOnMarketing:     q.SpendOnMarketing,
		UseRentalSoftware:    q.UseRentalSoftware,
	}
}

func toAnswersResponse(q repository.Questionnaire) transport.AnswersResponse {
	return transport.AnswersResponse{
		SessionID:            q.SessionID,
		MonitorRevenue:       q.MonitorRevenue,
		SeamlessCustomerChat: q.SeamlessCustomerChat,
		TrackVehiclesLive:    q.TrackVehiclesLive,
		UseWhatsApp:          q.UseWhatsApp,
		SpendOnMarketing:     q.SpendOnMarketing,
		UseRentalSoftware:    q.UseRentalSoftware,
		CompletedAt:          q.CompletedAt,
	}
}

func boolOf(v *bool) bool {
	return v != nil && *v
}
