// Package service assembles the analytics views from the aggregate queries.
package service

import (
	"context"
	"time"

	"framtt_backend/internal/analytics/repository"
	"framtt_backend/internal/analytics/transport"
	"framtt_backend/platform/daterange"

	"golang.org/x/sync/errgroup"
)

// Funnel stage names, in order.
const (
	StageQuestionnaires = "Questionnaires"
	StageDemoRequests   = "Demo Requests"
	StageQualifiedLeads = "Qualified Leads"
	StageClosedWon      = "Closed Won"
)

const dayLayout = "2006-01-02"

type Service struct {
	repo repository.StatsReader
	now  func() time.Time
}

func New(repo repository.StatsReader) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Overview runs the three per-entity aggregates concurrently and derives
// the headline rates from them.
func (s *Service) Overview(ctx context.Context, req transport.RangeRequest) (transport.Overview, error) {
	period, err := s.period(req)
	if err != nil {
		return transport.Overview{}, err
	}
	w := window(period)

	var (
		qs repository.QuestionnaireStats
		ds repository.DemoRequestStats
		ls repository.LeadStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		qs, err = s.repo.QuestionnaireStats(gctx, w)
		return err
	})
	g.Go(func() error {
		var err error
		ds, err = s.repo.DemoRequestStats(gctx, w)
		return err
	})
	g.Go(func() error {
		var err error
		ls, err = s.repo.LeadStats(gctx, w)
		return err
	})
	if err := g.Wait(); err != nil {
		return transport.Overview{}, err
	}

	return transport.Overview{
		Period: period,
		Summary: transport.Summary{
			TotalQuestionnaires: qs.Total,
			TotalDemoRequests:   ds.Total,
			TotalLeads:          ls.Total,
			ConversionRate:      FormatRate(ds.Total, qs.Total),
			QualificationRate:   FormatRate(ls.Total, ds.Total),
			PipelineValue:       ls.Funnel.PipelineValue,
			ClosedValue:         ls.Funnel.ClosedValue,
		},
		Questionnaires: toQuestionnaireAnalytics(period, qs),
		DemoRequests:   toDemoRequestAnalytics(period, ds),
		Leads:          toLeadAnalytics(period, ls),
	}, nil
}

func (s *Service) Questionnaires(ctx context.Context, req transport.RangeRequest) (transport.QuestionnaireAnalytics, error) {
	period, err := s.period(req)
	if err != nil {
		return transport.QuestionnaireAnalytics{}, err
	}
	stats, err := s.repo.QuestionnaireStats(ctx, window(period))
	if err != nil {
		return transport.QuestionnaireAnalytics{}, err
	}
	return toQuestionnaireAnalytics(period, stats), nil
}

func (s *Service) DemoRequests(ctx context.Context, req transport.RangeRequest) (transport.DemoRequestAnalytics, error) {
	period, err := s.period(req)
	if err != nil {
		return transport.DemoRequestAnalytics{}, err
	}
	stats, err := s.repo.DemoRequestStats(ctx, window(period))
	if err != nil {
		return transport.DemoRequestAnalytics{}, err
	}
	return toDemoRequestAnalytics(period, stats), nil
}

func (s *Service) Leads(ctx context.Context, req transport.RangeRequest) (transport.LeadAnalytics, error) {
	period, err := s.period(req)
	if err != nil {
		return transport.LeadAnalytics{}, err
	}
	stats, err := s.repo.LeadStats(ctx, window(period))
	if err != nil {
		return transport.LeadAnalytics{}, err
	}
	return toLeadAnalytics(period, stats), nil
}

// ConversionFunnel reports the four stages and the rate between each pair
// of consecutive stages.
func (s *Service) ConversionFunnel(ctx context.Context, req transport.RangeRequest) (transport.ConversionFunnel, error) {
	period, err := s.period(req)
	if err != nil {
		return transport.ConversionFunnel{}, err
	}
	counts, err := s.repo.FunnelCounts(ctx, window(period))
	if err != nil {
		return transport.ConversionFunnel{}, err
	}

	stages := BuildStages(counts)
	return transport.ConversionFunnel{
		Period:      period,
		Funnel:      stages,
		Conversions: Conversions(stages),
	}, nil
}

// BuildStages orders the funnel counts into stages.
func BuildStages(c repository.FunnelCounts) []transport.FunnelStage {
	return []transport.FunnelStage{
		{Stage: StageQuestionnaires, Count: c.Questionnaires, Order: 0},
		{Stage: StageDemoRequests, Count: c.DemoRequests, Order: 1},
		{Stage: StageQualifiedLeads, Count: c.QualifiedLeads, Order: 2},
		{Stage: StageClosedWon, Count: c.ClosedWon, Order: 3},
	}
}

// Conversions pairs each stage with the next one.
func Conversions(stages []transport.FunnelStage) []transport.Conversion {
	if len(stages) < 2 {
		return []transport.Conversion{}
	}
	out := make([]transport.Conversion, 0, len(stages)-1)
	for i := 0; i < len(stages)-1; i++ {
		from, to := stages[i], stages[i+1]
		out = append(out, transport.Conversion{
			From:      from.Stage,
			To:        to.Stage,
			Rate:      FormatRate(to.Count, from.Count),
			FromCount: from.Count,
			ToCount:   to.Count,
		})
	}
	return out
}

func (s *Service) period(req transport.RangeRequest) (daterange.Range, error) {
	return daterange.Parse(req.DateFrom, req.DateTo, s.now(), daterange.DefaultWindow)
}

func window(r daterange.Range) repository.Window {
	return repository.Window{From: r.From, To: r.To}
}

func toQuestionnaireAnalytics(period daterange.Range, s repository.QuestionnaireStats) transport.QuestionnaireAnalytics {
	return transport.QuestionnaireAnalytics{
		Period:         period,
		TotalResponses: s.Total,
		Features: transport.FeaturePopularity{
			MonitorRevenue:       s.MonitorRevenue,
			SeamlessCustomerChat: s.CustomerChat,
			TrackVehiclesLive:    s.VehicleTracking,
			UseWhatsApp:          s.WhatsApp,
			SpendOnMarketing:     s.Marketing,
			UseRentalSoftware:    s.RentalSoftware,
		},
		DailyResponses: dailyOf(s.Daily),
	}
}

func toDemoRequestAnalytics(period daterange.Range, s repository.DemoRequestStats) transport.DemoRequestAnalytics {
	return transport.DemoRequestAnalytics{
		Period:        period,
		TotalRequests: s.Total,
		ByStatus:      labelsOf(s.ByStatus),
		ByType:        labelsOf(s.ByType),
		DailyRequests: dailyOf(s.Daily),
	}
}

func toLeadAnalytics(period daterange.Range, s repository.LeadStats) transport.LeadAnalytics {
	byStatus := make([]transport.StatusScore, 0, len(s.ByStatus))
	for _, st := range s.ByStatus {
		byStatus = append(byStatus, transport.StatusScore{Status: st.Status, Count: st.Count, AvgScore: st.AvgScore})
	}
	return transport.LeadAnalytics{
		Period:     period,
		TotalLeads: s.Total,
		ByStatus:   byStatus,
		BySource:   labelsOf(s.BySource),
		Funnel: transport.LeadFunnel{
			TotalLeads:    s.Funnel.Total,
			Qualified:     s.Funnel.Qualified,
			Proposal:      s.Funnel.Proposal,
			ClosedWon:     s.Funnel.ClosedWon,
			PipelineValue: s.Funnel.PipelineValue,
			ClosedValue:   s.Funnel.ClosedValue,
		},
	}
}

func dailyOf(in []repository.DailyCount) []transport.DailyCount {
	out := make([]transport.DailyCount, 0, len(in))
	for _, d := range in {
		out = append(out, transport.DailyCount{Date: d.Date.Format(dayLayout), Count: d.Count})
	}
	return out
}

func labelsOf(in []repository.LabelCount) []transport.LabelCount {
	out := make([]transport.LabelCount, 0, len(in))
	for _, l := range in {
		out = append(out, transport.LabelCount{Label: l.Label, Count: l.Count})
	}
	return out
}
