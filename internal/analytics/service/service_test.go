package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"framtt_backend/internal/analytics/repository"
	"framtt_backend/internal/analytics/transport"
	"framtt_backend/platform/apperr"
)

type fakeStats struct {
	q      repository.QuestionnaireStats
	d      repository.DemoRequestStats
	l      repository.LeadStats
	f      repository.FunnelCounts
	leadEr error
	calls  atomic.Int32
	last   repository.Window
}

func (f *fakeStats) QuestionnaireStats(_ context.Context, w repository.Window) (repository.QuestionnaireStats, error) {
	f.calls.Add(1)
	f.last = w
	return f.q, nil
}

func (f *fakeStats) DemoRequestStats(context.Context, repository.Window) (repository.DemoRequestStats, error) {
	f.calls.Add(1)
	return f.d, nil
}

func (f *fakeStats) LeadStats(context.Context, repository.Window) (repository.LeadStats, error) {
	f.calls.Add(1)
	return f.l, f.leadEr
}

func (f *fakeStats) FunnelCounts(_ context.Context, w repository.Window) (repository.FunnelCounts, error) {
	f.last = w
	return f.f, nil
}

func newTestService(stats *fakeStats) *Service {
	svc := New(stats)
	svc.now = func() time.Time { return time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestFormatRate(t *testing.T) {
	cases := []struct {
		num, den int
		want     string
	}{
		{0, 0, "0.00%"},
		{5, 0, "0.00%"},
		{1, 3, "33.33%"},
		{2, 3, "66.67%"},
		{10, 10, "100.00%"},
		{15, 10, "150.00%"},
	}
	for _, tc := range cases {
		if got := FormatRate(tc.num, tc.den); got != tc.want {
			t.Fatalf("FormatRate(%d, %d) = %q, want %q", tc.num, tc.den, got, tc.want)
		}
	}
}

func TestOverviewSummary(t *testing.T) {
	stats := &fakeStats{
		q: repository.QuestionnaireStats{Total: 200, MonitorRevenue: 120},
		d: repository.DemoRequestStats{Total: 30},
		l: repository.LeadStats{Total: 12, Funnel: repository.LeadFunnel{Total: 12, PipelineValue: 54000, ClosedValue: 9000}},
	}
	svc := newTestService(stats)

	got, err := svc.Overview(context.Background(), transport.RangeRequest{})
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if stats.calls.Load() != 3 {
		t.Fatalf("expected 3 aggregate calls, got %d", stats.calls.Load())
	}
	s := got.Summary
	if s.ConversionRate != "15.00%" || s.QualificationRate != "40.00%" {
		t.Fatalf("unexpected rates %q %q", s.ConversionRate, s.QualificationRate)
	}
	if s.PipelineValue != 54000 || s.ClosedValue != 9000 {
		t.Fatalf("unexpected values %+v", s)
	}
	if got.Questionnaires.Features.MonitorRevenue != 120 {
		t.Fatalf("expected feature counts to pass through, got %+v", got.Questionnaires.Features)
	}
}

func TestOverviewDefaultsToThirtyDays(t *testing.T) {
	stats := &fakeStats{}
	svc := newTestService(stats)

	got, err := svc.Overview(context.Background(), transport.RangeRequest{})
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if got.Period.To.Sub(got.Period.From) != 30*24*time.Hour {
		t.Fatalf("expected a 30 day window, got %s", got.Period.To.Sub(got.Period.From))
	}
	if got.Summary.ConversionRate != "0.00%" || got.Summary.QualificationRate != "0.00%" {
		t.Fatalf("expected zero rates on empty data, got %+v", got.Summary)
	}
}

func TestOverviewPropagatesErrors(t *testing.T) {
	cause := errors.New("statement timeout")
	svc := newTestService(&fakeStats{leadEr: cause})

	if _, err := svc.Overview(context.Background(), transport.RangeRequest{}); !errors.Is(err, cause) {
		t.Fatalf("expected %v, got %v", cause, err)
	}
}

func TestRangeIsInclusiveOfDateTo(t *testing.T) {
	stats := &fakeStats{}
	svc := newTestService(stats)

	if _, err := svc.ConversionFunnel(context.Background(), transport.RangeRequest{DateFrom: "2026-07-01", DateTo: "2026-07-15"}); err != nil {
		t.Fatalf("ConversionFunnel returned error: %v", err)
	}
	wantTo := time.Date(2026, 7, 15, 23, 59, 59, 999999999, time.UTC)
	if !stats.last.To.Equal(wantTo) {
		t.Fatalf("expected dateTo to extend to end of day, got %s", stats.last.To)
	}

	_, err := svc.Leads(context.Background(), transport.RangeRequest{DateFrom: "2026-07-20", DateTo: "2026-07-01"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for inverted range, got %v", err)
	}
}

func TestConversionFunnel(t *testing.T) {
	svc := newTestService(&fakeStats{f: repository.FunnelCounts{Questionnaires: 100, DemoRequests: 25, QualifiedLeads: 10, ClosedWon: 0}})

	got, err := svc.ConversionFunnel(context.Background(), transport.RangeRequest{})
	if err != nil {
		t.Fatalf("ConversionFunnel returned error: %v", err)
	}
	if len(got.Funnel) != 4 || got.Funnel[3].Stage != StageClosedWon {
		t.Fatalf("unexpected stages %+v", got.Funnel)
	}

	want := []transport.Conversion{
		{From: StageQuestionnaires, To: StageDemoRequests, Rate: "25.00%", FromCount: 100, ToCount: 25},
		{From: StageDemoRequests, To: StageQualifiedLeads, Rate: "40.00%", FromCount: 25, ToCount: 10},
		{From: StageQualifiedLeads, To: StageClosedWon, Rate: "0.00%", FromCount: 10, ToCount: 0},
	}
	if len(got.Conversions) != len(want) {
		t.Fatalf("expected %d conversions, got %d", len(want), len(got.Conversions))
	}
	for i := range want {
		if got.Conversions[i] != want[i] {
			t.Fatalf("conversion %d: expected %+v, got %+v", i, want[i], got.Conversions[i])
		}
	}
}

func TestConversionsFromEmptyStage(t *testing.T) {
	got := Conversions(BuildStages(repository.FunnelCounts{}))
	for _, c := range got {
		if c.Rate != "0.00%" {
			t.Fatalf("expected 0.00%% on empty funnel, got %q", c.Rate)
		}
	}
	if len(Conversions(nil)) != 0 {
		t.Fatal("expected no conversions without stages")
	}
}

func TestDailyCountsFormatDates(t *testing.T) {
	svc := newTestService(&fakeStats{d: repository.DemoRequestStats{
		Total: 3,
		Daily: []repository.DailyCount{{Date: time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC), Count: 3}},
	}})

	got, err := svc.DemoRequests(context.Background(), transport.RangeRequest{})
	if err != nil {
		t.Fatalf("DemoRequests returned error: %v", err)
	}
	if len(got.DailyRequests) != 1 || got.DailyRequests[0].Date != "2026-07-30" {
		t.Fatalf("unexpected daily requests %+v", got.DailyRequests)
	}
}
