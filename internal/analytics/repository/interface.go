package repository

import "context"

// StatsReader runs the aggregate queries behind the analytics endpoints.
// Every method filters on created_at within the inclusive window.
type StatsReader interface {
	QuestionnaireStats(ctx context.Context, w Window) (QuestionnaireStats, error)
	DemoRequestStats(ctx context.Context, w Window) (DemoRequestStats, error)
	LeadStats(ctx context.Context, w Window) (LeadStats, error)
	FunnelCounts(ctx context.Context, w Window) (FunnelCounts, error)
}

var _ StatsReader = (*Repository)(nil)
