package repository

import (
	"context"
	"fmt"
	"time"

	"framtt_backend/internal/leads/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Window is an inclusive created_at range.
type Window struct {
	From time.Time
	To   time.Time
}

type DailyCount struct {
	Date  time.Time
	Count int
}

type LabelCount struct {
	Label string
	Count int
}

type QuestionnaireStats struct {
	Total           int
	MonitorRevenue  int
	CustomerChat    int
	VehicleTracking int
	WhatsApp        int
	Marketing       int
	RentalSoftware  int
	Daily           []DailyCount
}

type DemoRequestStats struct {
	Total    int
	ByStatus []LabelCount
	ByType   []LabelCount
	Daily    []DailyCount
}

type StatusScore struct {
	Status   string
	Count    int
	AvgScore float64
}

type LeadFunnel struct {
	Total         int
	Qualified     int
	Proposal      int
	ClosedWon     int
	PipelineValue float64
	ClosedValue   float64
}

type LeadStats struct {
	Total    int
	ByStatus []StatusScore
	BySource []LabelCount
	Funnel   LeadFunnel
}

// FunnelCounts are the four stage sizes of the conversion funnel.
type FunnelCounts struct {
	Questionnaires int
	DemoRequests   int
	QualifiedLeads int
	ClosedWon      int
}

const windowClause = "created_at BETWEEN $1 AND $2"

func (r *Repository) QuestionnaireStats(ctx context.Context, w Window) (QuestionnaireStats, error) {
	var stats QuestionnaireStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE monitor_revenue),
			COUNT(*) FILTER (WHERE seamless_customer_chat),
			COUNT(*) FILTER (WHERE track_vehicles_live),
			COUNT(*) FILTER (WHERE use_whatsapp),
			COUNT(*) FILTER (WHERE spend_on_marketing),
			COUNT(*) FILTER (WHERE use_rental_software)
		FROM questionnaires
		WHERE `+windowClause, w.From, w.To,
	).Scan(&stats.Total, &stats.MonitorRevenue, &stats.CustomerChat, &stats.VehicleTracking,
		&stats.WhatsApp, &stats.Marketing, &stats.RentalSoftware)
	if err != nil {
		return QuestionnaireStats{}, fmt.Errorf("questionnaire stats: %w", err)
	}

	stats.Daily, err = r.daily(ctx, "questionnaires", w)
	if err != nil {
		return QuestionnaireStats{}, err
	}
	return stats, nil
}

func (r *Repository) DemoRequestStats(ctx context.Context, w Window) (DemoRequestStats, error) {
	var stats DemoRequestStats
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM demo_requests WHERE `+windowClause, w.From, w.To).Scan(&stats.Total); err != nil {
		return DemoRequestStats{}, fmt.Errorf("count demo requests: %w", err)
	}

	var err error
	if stats.ByStatus, err = r.groupCount(ctx, "demo_requests", "status", w); err != nil {
		return DemoRequestStats{}, err
	}
	if stats.ByType, err = r.groupCount(ctx, "demo_requests", "type", w); err != nil {
		return DemoRequestStats{}, err
	}
	if stats.Daily, err = r.daily(ctx, "demo_requests", w); err != nil {
		return DemoRequestStats{}, err
	}
	return stats, nil
}

func (r *Repository) LeadStats(ctx context.Context, w Window) (LeadStats, error) {
	var stats LeadStats
	f := &stats.Funnel
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = ANY($3)),
			COUNT(*) FILTER (WHERE status = ANY($4)),
			COUNT(*) FILTER (WHERE status = $5),
			COALESCE(SUM(estimated_value), 0)::float8,
			COALESCE(SUM(estimated_value) FILTER (WHERE status = $5), 0)::float8
		FROM leads
		WHERE `+windowClause,
		w.From, w.To, domain.QualifiedStatuses, domain.ProposalStatuses, domain.StatusClosedWon,
	).Scan(&f.Total, &f.Qualified, &f.Proposal, &f.ClosedWon, &f.PipelineValue, &f.ClosedValue)
	if err != nil {
		return LeadStats{}, fmt.Errorf("lead funnel stats: %w", err)
	}
	stats.Total = f.Total

	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*), COALESCE(AVG(score), 0)::float8
		FROM leads
		WHERE `+windowClause+`
		GROUP BY status
		ORDER BY status`, w.From, w.To)
	if err != nil {
		return LeadStats{}, fmt.Errorf("lead status stats: %w", err)
	}
	stats.ByStatus, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (StatusScore, error) {
		var s StatusScore
		err := row.Scan(&s.Status, &s.Count, &s.AvgScore)
		return s, err
	})
	if err != nil {
		return LeadStats{}, fmt.Errorf("scan lead status stats: %w", err)
	}

	if stats.BySource, err = r.groupCount(ctx, "leads", "source", w); err != nil {
		return LeadStats{}, err
	}
	return stats, nil
}

func (r *Repository) FunnelCounts(ctx context.Context, w Window) (FunnelCounts, error) {
	var counts FunnelCounts
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM questionnaires WHERE `+windowClause+`),
			(SELECT COUNT(*) FROM demo_requests WHERE `+windowClause+`),
			(SELECT COUNT(*) FROM leads WHERE `+windowClause+` AND status = ANY($3)),
			(SELECT COUNT(*) FROM leads WHERE `+windowClause+` AND status = $4)`,
		w.From, w.To, domain.QualifiedStatuses, domain.StatusClosedWon,
	).Scan(&counts.Questionnaires, &counts.DemoRequests, &counts.QualifiedLeads, &counts.ClosedWon)
	if err != nil {
		return FunnelCounts{}, fmt.Errorf("funnel counts: %w", err)
	}
	return counts, nil
}

// groupCount and daily interpolate table and column names; callers pass
// constants only.
func (r *Repository) groupCount(ctx context.Context, table, column string, w Window) ([]LabelCount, error) {
	query := fmt.Sprintf(`SELECT %[2]s, COUNT(*) FROM %[1]s WHERE %[3]s GROUP BY %[2]s ORDER BY %[2]s`, table, column, windowClause)
	rows, err := r.pool.Query(ctx, query, w.From, w.To)
	if err != nil {
		return nil, fmt.Errorf("group %s by %s: %w", table, column, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (LabelCount, error) {
		var lc LabelCount
		err := row.Scan(&lc.Label, &lc.Count)
		return lc, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s by %s: %w", table, column, err)
	}
	return out, nil
}

func (r *Repository) daily(ctx context.Context, table string, w Window) ([]DailyCount, error) {
	query := fmt.Sprintf(`
		SELECT (created_at AT TIME ZONE 'UTC')::date AS day, COUNT(*)
		FROM %s
		WHERE %s
		GROUP BY day
		ORDER BY day DESC`, table, windowClause)
	rows, err := r.pool.Query(ctx, query, w.From, w.To)
	if err != nil {
		return nil, fmt.Errorf("daily %s: %w", table, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (DailyCount, error) {
		var dc DailyCount
		err := row.Scan(&dc.Date, &dc.Count)
		return dc, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan daily %s: %w", table, err)
	}
	return out, nil
}
