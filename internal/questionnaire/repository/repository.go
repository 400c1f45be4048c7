package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"framtt_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const msgQuestionnaireNotFound = "questionnaire not found"

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Questionnaire struct {
	ID                   uuid.UUID
	SessionID            uuid.UUID
	MonitorRevenue       bool
	SeamlessCustomerChat bool
	TrackVehiclesLive    bool
	UseWhatsApp          bool
	SpendOnMarketing     bool
	UseRentalSoftware    bool
	IPAddress            *string
	UserAgent            *string
	Referrer             *string
	CompletedAt          time.Time
	CreatedAt            time.Time
}

type ListParams struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Offset   int
	Limit    int
}

const questionnaireColumns = `id, session_id, monitor_revenue, seamless_customer_chat, track_vehicles_live,
	use_whatsapp, spend_on_marketing, use_rental_software, ip_address, user_agent, referrer,
	completed_at, created_at`

func scanQuestionnaire(row pgx.Row) (Questionnaire, error) {
	var q Questionnaire
	err := row.Scan(
		&q.ID, &q.SessionID, &q.MonitorRevenue, &q.SeamlessCustomerChat, &q.TrackVehiclesLive,
		&q.UseWhatsApp, &q.SpendOnMarketing, &q.UseRentalSoftware, &q.IPAddress, &q.UserAgent, &q.Referrer,
		&q.CompletedAt, &q.CreatedAt,
	)
	return q, err
}

func (r *Repository) Create(ctx context.Context, q Questionnaire) (Questionnaire, error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.CompletedAt.IsZero() {
		q.CompletedAt = time.Now().UTC()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO questionnaires (
			id, session_id, monitor_revenue, seamless_customer_chat, track_vehicles_live,
			use_whatsapp, spend_on_marketing, use_rental_software, ip_address, user_agent, referrer, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+questionnaireColumns,
		q.ID, q.SessionID, q.MonitorRevenue, q.SeamlessCustomerChat, q.TrackVehiclesLive,
		q.UseWhatsApp, q.SpendOnMarketing, q.UseRentalSoftware, q.IPAddress, q.UserAgent, q.Referrer, q.CompletedAt,
	)

	created, err := scanQuestionnaire(row)
	if err != nil {
		return Questionnaire{}, fmt.Errorf("create questionnaire: %w", err)
	}
	return created, nil
}

// LatestBySession returns the most recent submission for a session.
func (r *Repository) LatestBySession(ctx context.Context, sessionID uuid.UUID) (Questionnaire, error) {
	q, err := scanQuestionnaire(r.pool.QueryRow(ctx, `
		SELECT `+questionnaireColumns+`
		FROM questionnaires
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Questionnaire{}, apperr.NotFound(msgQuestionnaireNotFound)
		}
		return Questionnaire{}, fmt.Errorf("get questionnaire by session: %w", err)
	}
	return q, nil
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]Questionnaire, int, error) {
	whereClause, args, argIdx := buildListWhere(params)

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM questionnaires WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count questionnaires: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM questionnaires
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, questionnaireColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list questionnaires: %w", err)
	}
	defer rows.Close()

	items := make([]Questionnaire, 0)
	for rows.Next() {
		q, err := scanQuestionnaire(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan questionnaire: %w", err)
		}
		items = append(items, q)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}

	return items, total, nil
}

func buildListWhere(params ListParams) (string, []interface{}, int) {
	whereClauses := []string{"TRUE"}
	args := make([]interface{}, 0, 2)
	argIdx := 1

	if params.DateFrom != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *params.DateFrom)
		argIdx++
	}
	if params.DateTo != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("created_at <= $%d", argIdx))
		args = append(args, *params.DateTo)
		argIdx++
	}

	return strings.Join(whereClauses, " AND "), args, argIdx
}
