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

const msgDemoRequestNotFound = "demo request not found"

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type DemoRequest struct {
	ID                uuid.UUID
	SessionID         *uuid.UUID
	Type              string
	ModuleID          *string
	Name              *string
	Email             *string
	Company           *string
	Phone             *string
	VehicleCount      *int
	CurrentChallenges *string
	Timeline          *string
	PreferredContact  string
	BestTime          *string
	Message           *string
	IPAddress         *string
	UserAgent         *string
	Referrer          *string
	Status            string
	Priority          string
	AssignedTo        *string
	FollowUpDate      *time.Time
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type ListParams struct {
	Status     *string
	Type       *string
	Priority   *string
	AssignedTo *string
	DateFrom   *time.Time
	DateTo     *time.Time
	Offset     int
	Limit      int
}

// UpdateStatusParams changes the routing state. Nil Notes or AssignedTo keep
// the stored value.
type UpdateStatusParams struct {
	ID         uuid.UUID
	Status     string
	Notes      *string
	AssignedTo *string
}

const demoColumns = `id, session_id, type, module_id, name, email, company, phone, vehicle_count,
	current_challenges, timeline, preferred_contact, best_time, message, ip_address, user_agent,
	referrer, status, priority, assigned_to, follow_up_date, notes, created_at, updated_at`

func scanDemoRequest(row pgx.Row) (DemoRequest, error) {
	var d DemoRequest
	err := row.Scan(
		&d.ID, &d.SessionID, &d.Type, &d.ModuleID, &d.Name, &d.Email, &d.Company, &d.Phone, &d.VehicleCount,
		&d.CurrentChallenges, &d.Timeline, &d.PreferredContact, &d.BestTime, &d.Message, &d.IPAddress, &d.UserAgent,
		&d.Referrer, &d.Status, &d.Priority, &d.AssignedTo, &d.FollowUpDate, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

func (r *Repository) Create(ctx context.Context, d DemoRequest) (DemoRequest, error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO demo_requests (
			id, session_id, type, module_id, name, email, company, phone, vehicle_count,
			current_challenges, timeline, preferred_contact, best_time, message, ip_address, user_agent,
			referrer, status, priority, assigned_to, follow_up_date, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING `+demoColumns,
		d.ID, d.SessionID, d.Type, d.ModuleID, d.Name, d.Email, d.Company, d.Phone, d.VehicleCount,
		d.CurrentChallenges, d.Timeline, d.PreferredContact, d.BestTime, d.Message, d.IPAddress, d.UserAgent,
		d.Referrer, d.Status, d.Priority, d.AssignedTo, d.FollowUpDate, d.Notes,
	)

	created, err := scanDemoRequest(row)
	if err != nil {
		return DemoRequest{}, fmt.Errorf("create demo request: %w", err)
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (DemoRequest, error) {
	d, err := scanDemoRequest(r.pool.QueryRow(ctx, `SELECT `+demoColumns+` FROM demo_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DemoRequest{}, apperr.NotFound(msgDemoRequestNotFound)
		}
		return DemoRequest{}, fmt.Errorf("get demo request: %w", err)
	}
	return d, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, params UpdateStatusParams) (DemoRequest, error) {
	d, err := scanDemoRequest(r.pool.QueryRow(ctx, `
		UPDATE demo_requests SET
			status = $2,
			notes = COALESCE($3, notes),
			assigned_to = COALESCE($4, assigned_to),
			updated_at = now()
		WHERE id = $1
		RETURNING `+demoColumns,
		params.ID, params.Status, params.Notes, params.AssignedTo,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DemoRequest{}, apperr.NotFound(msgDemoRequestNotFound)
		}
		return DemoRequest{}, fmt.Errorf("update demo request status: %w", err)
	}
	return d, nil
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]DemoRequest, int, error) {
	whereClause, args, argIdx := buildListWhere(params)

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM demo_requests WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count demo requests: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM demo_requests
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, demoColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list demo requests: %w", err)
	}
	defer rows.Close()

	items := make([]DemoRequest, 0)
	for rows.Next() {
		d, err := scanDemoRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan demo request: %w", err)
		}
		items = append(items, d)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}

	return items, total, nil
}

func buildListWhere(params ListParams) (string, []interface{}, int) {
	whereClauses := []string{"TRUE"}
	args := make([]interface{}, 0, 6)
	argIdx := 1

	add := func(clause string, value interface{}) {
		whereClauses = append(whereClauses, fmt.Sprintf(clause, argIdx))
		args = append(args, value)
		argIdx++
	}

	if params.Status != nil {
		add("status = $%d", *params.Status)
	}
	if params.Type != nil {
		add("type = $%d", *params.Type)
	}
	if params.Priority != nil {
		add("priority = $%d", *params.Priority)
	}
	if params.AssignedTo != nil {
		add("assigned_to = $%d", *params.AssignedTo)
	}
	if params.DateFrom != nil {
		add("created_at >= $%d", *params.DateFrom)
	}
	if params.DateTo != nil {
		add("created_at <= $%d", *params.DateTo)
	}

	return strings.Join(whereClauses, " AND "), args, argIdx
}
