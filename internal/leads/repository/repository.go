package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"framtt_backend/platform/apperr"
	"framtt_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	msgLeadNotFound   = "lead not found"
	msgDuplicateEmail = "a lead with this email already exists"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Lead struct {
	ID              uuid.UUID
	SessionID       *uuid.UUID
	DemoRequestID   *uuid.UUID
	Name            *string
	Email           *string
	Phone           *string
	Company         *string
	Website         *string
	Industry        string
	CompanySize     *string
	VehicleCount    *int
	CurrentRevenue  *string
	CurrentSoftware *string
	PainPoints      *string
	Budget          *string
	Timeline        *string
	DecisionMaker   *string
	Source          string
	Status          string
	Score           int
	AssignedTo      *string
	Tags            []string
	LastContactDate *time.Time
	NextFollowUp    *time.Time
	EstimatedValue  *float64
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ListParams struct {
	Status     *string
	AssignedTo *string
	Source     *string
	MinScore   *int
	DateFrom   *time.Time
	DateTo     *time.Time
	Offset     int
	Limit      int
}

const leadColumns = `id, session_id, demo_request_id, name, email, phone, company, website,
	industry, company_size, vehicle_count, current_revenue, current_software, pain_points,
	budget, timeline, decision_maker, source, status, score, assigned_to, tags,
	last_contact_date, next_follow_up, estimated_value::float8, notes, created_at, updated_at`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.SessionID, &lead.DemoRequestID, &lead.Name, &lead.Email, &lead.Phone, &lead.Company, &lead.Website,
		&lead.Industry, &lead.CompanySize, &lead.VehicleCount, &lead.CurrentRevenue, &lead.CurrentSoftware, &lead.PainPoints,
		&lead.Budget, &lead.Timeline, &lead.DecisionMaker, &lead.Source, &lead.Status, &lead.Score, &lead.AssignedTo, &lead.Tags,
		&lead.LastContactDate, &lead.NextFollowUp, &lead.EstimatedValue, &lead.Notes, &lead.CreatedAt, &lead.UpdatedAt,
	)
	return lead, err
}

func (r *Repository) Create(ctx context.Context, lead Lead) (Lead, error) {
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	if lead.Tags == nil {
		lead.Tags = []string{}
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (
			id, session_id, demo_request_id, name, email, phone, company, website,
			industry, company_size, vehicle_count, current_revenue, current_software, pain_points,
			budget, timeline, decision_maker, source, status, score, assigned_to, tags,
			last_contact_date, next_follow_up, estimated_value, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
		RETURNING `+leadColumns,
		lead.ID, lead.SessionID, lead.DemoRequestID, lead.Name, lead.Email, lead.Phone, lead.Company, lead.Website,
		lead.Industry, lead.CompanySize, lead.VehicleCount, lead.CurrentRevenue, lead.CurrentSoftware, lead.PainPoints,
		lead.Budget, lead.Timeline, lead.DecisionMaker, lead.Source, lead.Status, lead.Score, lead.AssignedTo, lead.Tags,
		lead.LastContactDate, lead.NextFollowUp, lead.EstimatedValue, lead.Notes,
	)

	created, err := scanLead(row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Lead{}, apperr.Wrap(apperr.KindConflict, msgDuplicateEmail, err)
		}
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}
	return created, nil
}

func (r *Repository) Save(ctx context.Context, lead Lead) (Lead, error) {
	if lead.Tags == nil {
		lead.Tags = []string{}
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE leads SET
			session_id = $2, demo_request_id = $3, name = $4, email = $5, phone = $6, company = $7, website = $8,
			industry = $9, company_size = $10, vehicle_count = $11, current_revenue = $12, current_software = $13,
			pain_points = $14, budget = $15, timeline = $16, decision_maker = $17, source = $18, status = $19,
			score = $20, assigned_to = $21, tags = $22, last_contact_date = $23, next_follow_up = $24,
			estimated_value = $25, notes = $26, updated_at = now()
		WHERE id = $1
		RETURNING `+leadColumns,
		lead.ID, lead.SessionID, lead.DemoRequestID, lead.Name, lead.Email, lead.Phone, lead.Company, lead.Website,
		lead.Industry, lead.CompanySize, lead.VehicleCount, lead.CurrentRevenue, lead.CurrentSoftware,
		lead.PainPoints, lead.Budget, lead.Timeline, lead.DecisionMaker, lead.Source, lead.Status,
		lead.Score, lead.AssignedTo, lead.Tags, lead.LastContactDate, lead.NextFollowUp,
		lead.EstimatedValue, lead.Notes,
	)

	saved, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(msgLeadNotFound)
		}
		if db.IsUniqueViolation(err) {
			return Lead{}, apperr.Wrap(apperr.KindConflict, msgDuplicateEmail, err)
		}
		return Lead{}, fmt.Errorf("save lead: %w", err)
	}
	return saved, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(msgLeadNotFound)
		}
		return Lead{}, fmt.Errorf("get lead: %w", err)
	}
	return lead, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE lower(email) = lower($1)`, strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(msgLeadNotFound)
		}
		return Lead{}, fmt.Errorf("get lead by email: %w", err)
	}
	return lead, nil
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	whereClause, args, argIdx := buildLeadListWhere(params)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM leads WHERE %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM leads
		WHERE %s
		ORDER BY score DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, leadColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}

	return leads, total, nil
}

func (r *Repository) Stream(ctx context.Context, params ListParams, fn func(Lead) error) error {
	whereClause, args, _ := buildLeadListWhere(params)
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE %s ORDER BY score DESC, created_at DESC`, leadColumns, whereClause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("stream leads: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return fmt.Errorf("scan lead: %w", err)
		}
		if err := fn(lead); err != nil {
			return err
		}
	}
	return rows.Err()
}

func buildLeadListWhere(params ListParams) (string, []interface{}, int) {
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
	if params.AssignedTo != nil {
		add("assigned_to = $%d", *params.AssignedTo)
	}
	if params.Source != nil {
		add("source = $%d", *params.Source)
	}
	if params.MinScore != nil {
		add("score >= $%d", *params.MinScore)
	}
	if params.DateFrom != nil {
		add("created_at >= $%d", *params.DateFrom)
	}
	if params.DateTo != nil {
		add("created_at <= $%d", *params.DateTo)
	}

	return strings.Join(whereClauses, " AND "), args, argIdx
}
