package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"framtt_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Activity struct {
	ID          uuid.UUID
	LeadID      uuid.UUID
	Type        string
	Description string
	ActorID     *string
	CreatedAt   time.Time
}

type CreateActivityParams struct {
	LeadID      uuid.UUID
	Type        string
	Description string
	ActorID     *string
}

func (r *Repository) AddActivity(ctx context.Context, params CreateActivityParams) (Activity, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Activity{}, fmt.Errorf("begin activity tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var lastContact time.Time
	err = tx.QueryRow(ctx, `
		UPDATE leads SET last_contact_date = now(), updated_at = now()
		WHERE id = $1
		RETURNING last_contact_date
	`, params.LeadID).Scan(&lastContact)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Activity{}, apperr.NotFound(msgLeadNotFound)
		}
		return Activity{}, fmt.Errorf("touch lead contact date: %w", err)
	}

	activity := Activity{
		ID:          uuid.New(),
		LeadID:      params.LeadID,
		Type:        params.Type,
		Description: params.Description,
		ActorID:     params.ActorID,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO lead_activities (id, lead_id, type, description, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, activity.ID, activity.LeadID, activity.Type, activity.Description, activity.ActorID, lastContact).Scan(&activity.CreatedAt)
	if err != nil {
		return Activity{}, fmt.Errorf("insert lead activity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Activity{}, fmt.Errorf("commit activity tx: %w", err)
	}
	return activity, nil
}

func (r *Repository) ListActivities(ctx context.Context, leadID uuid.UUID) ([]Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, type, description, actor_id, created_at
		FROM lead_activities
		WHERE lead_id = $1
		ORDER BY created_at DESC, id DESC
	`, leadID)
	if err != nil {
		return nil, fmt.Errorf("list lead activities: %w", err)
	}
	defer rows.Close()

	items := make([]Activity, 0)
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.LeadID, &a.Type, &a.Description, &a.ActorID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lead activity: %w", err)
		}
		items = append(items, a)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}
