package repository

import (
	"context"

	"github.com/google/uuid"
)

// LeadReader provides read-only access to lead data.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
	// Stream calls fn for every lead matching params in list order,
	// ignoring Limit and Offset.
	Stream(ctx context.Context, params ListParams, fn func(Lead) error) error
}

// LeadWriter provides write operations for lead management.
type LeadWriter interface {
	// Create inserts a lead. A duplicate email yields an apperr.Conflict.
	Create(ctx context.Context, lead Lead) (Lead, error)
	// Save writes every mutable column of lead and returns the stored row.
	Save(ctx context.Context, lead Lead) (Lead, error)
}

// ActivityStore records the append-only audit trail on leads.
type ActivityStore interface {
	// AddActivity inserts the activity and stamps the lead's last_contact_date.
	AddActivity(ctx context.Context, params CreateActivityParams) (Activity, error)
	ListActivities(ctx context.Context, leadID uuid.UUID) ([]Activity, error)
}

// LeadsRepository is the composite of all lead storage concerns.
type LeadsRepository interface {
	LeadReader
	LeadWriter
	ActivityStore
}

var _ LeadsRepository = (*Repository)(nil)
