package repository

import (
	"context"

	"github.com/google/uuid"
)

// DemoRequestReader loads stored demo requests.
type DemoRequestReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (DemoRequest, error)
	List(ctx context.Context, params ListParams) ([]DemoRequest, int, error)
}

// DemoRequestWriter persists demo requests and routing changes.
type DemoRequestWriter interface {
	Create(ctx context.Context, req DemoRequest) (DemoRequest, error)
	UpdateStatus(ctx context.Context, params UpdateStatusParams) (DemoRequest, error)
}

// DemoRequestRepository is the composite used by the service.
type DemoRequestRepository interface {
	DemoRequestReader
	DemoRequestWriter
}

var _ DemoRequestRepository = (*Repository)(nil)
