package repository

import (
	"context"

	"github.com/google/uuid"
)

// QuestionnaireReader loads saved questionnaires.
type QuestionnaireReader interface {
	LatestBySession(ctx context.Context, sessionID uuid.UUID) (Questionnaire, error)
	List(ctx context.Context, params ListParams) ([]Questionnaire, int, error)
}

// QuestionnaireWriter persists new submissions. Saved rows are never updated.
type QuestionnaireWriter interface {
	Create(ctx context.Context, q Questionnaire) (Questionnaire, error)
}

// QuestionnaireRepository is the composite used by the service.
type QuestionnaireRepository interface {
	QuestionnaireReader
	QuestionnaireWriter
}

var _ QuestionnaireRepository = (*Repository)(nil)
