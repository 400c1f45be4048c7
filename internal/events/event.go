// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"framtt_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Demo Domain Events
// =============================================================================

// DemoRequestSubmitted is published after a demo request has been stored.
// It carries everything the notification emails need so subscribers do not
// have to reload the row.
type DemoRequestSubmitted struct {
	BaseEvent
	RequestID         uuid.UUID  `json:"requestId"`
	LeadID            *uuid.UUID `json:"leadId,omitempty"`
	Type              string     `json:"type"`
	ModuleID          string     `json:"moduleId,omitempty"`
	Name              string     `json:"name"`
	Email             string     `json:"email,omitempty"`
	Company           string     `json:"company,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	VehicleCount      *int       `json:"vehicleCount,omitempty"`
	CurrentChallenges string     `json:"currentChallenges,omitempty"`
	Timeline          string     `json:"timeline,omitempty"`
	PreferredContact  string     `json:"preferredContact"`
	BestTime          string     `json:"bestTime,omitempty"`
	Message           string     `json:"message,omitempty"`
}

func (e DemoRequestSubmitted) EventName() string { return "demo.request.submitted" }

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadCreated is published when a lead row is first inserted.
type LeadCreated struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
	Email  string    `json:"email,omitempty"`
	Source string    `json:"source"`
	Score  int       `json:"score"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadScoreChanged is published when an update moves a lead's score.
type LeadScoreChanged struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	OldScore int       `json:"oldScore"`
	NewScore int       `json:"newScore"`
	Override bool      `json:"override"`
}

func (e LeadScoreChanged) EventName() string { return "leads.lead.score_changed" }

// QuestionnaireSubmitted is published after a questionnaire has been stored.
type QuestionnaireSubmitted struct {
	BaseEvent
	QuestionnaireID  uuid.UUID `json:"questionnaireId"`
	SessionID        uuid.UUID `json:"sessionId"`
	RecommendedCount int       `json:"recommendedCount"`
}

func (e QuestionnaireSubmitted) EventName() string { return "questionnaire.submitted" }
