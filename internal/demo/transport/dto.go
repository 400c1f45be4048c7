package transport

import (
	"time"

	"framtt_backend/platform/httpkit"

	"github.com/google/uuid"
)

// EstimatedResponseTime is quoted back on every demo request view.
const EstimatedResponseTime = "24 hours"

type SubmitRequest struct {
	Type              string  `json:"type" validate:"required,oneof=general module full pricing"`
	ModuleID          *string `json:"moduleId" validate:"omitempty,oneof=analytics communication tracking whatsapp marketing booking"`
	SessionID         *string `json:"sessionId" validate:"omitempty,uuid"`
	Name              *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email             *string `json:"email" validate:"omitempty,email,max=254"`
	Company           *string `json:"company" validate:"omitempty,max=200"`
	Phone             *string `json:"phone" validate:"omitempty,phone"`
	VehicleCount      *int    `json:"vehicleCount" validate:"omitempty,min=0,max=10000"`
	CurrentChallenges *string `json:"currentChallenges" validate:"omitempty,max=2000"`
	Timeline          *string `json:"timeline" validate:"omitempty,oneof=immediately 1_month 3_months 6_months 1_year"`
	PreferredContact  *string `json:"preferredContact" validate:"omitempty,oneof=email phone whatsapp"`
	BestTime          *string `json:"bestTime" validate:"omitempty,max=100"`
	Message           *string `json:"message" validate:"omitempty,max=2000"`
}

type SubmitResponse struct {
	RequestID             uuid.UUID `json:"requestId"`
	Type                  string    `json:"type"`
	Status                string    `json:"status"`
	EstimatedResponseTime string    `json:"estimatedResponseTime"`
	NextSteps             []string  `json:"nextSteps"`
}

// PublicDemoRequestResponse is the view returned to the requester.
type PublicDemoRequestResponse struct {
	RequestID             uuid.UUID `json:"requestId"`
	Type                  string    `json:"type"`
	Status                string    `json:"status"`
	CreatedAt             time.Time `json:"createdAt"`
	EstimatedResponseTime string    `json:"estimatedResponseTime"`
	NextSteps             []string  `json:"nextSteps"`
}

type DemoRequestResponse struct {
	ID                uuid.UUID  `json:"id"`
	SessionID         *uuid.UUID `json:"sessionId,omitempty"`
	Type              string     `json:"type"`
	ModuleID          *string    `json:"moduleId"`
	Name              *string    `json:"name"`
	Email             *string    `json:"email"`
	Company           *string    `json:"company"`
	Phone             *string    `json:"phone"`
	VehicleCount      *int       `json:"vehicleCount"`
	CurrentChallenges *string    `json:"currentChallenges"`
	Timeline          *string    `json:"timeline"`
	PreferredContact  string     `json:"preferredContact"`
	BestTime          *string    `json:"bestTime"`
	Message           *string    `json:"message"`
	IPAddress         *string    `json:"ipAddress"`
	UserAgent         *string    `json:"userAgent"`
	Referrer          *string    `json:"referrer"`
	Status            string     `json:"status"`
	Priority          string     `json:"priority"`
	AssignedTo        *string    `json:"assignedTo"`
	FollowUpDate      *time.Time `json:"followUpDate"`
	Notes             *string    `json:"notes"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type ListRequest struct {
	Status     string `form:"status" validate:"omitempty,oneof=new contacted qualified demo_scheduled closed"`
	Type       string `form:"type" validate:"omitempty,oneof=general module full pricing"`
	Priority   string `form:"priority" validate:"omitempty,oneof=low medium high"`
	AssignedTo string `form:"assignedTo" validate:"omitempty,max=100"`
	DateFrom   string `form:"dateFrom"`
	DateTo     string `form:"dateTo"`
	Page       int    `form:"page" validate:"omitempty,min=1"`
	Limit      int    `form:"limit" validate:"omitempty,min=1"`
}

type ListResponse struct {
	Data       []DemoRequestResponse `json:"data"`
	Pagination httpkit.Pagination    `json:"pagination"`
}

type UpdateStatusRequest struct {
	Status     string  `json:"status" validate:"required,oneof=new contacted qualified demo_scheduled closed"`
	Notes      *string `json:"notes" validate:"omitempty,max=5000"`
	AssignedTo *string `json:"assignedTo" validate:"omitempty,max=100"`
}
