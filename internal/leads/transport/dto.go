package transport

import (
	"time"

	"framtt_backend/platform/httpkit"

	"github.com/google/uuid"
)

type LeadResponse struct {
	ID              uuid.UUID  `json:"id"`
	SessionID       *uuid.UUID `json:"sessionId,omitempty"`
	DemoRequestID   *uuid.UUID `json:"demoRequestId,omitempty"`
	Name            *string    `json:"name"`
	Email           *string    `json:"email"`
	Phone           *string    `json:"phone"`
	Company         *string    `json:"company"`
	Website         *string    `json:"website"`
	Industry        string     `json:"industry"`
	CompanySize     *string    `json:"companySize"`
	VehicleCount    *int       `json:"vehicleCount"`
	CurrentRevenue  *string    `json:"currentRevenue"`
	CurrentSoftware *string    `json:"currentSoftware"`
	PainPoints      *string    `json:"painPoints"`
	Budget          *string    `json:"budget"`
	Timeline        *string    `json:"timeline"`
	DecisionMaker   *string    `json:"decisionMaker"`
	Source          string     `json:"source"`
	Status          string     `json:"status"`
	Score           int        `json:"score"`
	AssignedTo      *string    `json:"assignedTo"`
	Tags            []string   `json:"tags"`
	LastContactDate *time.Time `json:"lastContactDate"`
	NextFollowUp    *time.Time `json:"nextFollowUp"`
	EstimatedValue  *float64   `json:"estimatedValue"`
	Notes           *string    `json:"notes"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type ListLeadsRequest struct {
	Status     string `form:"status" validate:"omitempty,oneof=new qualified proposal negotiation closed_won closed_lost"`
	AssignedTo string `form:"assignedTo" validate:"omitempty,max=100"`
	MinScore   *int   `form:"minScore" validate:"omitempty,min=0,max=100"`
	Source     string `form:"source" validate:"omitempty,oneof=website referral social email"`
	DateFrom   string `form:"dateFrom"`
	DateTo     string `form:"dateTo"`
	Page       int    `form:"page" validate:"omitempty,min=1"`
	Limit      int    `form:"limit" validate:"omitempty,min=1"`
}

type ListFilters struct {
	Status     string `json:"status,omitempty"`
	AssignedTo string `json:"assignedTo,omitempty"`
	MinScore   *int   `json:"minScore,omitempty"`
	Source     string `json:"source,omitempty"`
	DateFrom   string `json:"dateFrom,omitempty"`
	DateTo     string `json:"dateTo,omitempty"`
}

type LeadListResponse struct {
	Data       []LeadResponse     `json:"data"`
	Pagination httpkit.Pagination `json:"pagination"`
	Filters    ListFilters        `json:"filters"`
}

// UpdateLeadRequest is a partial update. Every key present in the body is
// applied, including explicit nulls.
type UpdateLeadRequest struct {
	SessionID       Optional[string]    `json:"sessionId" validate:"omitempty,uuid"`
	Name            Optional[string]    `json:"name" validate:"omitempty,min=2,max=100"`
	Email           Optional[string]    `json:"email" validate:"omitempty,email,max=254"`
	Phone           Optional[string]    `json:"phone" validate:"omitempty,phone"`
	Company         Optional[string]    `json:"company" validate:"omitempty,max=200"`
	Website         Optional[string]    `json:"website" validate:"omitempty,max=255"`
	Industry        Optional[string]    `json:"industry" validate:"omitempty,max=100"`
	CompanySize     Optional[string]    `json:"companySize" validate:"omitempty,max=50"`
	VehicleCount    Optional[int]       `json:"vehicleCount" validate:"omitempty,min=0,max=10000"`
	CurrentRevenue  Optional[string]    `json:"currentRevenue" validate:"omitempty,max=100"`
	CurrentSoftware Optional[string]    `json:"currentSoftware" validate:"omitempty,max=200"`
	PainPoints      Optional[string]    `json:"painPoints" validate:"omitempty,max=5000"`
	Budget          Optional[string]    `json:"budget" validate:"omitempty,max=100"`
	Timeline        Optional[string]    `json:"timeline" validate:"omitempty,max=50"`
	DecisionMaker   Optional[string]    `json:"decisionMaker" validate:"omitempty,oneof=yes influence no"`
	Source          Optional[string]    `json:"source" validate:"omitempty,oneof=website referral social email"`
	Status          Optional[string]    `json:"status" validate:"omitempty,oneof=new qualified proposal negotiation closed_won closed_lost"`
	Score           Optional[int]       `json:"score" validate:"omitempty,min=0,max=100"`
	AssignedTo      Optional[string]    `json:"assignedTo" validate:"omitempty,max=100"`
	Tags            Optional[[]string]  `json:"tags" validate:"omitempty,max=50"`
	NextFollowUp    Optional[time.Time] `json:"nextFollowUp"`
	EstimatedValue  Optional[float64]   `json:"estimatedValue" validate:"omitempty,min=0"`
	Notes           Optional[string]    `json:"notes" validate:"omitempty,max=5000"`
}

type AddActivityRequest struct {
	Type        string `json:"type" validate:"required,oneof=note call email meeting status_change score_change demo_request updated created"`
	Description string `json:"description" validate:"required,min=1,max=2000"`
}

type ActivityResponse struct {
	ID          uuid.UUID `json:"id"`
	LeadID      uuid.UUID `json:"leadId"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	ActorID     *string   `json:"actorId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ExportLeadsRequest struct {
	ListLeadsRequest
	Store bool `form:"store"`
}

type StoredExportResponse struct {
	FileKey     string    `json:"fileKey"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Rows        int       `json:"rows"`
}
