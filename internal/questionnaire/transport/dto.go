package transport

import (
	"time"

	"framtt_backend/internal/questionnaire/recommend"
	"framtt_backend/platform/httpkit"

	"github.com/google/uuid"
)

// SubmitRequest is the public questionnaire body. The answers are pointers
// so that a missing answer fails validation instead of reading as false.
type SubmitRequest struct {
	SessionID            *string `json:"sessionId" validate:"omitempty,uuid"`
	MonitorRevenue       *bool   `json:"monitorRevenue" validate:"required"`
	SeamlessCustomerChat *bool   `json:"seamlessCustomerChat" validate:"required"`
	TrackVehiclesLive    *bool   `json:"trackVehiclesLive" validate:"required"`
	UseWhatsApp          *bool   `json:"useWhatsApp" validate:"required"`
	SpendOnMarketing     *bool   `json:"spendOnMarketing" validate:"required"`
	UseRentalSoftware    *bool   `json:"useRentalSoftware" validate:"required"`
}

type SubmitResponse struct {
	SessionID        uuid.UUID            `json:"sessionId"`
	Solutions        []recommend.Solution `json:"solutions"`
	TotalSolutions   int                  `json:"totalSolutions"`
	RecommendedCount int                  `json:"recommendedCount"`
}

type SolutionsResponse struct {
	SessionID        uuid.UUID            `json:"sessionId"`
	Solutions        []recommend.Solution `json:"solutions"`
	TotalSolutions   int                  `json:"totalSolutions"`
	RecommendedCount int                  `json:"recommendedCount"`
	CompletedAt      time.Time            `json:"completedAt"`
}

// AnswersResponse is the public view of a submission. It never carries
// client metadata.
type AnswersResponse struct {
	SessionID            uuid.UUID `json:"sessionId"`
	MonitorRevenue       bool      `json:"monitorRevenue"`
	SeamlessCustomerChat bool      `json:"seamlessCustomerChat"`
	TrackVehiclesLive    bool      `json:"trackVehiclesLive"`
	UseWhatsApp          bool      `json:"useWhatsApp"`
	SpendOnMarketing     bool      `json:"spendOnMarketing"`
	UseRentalSoftware    bool      `json:"useRentalSoftware"`
	CompletedAt          time.Time `json:"completedAt"`
}

// AdminQuestionnaireResponse is the admin row including client metadata.
type AdminQuestionnaireResponse struct {
	ID uuid.UUID `json:"id"`
	AnswersResponse
	IPAddress *string   `json:"ipAddress"`
	UserAgent *string   `json:"userAgent"`
	Referrer  *string   `json:"referrer"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListRequest struct {
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	Limit    int    `form:"limit" validate:"omitempty,min=1"`
}

type ListResponse struct {
	Data       []AdminQuestionnaireResponse `json:"data"`
	Pagination httpkit.Pagination           `json:"pagination"`
}
