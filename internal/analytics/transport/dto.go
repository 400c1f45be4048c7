package transport

import "framtt_backend/platform/daterange"

type RangeRequest struct {
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type FeaturePopularity struct {
	MonitorRevenue       int `json:"monitorRevenue"`
	SeamlessCustomerChat int `json:"seamlessCustomerChat"`
	TrackVehiclesLive    int `json:"trackVehiclesLive"`
	UseWhatsApp          int `json:"useWhatsApp"`
	SpendOnMarketing     int `json:"spendOnMarketing"`
	UseRentalSoftware    int `json:"useRentalSoftware"`
}

type QuestionnaireAnalytics struct {
	Period         daterange.Range   `json:"period"`
	TotalResponses int               `json:"totalResponses"`
	Features       FeaturePopularity `json:"features"`
	DailyResponses []DailyCount      `json:"dailyResponses"`
}

type DemoRequestAnalytics struct {
	Period        daterange.Range `json:"period"`
	TotalRequests int             `json:"totalRequests"`
	ByStatus      []LabelCount    `json:"byStatus"`
	ByType        []LabelCount    `json:"byType"`
	DailyRequests []DailyCount    `json:"dailyRequests"`
}

type StatusScore struct {
	Status   string  `json:"status"`
	Count    int     `json:"count"`
	AvgScore float64 `json:"avgScore"`
}

type LeadFunnel struct {
	TotalLeads    int     `json:"totalLeads"`
	Qualified     int     `json:"qualified"`
	Proposal      int     `json:"proposal"`
	ClosedWon     int     `json:"closedWon"`
	PipelineValue float64 `json:"totalPipelineValue"`
	ClosedValue   float64 `json:"closedValue"`
}

type LeadAnalytics struct {
	Period     daterange.Range `json:"period"`
	TotalLeads int             `json:"totalLeads"`
	ByStatus   []StatusScore   `json:"byStatus"`
	BySource   []LabelCount    `json:"bySource"`
	Funnel     LeadFunnel      `json:"funnel"`
}

type Summary struct {
	TotalQuestionnaires int     `json:"totalQuestionnaires"`
	TotalDemoRequests   int     `json:"totalDemoRequests"`
	TotalLeads          int     `json:"totalLeads"`
	ConversionRate      string  `json:"conversionRate"`
	QualificationRate   string  `json:"qualificationRate"`
	PipelineValue       float64 `json:"pipelineValue"`
	ClosedValue         float64 `json:"closedValue"`
}

type Overview struct {
	Period         daterange.Range        `json:"period"`
	Summary        Summary                `json:"summary"`
	Questionnaires QuestionnaireAnalytics `json:"questionnaires"`
	DemoRequests   DemoRequestAnalytics   `json:"demoRequests"`
	Leads          LeadAnalytics          `json:"leads"`
}

type FunnelStage struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
	Order int    `json:"order"`
}

type Conversion struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Rate      string `json:"rate"`
	FromCount int    `json:"fromCount"`
	ToCount   int    `json:"toCount"`
}

type ConversionFunnel struct {
	Period      daterange.Range `json:"period"`
	Funnel      []FunnelStage   `json:"funnel"`
	Conversions []Conversion    `json:"conversions"`
}
