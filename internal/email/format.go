package email

import (
	"strconv"
	"strings"
	"time"
)

var requestTypeLabels = map[string]string{
	"general": "General Demo Request",
	"module":  "Module-Specific Demo",
	"full":    "Full Platform Demo",
	"pricing": "Pricing Information Request",
}

var moduleLabels = map[string]string{
	"analytics":     "Revenue & Analytics Dashboard",
	"communication": "Smart Customer Communication",
	"tracking":      "Live Vehicle Tracking",
	"whatsapp":      "WhatsApp Booking Integration",
	"marketing":     "AI Marketing Optimization",
	"booking":       "Smart Booking Engine",
}

var timelineLabels = map[string]string{
	"immediately": "Immediately",
	"1_month":     "Within 1 month",
	"3_months":    "Within 3 months",
	"6_months":    "Within 6 months",
	"1_year":      "Within 1 year",
}

// formatRequestType falls back to a generic label for unknown types.
func formatRequestType(requestType string) string {
	if label, ok := requestTypeLabels[requestType]; ok {
		return label
	}
	return "Demo Request"
}

// formatModuleName returns unknown ids unchanged.
func formatModuleName(moduleID string) string {
	if label, ok := moduleLabels[moduleID]; ok {
		return label
	}
	return moduleID
}

func formatTimeline(timeline string) string {
	if label, ok := timelineLabels[timeline]; ok {
		return label
	}
	return timeline
}

func formatVehicleCount(count *int) string {
	if count == nil {
		return "N/A"
	}
	return strconv.Itoa(*count)
}

func formatSubmitted(at time.Time) string {
	if at.IsZero() {
		return ""
	}
	return at.UTC().Format("Jan 2, 2006 15:04 MST")
}

func greeting(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Hi,"
	}
	return "Hi " + name + ","
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}
	return value
}
