// Package recommend maps questionnaire answers to a ranked list of product
// modules. The rule order lives in code; display copy lives in catalog.yaml.
package recommend

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Priority ranks a solution. Higher values sort first.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// MarshalText renders the priority as its lowercase name in JSON.
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Solution ids.
const (
	IDAnalytics     = "analytics"
	IDCommunication = "communication"
	IDTracking      = "tracking"
	IDWhatsApp      = "whatsapp"
	IDMarketing     = "marketing"
	IDBooking       = "booking"
	IDWebsite       = "website"
)

// Answers are the six questionnaire booleans.
type Answers struct {
	MonitorRevenue       bool
	SeamlessCustomerChat bool
	TrackVehiclesLive    bool
	UseWhatsApp          bool
	SpendOnMarketing     bool
	UseRentalSoftware    bool
}

// Solution is one recommended module.
type Solution struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Recommended bool     `json:"recommended"`
}

type rule struct {
	id          string
	priority    Priority
	recommended bool
	applies     func(Answers) bool
}

// rules is evaluated top to bottom; the order is also the tie-break order.
var rules = []rule{
	{IDAnalytics, PriorityHigh, true, func(a Answers) bool { return a.MonitorRevenue }},
	{IDCommunication, PriorityHigh, true, func(a Answers) bool { return a.SeamlessCustomerChat }},
	{IDTracking, PriorityHigh, true, func(a Answers) bool { return a.TrackVehiclesLive }},
	{IDWhatsApp, PriorityHigh, true, func(a Answers) bool { return a.UseWhatsApp }},
	{IDMarketing, PriorityMedium, true, func(a Answers) bool { return a.SpendOnMarketing }},
	{IDBooking, PriorityMedium, false, func(Answers) bool { return true }},
	{IDWebsite, PriorityLow, false, func(a Answers) bool { return !a.UseRentalSoftware }},
}

type copyEntry struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

//go:embed catalog.yaml
var catalogYAML []byte

var catalog = mustLoadCatalog(catalogYAML)

func mustLoadCatalog(data []byte) map[string]copyEntry {
	entries, err := loadCatalog(data)
	if err != nil {
		panic(err)
	}
	return entries
}

func loadCatalog(data []byte) (map[string]copyEntry, error) {
	entries := make(map[string]copyEntry)
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse solution catalog: %w", err)
	}
	for _, r := range rules {
		entry, ok := entries[r.id]
		if !ok || entry.Title == "" {
			return nil, fmt.Errorf("solution catalog is missing %q", r.id)
		}
	}
	return entries, nil
}

// Solutions returns the recommendations for a, highest priority first.
// Equal priorities keep rule order. The result always contains booking.
func Solutions(a Answers) []Solution {
	out := make([]Solution, 0, len(rules))
	for _, r := range rules {
		if !r.applies(a) {
			continue
		}
		entry := catalog[r.id]
		out = append(out, Solution{
			ID:          r.id,
			Title:       entry.Title,
			Description: entry.Description,
			Priority:    r.priority,
			Recommended: r.recommended,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

// RecommendedCount counts the entries flagged as recommended.
func RecommendedCount(solutions []Solution) int {
	n := 0
	for _, s := range solutions {
		if s.Recommended {
			n++
		}
	}
	return n
}

// Title returns the display title for a solution id, or the id itself when
// the catalog does not know it.
func Title(id string) string {
	if entry, ok := catalog[id]; ok {
		return entry.Title
	}
	return id
}
