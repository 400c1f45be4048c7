// Package daterange parses the dateFrom/dateTo query parameters used by list
// and analytics endpoints.
package daterange

import (
	"strings"
	"time"

	"framtt_backend/platform/apperr"
)

const dateLayout = "2006-01-02"

// DefaultWindow is the lookback applied by analytics when dateFrom is absent.
const DefaultWindow = 30 * 24 * time.Hour

// Range is an inclusive [From, To] interval.
type Range struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// ParseBound accepts RFC3339 or YYYY-MM-DD. A date-only end bound is moved
// to the last nanosecond of that day. Blank input returns nil.
func ParseBound(raw string, end bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}

	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, apperr.Validation("dates must be RFC3339 or YYYY-MM-DD")
	}
	if end {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// ParseOptional parses both bounds without defaults. Either may be nil.
func ParseOptional(rawFrom, rawTo string) (*time.Time, *time.Time, error) {
	from, err := ParseBound(rawFrom, false)
	if err != nil {
		return nil, nil, err
	}
	to, err := ParseBound(rawTo, true)
	if err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, apperr.Validation("dateFrom must not be after dateTo")
	}
	return from, to, nil
}

// Parse returns a closed range. A missing To defaults to now, a missing From
// to To minus window.
func Parse(rawFrom, rawTo string, now time.Time, window time.Duration) (Range, error) {
	from, to, err := ParseOptional(rawFrom, rawTo)
	if err != nil {
		return Range{}, err
	}

	r := Range{To: now.UTC()}
	if to != nil {
		r.To = *to
	}
	r.From = r.To.Add(-window)
	if from != nil {
		r.From = *from
	}
	if r.From.After(r.To) {
		return Range{}, apperr.Validation("dateFrom must not be after dateTo")
	}
	return r, nil
}
