package daterange

import (
	"testing"
	"time"

	"framtt_backend/platform/apperr"
)

func TestParseBoundFormats(t *testing.T) {
	start, err := ParseBound("2026-03-01", false)
	if err != nil || !start.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start bound %v (%v)", start, err)
	}

	end, err := ParseBound("2026-03-01", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2026, 3, 1, 23, 59, 59, 999999999, time.UTC); !end.Equal(want) {
		t.Fatalf("expected end of day %v, got %v", want, end)
	}

	exact, err := ParseBound("2026-03-01T10:00:00+02:00", true)
	if err != nil || !exact.Equal(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected RFC3339 to be kept as-is, got %v (%v)", exact, err)
	}

	none, err := ParseBound("  ", true)
	if err != nil || none != nil {
		t.Fatalf("expected nil for blank input, got %v (%v)", none, err)
	}
}

func TestParseBoundRejectsGarbage(t *testing.T) {
	if _, err := ParseBound("03/01/2026", false); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseDefaultsToWindowEndingNow(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	r, err := Parse("", "", now, DefaultWindow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.To.Equal(now) || !r.From.Equal(now.Add(-DefaultWindow)) {
		t.Fatalf("unexpected default range %+v", r)
	}
}

func TestParseRejectsInvertedRange(t *testing.T) {
	now := time.Now()
	if _, err := Parse("2026-05-02", "2026-05-01", now, DefaultWindow); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, _, err := ParseOptional("2026-05-02", "2026-05-01"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseSameDayIsInclusive(t *testing.T) {
	r, err := Parse("2026-05-01", "2026-05-01", time.Now(), DefaultWindow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.To.Sub(r.From) != 24*time.Hour-time.Nanosecond {
		t.Fatalf("expected a full-day range, got %v", r.To.Sub(r.From))
	}
}
