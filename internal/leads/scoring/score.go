// Package scoring computes a lead's 0-100 quality score from its attributes.
//
// Compute is pure: the lead service decides when to call it (on create, and
// whenever an update touches one of the fields in Signals).
package scoring

import (
	"strings"
	"unicode/utf8"
)

// MaxScore is the saturation point of the additive score.
const MaxScore = 100

const (
	pointsCompany        = 5
	pointsWebsite        = 5
	pointsVehicleCount   = 10
	pointsPhone          = 5
	pointsEmail          = 10
	pointsCurrentRevenue = 10
	pointsBudget         = 10
	pointsTimeline       = 10
	pointsDecisionYes    = 20
	pointsDecisionInfl   = 10
	pointsPainPoints     = 15

	// painPointsMinRunes is exclusive: a description needs more than this.
	painPointsMinRunes = 50
)

// Decision-maker values that earn points. Everything else earns nothing.
const (
	DecisionMakerYes       = "yes"
	DecisionMakerInfluence = "influence"
)

// Signals is the scoring-relevant projection of a lead.
// Zero values mean "unknown" and contribute nothing.
type Signals struct {
	Company        string
	Website        string
	VehicleCount   int
	Phone          string
	Email          string
	CurrentRevenue string
	Budget         string
	Timeline       string
	DecisionMaker  string
	PainPoints     string
}

// Compute returns min(sum of points, 100). It never returns a negative value.
func Compute(s Signals) int {
	score := 0

	score += trimmedPresence(s.Company, pointsCompany)
	score += trimmedPresence(s.Website, pointsWebsite)
	if s.VehicleCount > 0 {
		score += pointsVehicleCount
	}
	score += presence(s.Phone, pointsPhone)
	score += presence(s.Email, pointsEmail)
	score += presence(s.CurrentRevenue, pointsCurrentRevenue)
	score += presence(s.Budget, pointsBudget)
	score += presence(s.Timeline, pointsTimeline)

	switch s.DecisionMaker {
	case DecisionMakerYes:
		score += pointsDecisionYes
	case DecisionMakerInfluence:
		score += pointsDecisionInfl
	}

	if utf8.RuneCountInString(s.PainPoints) > painPointsMinRunes {
		score += pointsPainPoints
	}

	if score > MaxScore {
		return MaxScore
	}
	return score
}

// Company and website count only when they hold more than whitespace.
func trimmedPresence(value string, points int) int {
	return presence(strings.TrimSpace(value), points)
}

func presence(value string, points int) int {
	if value == "" {
		return 0
	}
	return points
}
