// Package domain holds the lead pipeline vocabulary shared by the leads
// service, repository and handlers.
package domain

// Lead statuses, in pipeline order.
const (
	StatusNew         = "new"
	StatusQualified   = "qualified"
	StatusProposal    = "proposal"
	StatusNegotiation = "negotiation"
	StatusClosedWon   = "closed_won"
	StatusClosedLost  = "closed_lost"
)

// Lead sources.
const (
	SourceWebsite  = "website"
	SourceReferral = "referral"
	SourceSocial   = "social"
	SourceEmail    = "email"
)

// DefaultIndustry is assigned when a lead does not name one.
const DefaultIndustry = "car_rental"

// Activity types recorded on a lead's audit trail.
const (
	ActivityCreated      = "created"
	ActivityUpdated      = "updated"
	ActivityDemoRequest  = "demo_request"
	ActivityNote         = "note"
	ActivityCall         = "call"
	ActivityEmail        = "email"
	ActivityMeeting      = "meeting"
	ActivityStatusChange = "status_change"
	ActivityScoreChange  = "score_change"
)

// QualifiedStatuses are the statuses counted as "qualified or further" in
// funnel analytics. ProposalStatuses is the "proposal or further" subset.
var (
	QualifiedStatuses = []string{StatusQualified, StatusProposal, StatusNegotiation, StatusClosedWon}
	ProposalStatuses  = []string{StatusProposal, StatusNegotiation, StatusClosedWon}
)
