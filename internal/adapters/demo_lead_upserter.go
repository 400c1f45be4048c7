package adapters

import (
	"context"
	"fmt"

	demosvc "framtt_backend/internal/demo/service"
	leadsvc "framtt_backend/internal/leads/service"

	"github.com/google/uuid"
)

// LeadDemoUpserter is the slice of the leads service the demo module needs.
type LeadDemoUpserter interface {
	UpsertFromDemo(ctx context.Context, p leadsvc.DemoLeadParams) (leadsvc.UpsertResult, error)
}

// DemoLeadUpserter lets the demo module create or merge leads without
// importing the leads service directly.
// It implements demo/service.LeadUpserter.
type DemoLeadUpserter struct {
	leads LeadDemoUpserter
}

func NewDemoLeadUpserter(leads LeadDemoUpserter) *DemoLeadUpserter {
	return &DemoLeadUpserter{leads: leads}
}

func (a *DemoLeadUpserter) UpsertFromDemo(ctx context.Context, p demosvc.LeadUpsert) (uuid.UUID, bool, error) {
	result, err := a.leads.UpsertFromDemo(ctx, leadsvc.DemoLeadParams{
		DemoRequestID:     p.DemoRequestID,
		RequestType:       p.RequestType,
		SessionID:         p.SessionID,
		Name:              p.Name,
		Email:             p.Email,
		Company:           p.Company,
		Phone:             p.Phone,
		VehicleCount:      p.VehicleCount,
		Timeline:          p.Timeline,
		CurrentChallenges: p.CurrentChallenges,
	})
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("upsert lead from demo request: %w", err)
	}
	return result.LeadID, result.Created, nil
}

var _ demosvc.LeadUpserter = (*DemoLeadUpserter)(nil)
