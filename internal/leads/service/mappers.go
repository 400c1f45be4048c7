package service

import (
	"framtt_backend/internal/leads/repository"
	"framtt_backend/internal/leads/transport"
)

func toLeadResponse(lead repository.Lead) transport.LeadResponse {
	tags := lead.Tags
	if tags == nil {
		tags = []string{}
	}
	return transport.LeadResponse{
		ID:              lead.ID,
		SessionID:       lead.SessionID,
		DemoRequestID:   lead.DemoRequestID,
		Name:            lead.Name,
		Email:           lead.Email,
		Phone:           lead.Phone,
		Company:         lead.Company,
		Website:         lead.Website,
		Industry:        lead.Industry,
		CompanySize:     lead.CompanySize,
		VehicleCount:    lead.VehicleCount,
		CurrentRevenue:  lead.CurrentRevenue,
		CurrentSoftware: lead.CurrentSoftware,
		PainPoints:      lead.PainPoints,
		Budget:          lead.Budget,
		Timeline:        lead.Timeline,
		DecisionMaker:   lead.DecisionMaker,
		Source:          lead.Source,
		Status:          lead.Status,
		Score:           lead.Score,
		AssignedTo:      lead.AssignedTo,
		Tags:            tags,
		LastContactDate: lead.LastContactDate,
		NextFollowUp:    lead.NextFollowUp,
		EstimatedValue:  lead.EstimatedValue,
		Notes:           lead.Notes,
		CreatedAt:       lead.CreatedAt,
		UpdatedAt:       lead.UpdatedAt,
	}
}

func toActivityResponse(a repository.Activity) transport.ActivityResponse {
	return transport.ActivityResponse{
		ID:          a.ID,
		LeadID:      a.LeadID,
		Type:        a.Type,
		Description: a.Description,
		ActorID:     a.ActorID,
		CreatedAt:   a.CreatedAt,
	}
}
