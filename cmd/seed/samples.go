package main

import (
	demotransport "framtt_backend/internal/demo/transport"
	questionnairetransport "framtt_backend/internal/questionnaire/transport"
)

func ptr[T any](v T) *T { return &v }

func sampleQuestionnaires() []questionnairetransport.SubmitRequest {
	return []questionnairetransport.SubmitRequest{
		{
			MonitorRevenue:       ptr(true),
			SeamlessCustomerChat: ptr(true),
			TrackVehiclesLive:    ptr(false),
			UseWhatsApp:          ptr(true),
			SpendOnMarketing:     ptr(false),
			UseRentalSoftware:    ptr(false),
		},
		{
			MonitorRevenue:       ptr(false),
			SeamlessCustomerChat: ptr(false),
			TrackVehiclesLive:    ptr(true),
			UseWhatsApp:          ptr(false),
			SpendOnMarketing:     ptr(true),
			UseRentalSoftware:    ptr(true),
		},
		{
			MonitorRevenue:       ptr(true),
			SeamlessCustomerChat: ptr(true),
			TrackVehiclesLive:    ptr(true),
			UseWhatsApp:          ptr(true),
			SpendOnMarketing:     ptr(true),
			UseRentalSoftware:    ptr(false),
		},
	}
}

func sampleDemoRequests() []demotransport.SubmitRequest {
	return []demotransport.SubmitRequest{
		{
			Type:              "full",
			Name:              ptr("John Smith"),
			Email:             ptr("john@citycarrentals.com"),
			Company:           ptr("City Car Rentals"),
			Phone:             ptr("+1 555 010 2030"),
			VehicleCount:      ptr(45),
			CurrentChallenges: ptr("Manual booking process, no real-time fleet tracking"),
			Timeline:          ptr("1_month"),
			PreferredContact:  ptr("phone"),
		},
		{
			Type:             "module",
			ModuleID:         ptr("whatsapp"),
			Name:             ptr("Sarah Johnson"),
			Email:            ptr("sarah@quickrent.com"),
			Company:          ptr("QuickRent"),
			VehicleCount:     ptr(12),
			Timeline:         ptr("3_months"),
			PreferredContact: ptr("whatsapp"),
		},
		{
			Type:    "pricing",
			Name:    ptr("Mike Davis"),
			Email:   ptr("mike@premiumwheels.com"),
			Company: ptr("Premium Wheels"),
			Message: ptr("Looking for pricing for a fleet of 150 vehicles"),
		},
	}
}
