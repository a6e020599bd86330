package catalog

import "time"

// NewSeededStore returns a catalog preloaded with the demo listings and
// one demo conversation between the seeded agent and vendor accounts.
func NewSeededStore() *Store {
	s := NewStore()
	now := time.Now()

	s.offers = []Offer{
		{
			ID:             "offer_1",
			VendorID:       "user_vendor_1",
			VendorName:     "Acme Marketing",
			Title:          "High Intent Final Expense Transfers",
			Description:    "Exclusive inbound transfers generated fresh daily. 100% TCPA compliant.",
			Category:       "Inbound Call Vendor",
			PricingModel:   PricingOneTime,
			PriceCents:     50000,
			TurnaroundDays: 3,
			Rating:         4.9,
			ImageURL:       "https://picsum.photos/400/300?random=1",
			VideoURL:       "https://www.youtube.com/watch?v=LXb3EKWsInQ",
			Keywords:       []string{"leads", "expense", "transfers", "inbound"},
		},
		{
			ID:             "offer_2",
			VendorID:       "user_vendor_2",
			VendorName:     "TechFlow Systems",
			Title:          "Full GHL Automation Setup",
			Description:    "Complete GoHighLevel snapshot installation with workflows, pipelines, and calendars.",
			Category:       "Developer",
			PricingModel:   PricingHybrid,
			PriceCents:     9700,
			SetupFeeCents:  29700,
			TurnaroundDays: 2,
			Rating:         5.0,
			ImageURL:       "https://picsum.photos/400/300?random=2",
			Keywords:       []string{"ghl", "crm", "automation", "developer"},
		},
		{
			ID:             "offer_3",
			VendorID:       "user_vendor_3",
			VendorName:     "Sarah Jenkins",
			Title:          "Weekly Sales Coaching",
			Description:    "Ongoing weekly coaching sessions to refine your telesales script and handle objections.",
			Category:       "Coach",
			PricingModel:   PricingSubscription,
			PriceCents:     15000,
			TurnaroundDays: 1,
			Rating:         4.8,
			ImageURL:       "https://picsum.photos/400/300?random=3",
			Keywords:       []string{"sales", "coaching", "script"},
		},
	}

	s.conversations = []Conversation{
		{
			ID:            "conv_1",
			Participants:  []string{"user_agent_1", "user_vendor_1"},
			LastMessage:   "Thanks, I will review the file.",
			UpdatedAt:     now.Add(-10 * time.Second),
			ActiveOrderID: "order_1",
			OfferTitle:    "High Intent Final Expense Transfers",
			Messages: []Message{
				{ID: "m1", SenderID: "user_agent_1", Text: "Hi, are these calls fresh?", SentAt: now.Add(-24 * time.Hour)},
				{ID: "m2", SenderID: "user_vendor_1", Text: "Yes, generated live.", SentAt: now.Add(-23 * time.Hour)},
				{ID: "m3", SenderID: "system", Text: "James Bond funded $525.00 into Escrow.", SentAt: now.Add(-1 * time.Hour), System: true},
				{ID: "m4", SenderID: "user_vendor_1", Text: "Great, getting to work.", SentAt: now.Add(-50 * time.Minute)},
			},
		},
	}

	return s
}
