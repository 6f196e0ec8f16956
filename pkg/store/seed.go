package store

import (
	"context"
	"log/slog"
)

// Starter dataset inserted the first time the store is found empty.

var seedMembers = []Member{
	{Name: "Arun Kumar", Phone: "9876543210", Instagram: "arun_redboys", ImageURL: "https://picsum.photos/seed/arun/400"},
	{Name: "Vijay S.", Phone: "9876543211", Instagram: "vijay_redboys", ImageURL: "https://picsum.photos/seed/vijay/400"},
	{Name: "Manoj R.", Phone: "9876543212", Instagram: "manoj_redboys", ImageURL: "https://picsum.photos/seed/manoj/400"},
	{Name: "Suresh Raina", Phone: "9876543213", Instagram: "suresh_redboys", ImageURL: "https://picsum.photos/seed/suresh/400"},
}

var seedEvents = []Event{
	{
		Name:        "Pongal Celebration 2025",
		Date:        "2025-01-14",
		Description: "Annual village pongal feast and games for the youth.",
		Venue:       "Village Ground, Madurai",
		Status:      EventUpcoming,
	},
	{
		Name:        "Kabaddi Tournament",
		Date:        "2024-12-15",
		Description: "Friendly inter-village kabaddi tournament sponsored by Red Boys.",
		Venue:       "Community Park",
		Status:      EventCompleted,
	},
}

func seedBudgetFor(eventID string) Budget {
	return Budget{
		EventID: eventID,
		Income: []IncomeEntry{
			{Contributor: "Member Fund", Amount: 5000, Date: "2024-12-10"},
			{Contributor: "Village Elder Donation", Amount: 2000, Date: "2024-12-12"},
		},
		Expenses: []ExpenseEntry{
			{Description: "Trophy Purchase", Amount: 1500, Date: "2024-12-14"},
			{Description: "Snacks & Drinks", Amount: 3000, Date: "2024-12-15"},
		},
	}
}

// seed inserts the starter members and events, then attaches the starter
// budget to the second created event so the ledger demo has real data.
func (s *Store) seed(ctx context.Context) error {
	slog.Info("Database empty, seeding starter data")

	for _, member := range seedMembers {
		if _, err := s.client.CreateMember(ctx, member); err != nil {
			return err
		}
	}

	created := make([]Event, 0, len(seedEvents))
	for _, event := range seedEvents {
		ev, err := s.client.CreateEvent(ctx, event)
		if err != nil {
			return err
		}
		created = append(created, ev)
	}

	if len(created) >= 2 {
		if _, err := s.client.PutBudget(ctx, seedBudgetFor(created[1].ID)); err != nil {
			return err
		}
	}

	return nil
}
