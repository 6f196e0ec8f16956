package store

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/redboys/portal/internal/auth"
	"github.com/redboys/portal/internal/budgets"
	"github.com/redboys/portal/internal/events"
	"github.com/redboys/portal/internal/members"
	"github.com/redboys/portal/internal/server"
)

// newTestBackend spins up the full API over in-memory repositories so the
// store exercises the real handlers, routing and wire format.
func newTestBackend(t *testing.T) *httptest.Server {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("RedBoys@123"), bcrypt.MinCost)
	assert.NoError(t, err)

	authService := auth.NewService(auth.NewJWTManager("test-secret"), "admin", string(hash))
	authHandler := auth.NewHandler(authService, server.RespondJSON, server.RespondError)

	memberService := members.NewService(&members.MockMemberRepository{})
	memberHandler := members.NewHandler(memberService, server.RespondJSON, server.RespondError)

	budgetService := budgets.NewService(&budgets.MockBudgetRepository{})
	budgetHandler := budgets.NewHandler(budgetService, server.RespondJSON, server.RespondError)

	eventService := events.NewService(&events.MockEventRepository{}, budgetService)
	eventHandler := events.NewHandler(eventService, server.RespondJSON, server.RespondError)

	srv := server.New(
		authHandler,
		authService,
		memberHandler,
		eventHandler,
		budgetHandler,
		memberService,
		eventService,
		budgetService,
		nil,
	)
	srv.RegisterRoutes()

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(NewClient(newTestBackend(t).URL))
}

func findBudget(state State, eventID string) (Budget, bool) {
	for _, budget := range state.Budgets {
		if budget.EventID == eventID {
			return budget, true
		}
	}
	return Budget{}, false
}

func TestFetchState_SeedsStarterDataset(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	state, err := store.FetchState(ctx)
	assert.NoError(t, err)

	assert.Len(t, state.Members, 4)
	assert.Len(t, state.Events, 2)
	assert.Len(t, state.Budgets, 1)

	// The seeded budget hangs off the completed event.
	var completed Event
	for _, event := range state.Events {
		if event.Status == EventCompleted {
			completed = event
		}
	}
	assert.Equal(t, "Kabaddi Tournament", completed.Name)

	budget, ok := findBudget(state, completed.ID)
	assert.True(t, ok)
	assert.Equal(t, 7000.0, budget.TotalIncome())
	assert.Equal(t, 4500.0, budget.TotalExpenses())
	assert.Equal(t, 2500.0, budget.Balance())
	for _, entry := range budget.Income {
		assert.NotEmpty(t, entry.ID)
	}

	// A second fetch must not duplicate the dataset.
	again, err := store.FetchState(ctx)
	assert.NoError(t, err)
	assert.Len(t, again.Members, 4)
	assert.Len(t, again.Events, 2)
}

func TestFetchState_SeedGuardSurvivesDeliberateEmptying(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	state, err := store.FetchState(ctx)
	assert.NoError(t, err)

	for _, member := range state.Members {
		assert.NoError(t, store.DeleteMember(ctx, member.ID))
	}
	for _, event := range state.Events {
		assert.NoError(t, store.DeleteEvent(ctx, event.ID))
	}

	emptied, err := store.FetchState(ctx)
	assert.NoError(t, err)
	assert.Empty(t, emptied.Members)
	assert.Empty(t, emptied.Events)
}

func TestFetchState_FailureKeepsPreviousSnapshot(t *testing.T) {
	ctx := context.Background()

	ts := newTestBackend(t)
	store := New(NewClient(ts.URL))

	state, err := store.FetchState(ctx)
	assert.NoError(t, err)
	assert.Len(t, state.Members, 4)

	ts.Close()

	stale, err := store.FetchState(ctx)
	assert.Error(t, err)
	assert.Len(t, stale.Members, 4)
	assert.Len(t, stale.Events, 2)
}

func TestFetchBudget_LazilyCreatesAndPersists(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	event, err := store.AddEvent(ctx, Event{
		Name: "Independence Day March", Date: "2025-08-15", Status: EventUpcoming,
	})
	assert.NoError(t, err)

	budget, err := store.FetchBudget(ctx, event.ID)
	assert.NoError(t, err)
	assert.Equal(t, event.ID, budget.EventID)
	assert.Empty(t, budget.Income)
	assert.Empty(t, budget.Expenses)

	// The lazily created document is persisted, not synthesized per call.
	budgets, err := store.client.ListBudgets(ctx)
	assert.NoError(t, err)
	assert.Len(t, budgets, 1)
	assert.Equal(t, event.ID, budgets[0].EventID)
}

func TestAddIncome_ServerAssignsEntryID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	event, err := store.AddEvent(ctx, Event{Name: "Diwali Night", Date: "2025-10-20", Status: EventUpcoming})
	assert.NoError(t, err)

	entry, err := store.AddIncome(ctx, event.ID, IncomeEntry{
		Contributor: "Member Fund", Amount: 100, Date: "2025-10-01",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, 100.0, entry.Amount)

	budget := store.GetBudgetByEvent(event.ID)
	assert.Equal(t, 100.0, budget.TotalIncome())

	// The assigned id is immediately usable for deletion.
	assert.NoError(t, store.DeleteIncome(ctx, event.ID, entry.ID))
	assert.Equal(t, 0.0, store.GetBudgetByEvent(event.ID).TotalIncome())
}

func TestAddExpense_AffectsBalance(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	event, err := store.AddEvent(ctx, Event{Name: "Temple Cleanup", Date: "2025-06-01", Status: EventUpcoming})
	assert.NoError(t, err)

	_, err = store.AddIncome(ctx, event.ID, IncomeEntry{Contributor: "Donations", Amount: 800, Date: "2025-05-20"})
	assert.NoError(t, err)
	_, err = store.AddExpense(ctx, event.ID, ExpenseEntry{Description: "Brooms", Amount: 300, Date: "2025-05-21"})
	assert.NoError(t, err)

	budget := store.GetBudgetByEvent(event.ID)
	assert.Equal(t, 500.0, budget.Balance())
	assert.Equal(t, "+₹500", budget.FormatBalance())
}

func TestUpdateBudget_RoundTripIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	event, err := store.AddEvent(ctx, Event{Name: "New Year Feast", Date: "2025-12-31", Status: EventUpcoming})
	assert.NoError(t, err)

	_, err = store.AddIncome(ctx, event.ID, IncomeEntry{Contributor: "Member Fund", Amount: 1200, Date: "2025-12-01"})
	assert.NoError(t, err)

	fetched, err := store.FetchBudget(ctx, event.ID)
	assert.NoError(t, err)

	// Writing back an unmodified budget must not change entries or ids.
	stored, err := store.UpdateBudget(ctx, fetched)
	assert.NoError(t, err)
	assert.Equal(t, fetched.Income, stored.Income)
	assert.Equal(t, fetched.Expenses, stored.Expenses)
}

func TestDeleteEvent_CascadesBudget(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	event, err := store.AddEvent(ctx, Event{Name: "Cricket Match", Date: "2025-03-10", Status: EventUpcoming})
	assert.NoError(t, err)

	_, err = store.AddExpense(ctx, event.ID, ExpenseEntry{Description: "Ball", Amount: 250, Date: "2025-03-01"})
	assert.NoError(t, err)

	assert.NoError(t, store.DeleteEvent(ctx, event.ID))

	budgets, err := store.client.ListBudgets(ctx)
	assert.NoError(t, err)
	assert.Empty(t, budgets)

	// Re-fetching yields a fresh empty budget, not the deleted ledger.
	recreated, err := store.FetchBudget(ctx, event.ID)
	assert.NoError(t, err)
	assert.Empty(t, recreated.Income)
	assert.Empty(t, recreated.Expenses)
}

func TestSearchMembers(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.FetchState(ctx)
	assert.NoError(t, err)

	matches := store.SearchMembers("arun")
	assert.Len(t, matches, 1)
	assert.Equal(t, "Arun Kumar", matches[0].Name)

	assert.Len(t, store.SearchMembers(""), 4)
	assert.Empty(t, store.SearchMembers("zzz"))
}

func TestEventsByDateDesc(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.FetchState(ctx)
	assert.NoError(t, err)

	_, err = store.AddEvent(ctx, Event{Name: "Old Gathering", Date: "2023-05-01", Status: EventCompleted})
	assert.NoError(t, err)
	_, err = store.FetchState(ctx)
	assert.NoError(t, err)

	events := store.EventsByDateDesc()
	assert.Len(t, events, 3)
	assert.Equal(t, "Pongal Celebration 2025", events[0].Name)
	assert.Equal(t, "Kabaddi Tournament", events[1].Name)
	assert.Equal(t, "Old Gathering", events[2].Name)
}

func TestResetData_RequiresLoginAndReseeds(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	state, err := store.FetchState(ctx)
	assert.NoError(t, err)

	// Mutate away from the starter dataset.
	assert.NoError(t, store.DeleteMember(ctx, state.Members[0].ID))

	// Without the admin token the reset is rejected.
	err = store.ResetData(ctx)
	assert.Error(t, err)

	assert.Error(t, store.Login(ctx, "admin", "wrong"))
	assert.NoError(t, store.Login(ctx, "admin", "RedBoys@123"))

	assert.NoError(t, store.ResetData(ctx))

	restored := store.GetState()
	assert.Len(t, restored.Members, 4)
	assert.Len(t, restored.Events, 2)
	assert.Len(t, restored.Budgets, 1)
}
