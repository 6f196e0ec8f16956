package budgets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetOrCreate_CreatesEmptyBudget(t *testing.T) {
	repo := &MockBudgetRepository{}
	service := NewService(repo)

	budget, err := service.GetOrCreate(context.Background(), "event-1")
	assert.NoError(t, err)
	assert.Equal(t, "event-1", budget.EventID)
	assert.NotNil(t, budget.Income)
	assert.NotNil(t, budget.Expenses)
	assert.Empty(t, budget.Income)
	assert.Empty(t, budget.Expenses)

	// The empty budget is persisted on first access, not just returned.
	assert.Len(t, repo.Budgets, 1)
	assert.Equal(t, "event-1", repo.Budgets[0].EventID)
}

func TestGetOrCreate_ReturnsExistingBudget(t *testing.T) {
	repo := &MockBudgetRepository{}
	service := NewService(repo)

	_, err := service.Upsert(context.Background(), "event-1", Budget{
		Income: []IncomeEntry{{Contributor: "Member Fund", Amount: 5000, Date: "2024-12-10"}},
	})
	assert.NoError(t, err)

	budget, err := service.GetOrCreate(context.Background(), "event-1")
	assert.NoError(t, err)
	assert.Len(t, budget.Income, 1)
	assert.Len(t, repo.Budgets, 1)
}

func TestUpsert_AssignsEntryIDs(t *testing.T) {
	repo := &MockBudgetRepository{}
	service := NewService(repo)

	stored, err := service.Upsert(context.Background(), "event-1", Budget{
		Income: []IncomeEntry{
			{Contributor: "A", Amount: 100, Date: "2024-01-01"},
			{ID: "existing-id", Contributor: "B", Amount: 200, Date: "2024-01-02"},
		},
		Expenses: []ExpenseEntry{
			{Description: "Snacks", Amount: 50, Date: "2024-01-03"},
		},
	})
	assert.NoError(t, err)

	assert.NotEmpty(t, stored.Income[0].ID)
	assert.Equal(t, "existing-id", stored.Income[1].ID)
	assert.NotEmpty(t, stored.Expenses[0].ID)
	assert.NotEqual(t, stored.Income[0].ID, stored.Expenses[0].ID)
}

func TestUpsert_ReplacesWholeDocument(t *testing.T) {
	repo := &MockBudgetRepository{}
	service := NewService(repo)

	_, err := service.Upsert(context.Background(), "event-1", Budget{
		Income: []IncomeEntry{{Contributor: "A", Amount: 100, Date: "2024-01-01"}},
	})
	assert.NoError(t, err)

	stored, err := service.Upsert(context.Background(), "event-1", Budget{
		Expenses: []ExpenseEntry{{Description: "Flags", Amount: 75, Date: "2024-01-05"}},
	})
	assert.NoError(t, err)

	assert.Empty(t, stored.Income)
	assert.Len(t, stored.Expenses, 1)
	assert.Len(t, repo.Budgets, 1)
}

func TestUpsert_RoundTripPreservesEntries(t *testing.T) {
	repo := &MockBudgetRepository{}
	service := NewService(repo)

	first, err := service.Upsert(context.Background(), "event-1", Budget{
		Income: []IncomeEntry{
			{Contributor: "A", Amount: 100, Date: "2024-01-01"},
			{Contributor: "B", Amount: 200, Date: "2024-01-02"},
		},
		Expenses: []ExpenseEntry{
			{Description: "Snacks", Amount: 50, Date: "2024-01-03"},
			{Description: "Flags", Amount: 75, Date: "2024-01-04"},
		},
	})
	assert.NoError(t, err)

	// Writing the fetched document back unchanged must be a no-op.
	fetched, err := service.GetOrCreate(context.Background(), "event-1")
	assert.NoError(t, err)

	second, err := service.Upsert(context.Background(), "event-1", *fetched)
	assert.NoError(t, err)

	assert.Equal(t, first.Income, second.Income)
	assert.Equal(t, first.Expenses, second.Expenses)
}

func TestDeleteByEvent(t *testing.T) {
	repo := &MockBudgetRepository{}
	service := NewService(repo)

	_, err := service.GetOrCreate(context.Background(), "event-1")
	assert.NoError(t, err)

	err = service.DeleteByEvent(context.Background(), "event-1")
	assert.NoError(t, err)
	assert.Empty(t, repo.Budgets)

	// Deleting a budget that does not exist is not an error.
	err = service.DeleteByEvent(context.Background(), "event-1")
	assert.NoError(t, err)
}
