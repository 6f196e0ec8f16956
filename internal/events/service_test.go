package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redboys/portal/internal/budgets"
)

func TestCreate_RejectsInvalidStatus(t *testing.T) {
	repo := &MockEventRepository{}
	budgetService := budgets.NewService(&budgets.MockBudgetRepository{})
	service := NewService(repo, budgetService)

	_, err := service.Create(context.Background(), Event{Name: "Pongal", Date: "2025-01-14", Status: "CANCELLED"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Empty(t, repo.Events)
}

func TestCreate_AssignsID(t *testing.T) {
	repo := &MockEventRepository{}
	budgetService := budgets.NewService(&budgets.MockBudgetRepository{})
	service := NewService(repo, budgetService)

	event, err := service.Create(context.Background(), Event{Name: "Pongal", Date: "2025-01-14", Status: StatusUpcoming})
	assert.NoError(t, err)
	assert.False(t, event.ID.IsZero())
}

func TestDelete_CascadesBudget(t *testing.T) {
	ctx := context.Background()

	repo := &MockEventRepository{}
	budgetRepo := &budgets.MockBudgetRepository{}
	budgetService := budgets.NewService(budgetRepo)
	service := NewService(repo, budgetService)

	event, err := service.Create(ctx, Event{Name: "Kabaddi Tournament", Date: "2024-12-15", Status: StatusCompleted})
	assert.NoError(t, err)

	_, err = budgetService.GetOrCreate(ctx, event.ID.Hex())
	assert.NoError(t, err)
	assert.Len(t, budgetRepo.Budgets, 1)

	err = service.Delete(ctx, event.ID.Hex())
	assert.NoError(t, err)

	assert.Empty(t, repo.Events)
	assert.Empty(t, budgetRepo.Budgets)
}

func TestDelete_UnknownIDIsIdempotent(t *testing.T) {
	repo := &MockEventRepository{}
	budgetService := budgets.NewService(&budgets.MockBudgetRepository{})
	service := NewService(repo, budgetService)

	err := service.Delete(context.Background(), "does-not-exist")
	assert.NoError(t, err)
}

func TestUpdate_TogglesStatus(t *testing.T) {
	ctx := context.Background()

	repo := &MockEventRepository{}
	budgetService := budgets.NewService(&budgets.MockBudgetRepository{})
	service := NewService(repo, budgetService)

	event, err := service.Create(ctx, Event{Name: "Pongal", Date: "2025-01-14", Status: StatusUpcoming})
	assert.NoError(t, err)

	updated, err := service.Update(ctx, event.ID.Hex(), map[string]interface{}{"status": "COMPLETED"})
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
}
