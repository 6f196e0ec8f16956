package budgets

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type Service interface {
	List(ctx context.Context) ([]Budget, error)
	GetOrCreate(ctx context.Context, eventID string) (*Budget, error)
	Upsert(ctx context.Context, eventID string, budget Budget) (*Budget, error)
	DeleteByEvent(ctx context.Context, eventID string) error
	ResetAll(ctx context.Context) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Budget, error) {
	budgets, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range budgets {
		ensureEntrySlices(&budgets[i])
	}
	return budgets, nil
}

// GetOrCreate returns the budget for an event, lazily persisting an empty
// one on first access. It never reports a missing budget to the caller.
func (s *service) GetOrCreate(ctx context.Context, eventID string) (*Budget, error) {
	budget, err := s.repo.FindByEvent(ctx, eventID)
	if err == nil {
		ensureEntrySlices(budget)
		return budget, nil
	}
	if !errors.Is(err, ErrBudgetNotFound) {
		return nil, err
	}

	budget = &Budget{
		EventID:  eventID,
		Income:   []IncomeEntry{},
		Expenses: []ExpenseEntry{},
	}
	if err := s.repo.Insert(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// Upsert replaces the whole income+expenses document for an event. Entries
// arriving without an id are assigned one here, so the returned document is
// immediately usable for entry-level edits and deletes.
func (s *service) Upsert(ctx context.Context, eventID string, budget Budget) (*Budget, error) {
	budget.EventID = eventID
	ensureEntrySlices(&budget)

	for i := range budget.Income {
		if budget.Income[i].ID == "" {
			budget.Income[i].ID = uuid.NewString()
		}
	}
	for i := range budget.Expenses {
		if budget.Expenses[i].ID == "" {
			budget.Expenses[i].ID = uuid.NewString()
		}
	}

	stored, err := s.repo.Upsert(ctx, &budget)
	if err != nil {
		return nil, err
	}
	ensureEntrySlices(stored)
	return stored, nil
}

func (s *service) DeleteByEvent(ctx context.Context, eventID string) error {
	return s.repo.DeleteByEvent(ctx, eventID)
}

func (s *service) ResetAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

// ensureEntrySlices keeps income/expenses as [] on the wire, never null.
func ensureEntrySlices(b *Budget) {
	if b.Income == nil {
		b.Income = []IncomeEntry{}
	}
	if b.Expenses == nil {
		b.Expenses = []ExpenseEntry{}
	}
}
