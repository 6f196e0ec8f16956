package budgets

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockBudgetRepository is an in-memory Repository used in tests.
type MockBudgetRepository struct {
	Budgets  []Budget
	FailWith error
}

func (m *MockBudgetRepository) FindAll(ctx context.Context) ([]Budget, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	budgets := make([]Budget, len(m.Budgets))
	copy(budgets, m.Budgets)
	return budgets, nil
}

func (m *MockBudgetRepository) FindByEvent(ctx context.Context, eventID string) (*Budget, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	for i := range m.Budgets {
		if m.Budgets[i].EventID == eventID {
			budget := m.Budgets[i]
			return &budget, nil
		}
	}
	return nil, ErrBudgetNotFound
}

func (m *MockBudgetRepository) Insert(ctx context.Context, budget *Budget) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	budget.ID = primitive.NewObjectID()
	m.Budgets = append(m.Budgets, *budget)
	return nil
}

func (m *MockBudgetRepository) Upsert(ctx context.Context, budget *Budget) (*Budget, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	for i := range m.Budgets {
		if m.Budgets[i].EventID == budget.EventID {
			budget.ID = m.Budgets[i].ID
			m.Budgets[i] = *budget
			stored := m.Budgets[i]
			return &stored, nil
		}
	}
	budget.ID = primitive.NewObjectID()
	m.Budgets = append(m.Budgets, *budget)
	stored := *budget
	return &stored, nil
}

func (m *MockBudgetRepository) DeleteByEvent(ctx context.Context, eventID string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	kept := m.Budgets[:0]
	for _, budget := range m.Budgets {
		if budget.EventID != eventID {
			kept = append(kept, budget)
		}
	}
	m.Budgets = kept
	return nil
}

func (m *MockBudgetRepository) DeleteAll(ctx context.Context) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.Budgets = nil
	return nil
}
