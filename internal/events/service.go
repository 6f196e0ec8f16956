package events

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

var ErrInvalidStatus = errors.New("event status must be UPCOMING or COMPLETED")

var updatableFields = map[string]bool{
	"name":        true,
	"date":        true,
	"description": true,
	"venue":       true,
	"status":      true,
}

// BudgetDeleter is the slice of the budget service the cascade needs.
type BudgetDeleter interface {
	DeleteByEvent(ctx context.Context, eventID string) error
}

type Service interface {
	List(ctx context.Context) ([]Event, error)
	Create(ctx context.Context, event Event) (*Event, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*Event, error)
	Delete(ctx context.Context, id string) error
	ResetAll(ctx context.Context) error
}

type service struct {
	repo    Repository
	budgets BudgetDeleter
}

func NewService(repo Repository, budgets BudgetDeleter) Service {
	return &service{
		repo:    repo,
		budgets: budgets,
	}
}

func (s *service) List(ctx context.Context) ([]Event, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) Create(ctx context.Context, event Event) (*Event, error) {
	if !event.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.Insert(ctx, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *service) Update(ctx context.Context, id string, updates map[string]interface{}) (*Event, error) {
	fields := bson.M{}
	for key, value := range updates {
		if updatableFields[key] {
			fields[key] = value
		}
	}
	return s.repo.Update(ctx, id, fields)
}

// Delete removes the event and cascades to its budget. Referential
// integrity lives here, not in the database.
func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.budgets.DeleteByEvent(ctx, id)
}

func (s *service) ResetAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
