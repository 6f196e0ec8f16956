package members

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// updatableFields mirrors the collection schema: unknown keys in an update
// payload (including "id" and "_id") are silently dropped.
var updatableFields = map[string]bool{
	"name":      true,
	"phone":     true,
	"instagram": true,
	"imageUrl":  true,
}

type Service interface {
	List(ctx context.Context) ([]Member, error)
	Create(ctx context.Context, member Member) (*Member, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*Member, error)
	Delete(ctx context.Context, id string) error
	ResetAll(ctx context.Context) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Member, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) Create(ctx context.Context, member Member) (*Member, error) {
	if err := s.repo.Insert(ctx, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *service) Update(ctx context.Context, id string, updates map[string]interface{}) (*Member, error) {
	fields := bson.M{}
	for key, value := range updates {
		if updatableFields[key] {
			fields[key] = value
		}
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ResetAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
