package members

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockMemberRepository is an in-memory Repository used in tests.
type MockMemberRepository struct {
	Members  []Member
	FailWith error
}

func (m *MockMemberRepository) FindAll(ctx context.Context) ([]Member, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	members := make([]Member, len(m.Members))
	copy(members, m.Members)
	return members, nil
}

func (m *MockMemberRepository) Insert(ctx context.Context, member *Member) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	member.ID = primitive.NewObjectID()
	m.Members = append(m.Members, *member)
	return nil
}

func (m *MockMemberRepository) Update(ctx context.Context, id string, fields bson.M) (*Member, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	for i := range m.Members {
		if m.Members[i].ID.Hex() != id {
			continue
		}
		if v, ok := fields["name"].(string); ok {
			m.Members[i].Name = v
		}
		if v, ok := fields["phone"].(string); ok {
			m.Members[i].Phone = v
		}
		if v, ok := fields["instagram"].(string); ok {
			m.Members[i].Instagram = v
		}
		if v, ok := fields["imageUrl"].(string); ok {
			m.Members[i].ImageURL = v
		}
		member := m.Members[i]
		return &member, nil
	}
	return nil, ErrMemberNotFound
}

func (m *MockMemberRepository) Delete(ctx context.Context, id string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	kept := m.Members[:0]
	for _, member := range m.Members {
		if member.ID.Hex() != id {
			kept = append(kept, member)
		}
	}
	m.Members = kept
	return nil
}

func (m *MockMemberRepository) DeleteAll(ctx context.Context) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.Members = nil
	return nil
}
