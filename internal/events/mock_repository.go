package events

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockEventRepository is an in-memory Repository used in tests.
type MockEventRepository struct {
	Events   []Event
	FailWith error
}

func (m *MockEventRepository) FindAll(ctx context.Context) ([]Event, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	events := make([]Event, len(m.Events))
	copy(events, m.Events)
	return events, nil
}

func (m *MockEventRepository) Insert(ctx context.Context, event *Event) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	event.ID = primitive.NewObjectID()
	m.Events = append(m.Events, *event)
	return nil
}

func (m *MockEventRepository) Update(ctx context.Context, id string, fields bson.M) (*Event, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	for i := range m.Events {
		if m.Events[i].ID.Hex() != id {
			continue
		}
		if v, ok := fields["name"].(string); ok {
			m.Events[i].Name = v
		}
		if v, ok := fields["date"].(string); ok {
			m.Events[i].Date = v
		}
		if v, ok := fields["description"].(string); ok {
			m.Events[i].Description = v
		}
		if v, ok := fields["venue"].(string); ok {
			m.Events[i].Venue = v
		}
		if v, ok := fields["status"].(string); ok {
			m.Events[i].Status = Status(v)
		}
		event := m.Events[i]
		return &event, nil
	}
	return nil, ErrEventNotFound
}

func (m *MockEventRepository) Delete(ctx context.Context, id string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	kept := m.Events[:0]
	for _, event := range m.Events {
		if event.ID.Hex() != id {
			kept = append(kept, event)
		}
	}
	m.Events = kept
	return nil
}

func (m *MockEventRepository) DeleteAll(ctx context.Context) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.Events = nil
	return nil
}
