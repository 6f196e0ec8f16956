package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Store owns the in-memory mirror of the three collections. It is an
// explicit state holder created by the composition root and injected into
// views; views read synchronously via GetState and resynchronize by
// calling FetchState after mutations.
//
// Mutators write through to the API and deliberately do not patch the
// snapshot (budget operations excepted): the mirror only ever reflects the
// last server response a fetch brought back.
type Store struct {
	mu     sync.RWMutex
	client *Client
	state  State
	seeded bool
}

func New(client *Client) *Store {
	return &Store{
		client: client,
		state: State{
			Members: []Member{},
			Events:  []Event{},
			Budgets: []Budget{},
		},
	}
}

// GetState returns the current snapshot without any network I/O.
func (s *Store) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Members: append([]Member{}, s.state.Members...),
		Events:  append([]Event{}, s.state.Events...),
		Budgets: append([]Budget{}, s.state.Budgets...),
	}
}

// FetchState retrieves all three collections and replaces the snapshot.
// On any failure the previous snapshot is left untouched, so callers keep
// rendering stale-but-valid data.
//
// When members and events are both empty, the starter dataset is seeded
// once per Store lifetime and the state re-fetched. A store emptied later
// by deliberate deletion stays empty; ResetData rearms the guard.
func (s *Store) FetchState(ctx context.Context) (State, error) {
	members, err := s.client.ListMembers(ctx)
	if err != nil {
		return s.GetState(), err
	}
	events, err := s.client.ListEvents(ctx)
	if err != nil {
		return s.GetState(), err
	}
	budgets, err := s.client.ListBudgets(ctx)
	if err != nil {
		return s.GetState(), err
	}

	if len(members) == 0 && len(events) == 0 && !s.markSeeded() {
		if err := s.seed(ctx); err != nil {
			return s.GetState(), err
		}
		return s.FetchState(ctx)
	}

	s.mu.Lock()
	s.state = State{Members: members, Events: events, Budgets: budgets}
	s.mu.Unlock()

	return s.GetState(), nil
}

// markSeeded flips the seed guard and reports whether it was already set.
func (s *Store) markSeeded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	already := s.seeded
	s.seeded = true
	return already
}

// Members

func (s *Store) AddMember(ctx context.Context, member Member) (Member, error) {
	return s.client.CreateMember(ctx, member)
}

func (s *Store) UpdateMember(ctx context.Context, member Member) error {
	return s.client.UpdateMember(ctx, member)
}

func (s *Store) DeleteMember(ctx context.Context, id string) error {
	return s.client.DeleteMember(ctx, id)
}

// SearchMembers filters the cached directory by name, case-insensitively.
func (s *Store) SearchMembers(query string) []Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	matches := []Member{}
	for _, member := range s.state.Members {
		if strings.Contains(strings.ToLower(member.Name), query) {
			matches = append(matches, member)
		}
	}
	return matches
}

// Events

func (s *Store) AddEvent(ctx context.Context, event Event) (Event, error) {
	return s.client.CreateEvent(ctx, event)
}

func (s *Store) UpdateEvent(ctx context.Context, event Event) error {
	return s.client.UpdateEvent(ctx, event)
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	return s.client.DeleteEvent(ctx, id)
}

// EventsByDateDesc returns the cached events sorted newest-first, the
// order the timeline renders them in.
func (s *Store) EventsByDateDesc() []Event {
	s.mu.RLock()
	events := append([]Event{}, s.state.Events...)
	s.mu.RUnlock()

	// Dates are calendar days in YYYY-MM-DD form, so lexical order is
	// chronological order.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date > events[j].Date
	})
	return events
}

// Budgets

// GetBudgetByEvent looks the budget up in the snapshot. An event with no
// cached budget yields an empty budget shape, not an error.
func (s *Store) GetBudgetByEvent(eventID string) Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, budget := range s.state.Budgets {
		if budget.EventID == eventID {
			return budget
		}
	}
	return Budget{
		EventID:  eventID,
		Income:   []IncomeEntry{},
		Expenses: []ExpenseEntry{},
	}
}

// FetchBudget gets (or lazily creates) the event's budget from the API and
// patches it into the snapshot. This is the read half of every budget
// entry mutation.
func (s *Store) FetchBudget(ctx context.Context, eventID string) (Budget, error) {
	budget, err := s.client.GetBudget(ctx, eventID)
	if err != nil {
		return Budget{}, err
	}
	s.patchBudget(budget)
	return budget, nil
}

// UpdateBudget writes the whole budget through to the API and adopts the
// stored document, including server-assigned entry ids, into the snapshot.
// Concurrent writers race under last-write-wins; there is no version check.
func (s *Store) UpdateBudget(ctx context.Context, budget Budget) (Budget, error) {
	stored, err := s.client.PutBudget(ctx, budget)
	if err != nil {
		return Budget{}, err
	}
	s.patchBudget(stored)
	return stored, nil
}

func (s *Store) patchBudget(budget Budget) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Budgets {
		if s.state.Budgets[i].EventID == budget.EventID {
			s.state.Budgets[i] = budget
			return
		}
	}
	s.state.Budgets = append(s.state.Budgets, budget)
}

// AddIncome appends an income entry and writes the whole budget back. The
// returned entry carries the id the server assigned, so it is immediately
// editable and deletable.
func (s *Store) AddIncome(ctx context.Context, eventID string, entry IncomeEntry) (IncomeEntry, error) {
	budget, err := s.FetchBudget(ctx, eventID)
	if err != nil {
		return IncomeEntry{}, err
	}

	entry.ID = ""
	budget.Income = append(budget.Income, entry)

	stored, err := s.UpdateBudget(ctx, budget)
	if err != nil {
		return IncomeEntry{}, err
	}
	return stored.Income[len(stored.Income)-1], nil
}

// AddExpense appends an expense entry, mirroring AddIncome.
func (s *Store) AddExpense(ctx context.Context, eventID string, entry ExpenseEntry) (ExpenseEntry, error) {
	budget, err := s.FetchBudget(ctx, eventID)
	if err != nil {
		return ExpenseEntry{}, err
	}

	entry.ID = ""
	budget.Expenses = append(budget.Expenses, entry)

	stored, err := s.UpdateBudget(ctx, budget)
	if err != nil {
		return ExpenseEntry{}, err
	}
	return stored.Expenses[len(stored.Expenses)-1], nil
}

func (s *Store) DeleteIncome(ctx context.Context, eventID, entryID string) error {
	budget, err := s.FetchBudget(ctx, eventID)
	if err != nil {
		return err
	}

	kept := []IncomeEntry{}
	for _, entry := range budget.Income {
		if entry.ID != entryID {
			kept = append(kept, entry)
		}
	}
	budget.Income = kept

	_, err = s.UpdateBudget(ctx, budget)
	return err
}

func (s *Store) DeleteExpense(ctx context.Context, eventID, entryID string) error {
	budget, err := s.FetchBudget(ctx, eventID)
	if err != nil {
		return err
	}

	kept := []ExpenseEntry{}
	for _, entry := range budget.Expenses {
		if entry.ID != entryID {
			kept = append(kept, entry)
		}
	}
	budget.Expenses = kept

	_, err = s.UpdateBudget(ctx, budget)
	return err
}

// Admin

// Login obtains the admin capability token and holds it for subsequent
// requests.
func (s *Store) Login(ctx context.Context, username, password string) error {
	token, err := s.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	s.client.SetToken(token)
	return nil
}

// ResetData drops all server-side collections, rearms the seed guard and
// re-fetches, which seeds the starter dataset again.
func (s *Store) ResetData(ctx context.Context) error {
	if err := s.client.Reset(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.seeded = false
	s.state = State{Members: []Member{}, Events: []Event{}, Budgets: []Budget{}}
	s.mu.Unlock()

	_, err := s.FetchState(ctx)
	return err
}
