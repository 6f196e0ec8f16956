package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Client talks to the portal REST API. All identifier normalization
// happens here, one conversion per entity type, so the rest of the client
// only ever sees the uniform ID field.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// SetToken attaches the admin capability token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Wire documents. The store assigns "_id"; budget entries may carry either
// "id" (server-assigned) or a legacy "_id" subdocument identifier.

type memberDoc struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Instagram string `json:"instagram"`
	ImageURL  string `json:"imageUrl"`
}

func (d memberDoc) normalize() Member {
	return Member{
		ID:        d.ID,
		Name:      d.Name,
		Phone:     d.Phone,
		Instagram: d.Instagram,
		ImageURL:  d.ImageURL,
	}
}

type eventDoc struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	Status      string `json:"status"`
}

func (d eventDoc) normalize() Event {
	return Event{
		ID:          d.ID,
		Name:        d.Name,
		Date:        d.Date,
		Description: d.Description,
		Venue:       d.Venue,
		Status:      EventStatus(d.Status),
	}
}

type incomeDoc struct {
	ID          string  `json:"id"`
	StoreID     string  `json:"_id"`
	Contributor string  `json:"contributor"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

type expenseDoc struct {
	ID          string  `json:"id"`
	StoreID     string  `json:"_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

type budgetDoc struct {
	ID       string       `json:"_id"`
	EventID  string       `json:"eventId"`
	Income   []incomeDoc  `json:"income"`
	Expenses []expenseDoc `json:"expenses"`
}

func (d budgetDoc) normalize() Budget {
	budget := Budget{
		ID:       d.ID,
		EventID:  d.EventID,
		Income:   []IncomeEntry{},
		Expenses: []ExpenseEntry{},
	}
	for _, entry := range d.Income {
		id := entry.ID
		if id == "" {
			id = entry.StoreID
		}
		budget.Income = append(budget.Income, IncomeEntry{
			ID:          id,
			Contributor: entry.Contributor,
			Amount:      entry.Amount,
			Date:        entry.Date,
		})
	}
	for _, entry := range d.Expenses {
		id := entry.ID
		if id == "" {
			id = entry.StoreID
		}
		budget.Expenses = append(budget.Expenses, ExpenseEntry{
			ID:          id,
			Description: entry.Description,
			Amount:      entry.Amount,
			Date:        entry.Date,
		})
	}
	return budget
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not encode request: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var errBody struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		message := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			if errBody.Message != "" {
				message = errBody.Message
			} else if errBody.Error != "" {
				message = errBody.Error
			}
		}
		return fmt.Errorf("server error: %s", message)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("could not decode response: %v", err)
		}
	}
	return nil
}

// Members

func (c *Client) ListMembers(ctx context.Context) ([]Member, error) {
	var docs []memberDoc
	if err := c.do(ctx, http.MethodGet, "/api/members", nil, &docs); err != nil {
		return nil, err
	}
	members := make([]Member, 0, len(docs))
	for _, doc := range docs {
		members = append(members, doc.normalize())
	}
	return members, nil
}

func (c *Client) CreateMember(ctx context.Context, member Member) (Member, error) {
	var doc memberDoc
	if err := c.do(ctx, http.MethodPost, "/api/members", member, &doc); err != nil {
		return Member{}, err
	}
	return doc.normalize(), nil
}

func (c *Client) UpdateMember(ctx context.Context, member Member) error {
	return c.do(ctx, http.MethodPut, "/api/members/"+member.ID, member, nil)
}

func (c *Client) DeleteMember(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/members/"+id, nil, nil)
}

// Events

func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	var docs []eventDoc
	if err := c.do(ctx, http.MethodGet, "/api/events", nil, &docs); err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, doc.normalize())
	}
	return events, nil
}

func (c *Client) CreateEvent(ctx context.Context, event Event) (Event, error) {
	var doc eventDoc
	if err := c.do(ctx, http.MethodPost, "/api/events", event, &doc); err != nil {
		return Event{}, err
	}
	return doc.normalize(), nil
}

func (c *Client) UpdateEvent(ctx context.Context, event Event) error {
	return c.do(ctx, http.MethodPut, "/api/events/"+event.ID, event, nil)
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/events/"+id, nil, nil)
}

// Budgets

func (c *Client) ListBudgets(ctx context.Context) ([]Budget, error) {
	var docs []budgetDoc
	if err := c.do(ctx, http.MethodGet, "/api/budgets", nil, &docs); err != nil {
		return nil, err
	}
	budgets := make([]Budget, 0, len(docs))
	for _, doc := range docs {
		budgets = append(budgets, doc.normalize())
	}
	return budgets, nil
}

// GetBudget fetches the budget for an event; the server creates an empty
// one if the event has none yet.
func (c *Client) GetBudget(ctx context.Context, eventID string) (Budget, error) {
	var doc budgetDoc
	if err := c.do(ctx, http.MethodGet, "/api/budgets/"+eventID, nil, &doc); err != nil {
		return Budget{}, err
	}
	return doc.normalize(), nil
}

// PutBudget replaces the whole budget document and returns the stored
// version, including server-assigned entry ids.
func (c *Client) PutBudget(ctx context.Context, budget Budget) (Budget, error) {
	var doc budgetDoc
	if err := c.do(ctx, http.MethodPut, "/api/budgets/"+budget.EventID, budget, &doc); err != nil {
		return Budget{}, err
	}
	return doc.normalize(), nil
}

// Admin

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return "", err
	}
	return resp.Data.AccessToken, nil
}

func (c *Client) Reset(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/admin/reset", nil, nil)
}

// Health reports the liveness probe.
func (c *Client) Health(ctx context.Context) (map[string]string, error) {
	var status map[string]string
	if err := c.do(ctx, http.MethodGet, "/health", nil, &status); err != nil {
		return nil, err
	}
	return status, nil
}
