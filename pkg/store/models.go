// Package store is the client-side state cache for the portal API: an
// in-process mirror of the members, events and budgets collections with
// synchronous read accessors and asynchronous write-through mutators.
//
// Every document read from the API has its store-assigned "_id" renamed to
// the uniform ID field here, at the client boundary; nothing above this
// package ever sees the store's native identifier.
package store

import (
	"strconv"
	"strings"
)

type Member struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Instagram string `json:"instagram"`
	ImageURL  string `json:"imageUrl"`
}

type EventStatus string

const (
	EventUpcoming  EventStatus = "UPCOMING"
	EventCompleted EventStatus = "COMPLETED"
)

type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Venue       string      `json:"venue"`
	Status      EventStatus `json:"status"`
}

type IncomeEntry struct {
	ID          string  `json:"id"`
	Contributor string  `json:"contributor"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

type ExpenseEntry struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

type Budget struct {
	ID       string         `json:"id,omitempty"`
	EventID  string         `json:"eventId"`
	Income   []IncomeEntry  `json:"income"`
	Expenses []ExpenseEntry `json:"expenses"`
}

func (b Budget) TotalIncome() float64 {
	var total float64
	for _, entry := range b.Income {
		total += entry.Amount
	}
	return total
}

func (b Budget) TotalExpenses() float64 {
	var total float64
	for _, entry := range b.Expenses {
		total += entry.Amount
	}
	return total
}

func (b Budget) Balance() float64 {
	return b.TotalIncome() - b.TotalExpenses()
}

// FormatBalance renders the balance the way the ledger header shows it:
// non-negative balances (zero included) get a leading "+", negative ones
// keep their sign after the currency mark.
//
//	+₹2,500
//	₹-500
func (b Budget) FormatBalance() string {
	balance := b.Balance()
	if balance >= 0 {
		return "+₹" + groupThousands(balance)
	}
	return "₹" + groupThousands(balance)
}

func groupThousands(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', -1, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		fracPart = s[i:]
	}

	var sb strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(digit)
	}

	return sign + sb.String() + fracPart
}

// State is one snapshot of the three mirrored collections.
type State struct {
	Members []Member
	Events  []Event
	Budgets []Budget
}
