package budgets

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IncomeEntry is a single contribution line inside a budget. Entries carry
// their own server-assigned id so they can be edited and deleted.
type IncomeEntry struct {
	ID          string  `bson:"id" json:"id"`
	Contributor string  `bson:"contributor" json:"contributor"`
	Amount      float64 `bson:"amount" json:"amount"`
	Date        string  `bson:"date" json:"date"`
}

// ExpenseEntry is a single spending line inside a budget.
type ExpenseEntry struct {
	ID          string  `bson:"id" json:"id"`
	Description string  `bson:"description" json:"description"`
	Amount      float64 `bson:"amount" json:"amount"`
	Date        string  `bson:"date" json:"date"`
}

// Budget holds the income and expense ledger for one event. There is at
// most one budget per event, enforced by upsert-on-write rather than a
// schema constraint.
type Budget struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	EventID  string             `bson:"eventId" json:"eventId"`
	Income   []IncomeEntry      `bson:"income" json:"income"`
	Expenses []ExpenseEntry     `bson:"expenses" json:"expenses"`
}

func (b *Budget) TotalIncome() float64 {
	var total float64
	for _, entry := range b.Income {
		total += entry.Amount
	}
	return total
}

func (b *Budget) TotalExpenses() float64 {
	var total float64
	for _, entry := range b.Expenses {
		total += entry.Amount
	}
	return total
}

// Balance is always derived, never stored.
func (b *Budget) Balance() float64 {
	return b.TotalIncome() - b.TotalExpenses()
}

// FormatBalance renders an amount the way the site displays balances:
// non-negative values (zero included) get a leading "+", negative values
// keep their sign after the currency mark, thousands are grouped.
//
//	FormatBalance(2500)  // "+₹2,500"
//	FormatBalance(-500)  // "₹-500"
func FormatBalance(amount float64) string {
	if amount >= 0 {
		return "+₹" + groupThousands(amount)
	}
	return "₹" + groupThousands(amount)
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
