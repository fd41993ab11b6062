package expense

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction kinds.
const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

// Payment methods.
const (
	PayCash         = "cash"
	PayCard         = "card"
	PayUPI          = "upi"
	PayBankTransfer = "bank-transfer"
)

// Expense is a single income/expense record owned by exactly one user.
type Expense struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	ExpenseName     string          `json:"expenseName"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	PaymentMethod   string          `json:"paymentMethod"`
	Note            string          `json:"note"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// AddExpenseRequest is the create payload. Amount is accepted as either a
// JSON number or a numeric string, matching what clients actually send.
type AddExpenseRequest struct {
	UserID          string `json:"userId"`
	ExpenseName     string `json:"expenseName"`
	Type            string `json:"type"`
	Amount          any    `json:"amount"`
	Category        string `json:"category"`
	PaymentMethod   string `json:"paymentMethod"`
	Note            string `json:"note"`
	TransactionDate string `json:"transactionDate"`
}

// UpdateExpenseRequest is the partial-update payload. Pointer fields
// distinguish "omitted" (nil) from "explicitly supplied"; supplying an
// empty note clears it. JSON null counts as omitted.
type UpdateExpenseRequest struct {
	ExpenseName     *string `json:"expenseName"`
	Type            *string `json:"type"`
	Amount          any     `json:"amount"`
	Category        *string `json:"category"`
	PaymentMethod   *string `json:"paymentMethod"`
	Note            *string `json:"note"`
	TransactionDate *string `json:"transactionDate"`
}

// UpdateFields carries the validated subset of fields to apply. Nil fields
// are left untouched by the storage layer.
type UpdateFields struct {
	ExpenseName     *string
	Type            *string
	Amount          *decimal.Decimal
	Category        *string
	PaymentMethod   *string
	Note            *string
	TransactionDate *time.Time
}

// Empty reports whether no field was supplied at all.
func (f UpdateFields) Empty() bool {
	return f.ExpenseName == nil && f.Type == nil && f.Amount == nil &&
		f.Category == nil && f.PaymentMethod == nil && f.Note == nil &&
		f.TransactionDate == nil
}

var ErrBadAmount = errors.New("Amount Must be a valid number")

// ParseAmount converts a raw JSON amount (string or number) into an exact
// non-negative decimal. Anything else is a validation failure, never a
// silent zero.
func ParseAmount(v any) (decimal.Decimal, error) {
	var d decimal.Decimal

	switch raw := v.(type) {
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return decimal.Decimal{}, ErrBadAmount
		}
		d = parsed
	case float64:
		d = decimal.NewFromFloat(raw)
	case int:
		d = decimal.NewFromInt(int64(raw))
	case int64:
		d = decimal.NewFromInt(raw)
	default:
		return decimal.Decimal{}, ErrBadAmount
	}

	if d.IsNegative() {
		return decimal.Decimal{}, ErrBadAmount
	}
	return d, nil
}

// ParseTransactionDate accepts either a calendar date or a full RFC 3339
// timestamp, always interpreted in UTC.
func ParseTransactionDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.New("transactionDate must be YYYY-MM-DD or RFC3339")
	}
	return t.UTC(), nil
}
