package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	Income  Type = "INCOME"
	Expense Type = "EXPENSE"
)

type (
	// Type is the direction of a transaction. Amounts are always stored
	// positive; Type carries the sign.
	Type string

	Transaction struct {
		ID       string          `json:"id"`
		Amount   decimal.Decimal `json:"amount"`
		Type     Type            `json:"type"`
		Category string          `json:"category"`
		Date     time.Time       `json:"date"`
		Note     string          `json:"note"`
	}

	// Draft collects the caller-supplied fields of a transaction before it
	// is built. An empty ID mints a new one; a zero Date means "now".
	Draft struct {
		ID       string
		Amount   decimal.Decimal
		Type     Type
		Category string
		Date     time.Time
		Note     string
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrEmptyCategory = errors.New("empty category")
	ErrZeroDate      = errors.New("date cannot be zero")
)

// ParseType accepts "income"/"expense" in any letter case.
func ParseType(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(Income):
		return Income, nil
	case string(Expense):
		return Expense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

// Label returns the display form, "Income" or "Expense".
func (t Type) Label() string {
	switch t {
	case Income:
		return "Income"
	case Expense:
		return "Expense"
	default:
		return string(t)
	}
}

func (t Type) IsValid() bool {
	return t == Income || t == Expense
}

// UnmarshalJSON tolerates legacy payloads that spell the type in mixed case.
func (t *Type) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Build turns the draft into a Transaction.
func (d Draft) Build(now time.Time) Transaction {
	id := d.ID
	if id == "" {
		id = uuid.NewString()
	}
	date := d.Date
	if date.IsZero() {
		date = now
	}
	return Transaction{
		ID:       id,
		Amount:   d.Amount,
		Type:     d.Type,
		Category: d.Category,
		Date:     date,
		Note:     d.Note,
	}
}

// Draft returns a draft carrying the transaction's ID, for edits.
func (t Transaction) Draft() Draft {
	return Draft{
		ID:       t.ID,
		Amount:   t.Amount,
		Type:     t.Type,
		Category: t.Category,
		Date:     t.Date,
		Note:     t.Note,
	}
}

// Validate is meant for input boundaries. The repository stores whatever it
// is given.
func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// Equal compares field by field, using value equality for the amount and
// instant equality for the date.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Amount.Equal(o.Amount) &&
		t.Type == o.Type &&
		t.Category == o.Category &&
		t.Date.Equal(o.Date) &&
		t.Note == o.Note
}
