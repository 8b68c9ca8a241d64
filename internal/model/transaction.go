package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the calendar-day layout used for transaction dates.
const DateFormat = "2006-01-02"

// Kind distinguishes money coming in from money going out.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

// ParseKind converts user input into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return k, nil
}

// Transaction is a single recorded income or expense.
type Transaction struct {
	ID          string
	Amount      decimal.Decimal // never negative
	Category    string
	Description string
	Date        time.Time // UTC midnight of the calendar day
	Kind        Kind
}

// Day truncates t to its calendar day, expressed as UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

type transactionJSON struct {
	ID          string      `json:"id"`
	Amount      json.Number `json:"amount"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	Kind        Kind        `json:"type"`
}

// MarshalJSON writes the stored record shape: amount as a number, date as YYYY-MM-DD.
func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionJSON{
		ID:          t.ID,
		Amount:      json.Number(t.Amount.String()),
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date.Format(DateFormat),
		Kind:        t.Kind,
	})
}

// UnmarshalJSON reads the stored record shape. Records with a negative or
// exponent-form amount or an unknown type are rejected.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw transactionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if strings.ContainsAny(string(raw.Amount), "eE") {
		return fmt.Errorf("amount %q uses exponent notation", raw.Amount)
	}
	amount, err := decimal.NewFromString(string(raw.Amount))
	if err != nil {
		return fmt.Errorf("parsing amount %q: %w", raw.Amount, err)
	}
	if amount.IsNegative() {
		return fmt.Errorf("amount %s is negative", amount)
	}
	if !raw.Kind.Valid() {
		return fmt.Errorf("unknown transaction type %q", raw.Kind)
	}
	date, err := ParseDate(raw.Date)
	if err != nil {
		return err
	}

	*t = Transaction{
		ID:          raw.ID,
		Amount:      amount,
		Category:    raw.Category,
		Description: raw.Description,
		Date:        date,
		Kind:        raw.Kind,
	}
	return nil
}
