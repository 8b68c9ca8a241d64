package ledger

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bizledger/internal/model"
)

// Input is an unvalidated transaction submission as typed by the user.
type Input struct {
	Amount      string
	Category    string
	Description string
	Date        string // YYYY-MM-DD; empty means today
	Kind        string // empty means expense
}

// ValidationError describes one malformed or missing field.
type ValidationError struct {
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

// MaxAmountDigits bounds the whole-unit digits of an amount.
const MaxAmountDigits = 12

// amountPattern is plain decimal notation: optional sign, digits, optional
// fraction. Exponents and grouping separators are not accepted.
var amountPattern = regexp.MustCompile(`^(-?)(\d*)(?:\.(\d*))?$`)

// ValidationErrors is every problem found in one submission.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, ve := range v {
		msgs[i] = ve.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validate checks in and returns the transaction it describes, without an
// ID. Amounts must be non-negative with at most 2 decimal places.
func Validate(in Input, today time.Time) (model.Transaction, error) {
	var errs ValidationErrors
	tx := model.Transaction{
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
	}

	amount := strings.TrimSpace(in.Amount)
	if d, verr := parseAmount(amount); verr != nil {
		errs = append(errs, *verr)
	} else {
		tx.Amount = d
	}

	if tx.Category == "" {
		errs = append(errs, ValidationError{Field: "category", Description: "is required"})
	}

	tx.Kind = model.KindExpense
	if in.Kind != "" {
		k, err := model.ParseKind(strings.ToLower(strings.TrimSpace(in.Kind)))
		if err != nil {
			errs = append(errs, ValidationError{Field: "type", Description: err.Error()})
		}
		tx.Kind = k
	}

	tx.Date = model.Day(today)
	if in.Date != "" {
		d, err := model.ParseDate(strings.TrimSpace(in.Date))
		if err != nil {
			errs = append(errs, ValidationError{Field: "date", Description: err.Error()})
		}
		tx.Date = d
	}

	if len(errs) > 0 {
		return model.Transaction{}, errs
	}
	return tx, nil
}

func parseAmount(s string) (decimal.Decimal, *ValidationError) {
	fail := func(format string, args ...any) (decimal.Decimal, *ValidationError) {
		return decimal.Zero, &ValidationError{Field: "amount", Description: fmt.Sprintf(format, args...)}
	}
	if s == "" {
		return fail("is required")
	}
	m := amountPattern.FindStringSubmatch(s)
	if m == nil || m[2]+m[3] == "" {
		return fail("%q is not a number", s)
	}
	sign, whole, frac := m[1], m[2], m[3]
	if sign == "-" && strings.Trim(whole+frac, "0") != "" {
		return fail("must not be negative")
	}
	if len(frac) > 2 {
		return fail("%s has more than 2 decimal places", s)
	}
	if len(strings.TrimLeft(whole, "0")) > MaxAmountDigits {
		return fail("%s exceeds %d digits", s, MaxAmountDigits)
	}
	if whole == "" {
		whole = "0"
	}
	if frac != "" {
		whole += "." + frac
	}
	d, err := decimal.NewFromString(whole)
	if err != nil {
		return fail("%q is not a number", s)
	}
	return d, nil
}
