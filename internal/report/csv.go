package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bizledger/internal/model"
)

// CSVHeader is the first line of every CSV export.
const CSVHeader = "Date,Type,Category,Description,Amount"

const (
	numFields   = 5
	colDate     = 0
	colType     = 1
	colCategory = 2
	colDesc     = 3
	colAmount   = 4
)

// WriteCSV writes the report's transactions, one row each.
func WriteCSV(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, CSVHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, tx := range r.Transactions {
		if _, err := fmt.Fprintln(bw, MarshalRow(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return bw.Flush()
}

// MarshalRow converts a transaction to a CSV line. The description is always
// quoted; other text fields only when they need it.
func MarshalRow(tx model.Transaction) string {
	row := make([]string, numFields)
	row[colDate] = tx.Date.Format(model.DateFormat)
	row[colType] = string(tx.Kind)
	row[colCategory] = field(tx.Category)
	row[colDesc] = quote(tx.Description)
	row[colAmount] = tx.Amount.StringFixed(2)
	return strings.Join(row, ",")
}

// ReadCSV parses an export back into transactions. IDs are not exported
// and come back empty.
func ReadCSV(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading report CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var txs []model.Transaction
	for i, rec := range records[1:] {
		tx, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// UnmarshalRow converts parsed CSV fields to a transaction.
func UnmarshalRow(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := model.ParseDate(record[colDate])
	if err != nil {
		return model.Transaction{}, err
	}
	kind, err := model.ParseKind(record[colType])
	if err != nil {
		return model.Transaction{}, err
	}
	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Transaction{
		Amount:      amount,
		Category:    record[colCategory],
		Description: record[colDesc],
		Date:        date,
		Kind:        kind,
	}, nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func field(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}
	return s
}
