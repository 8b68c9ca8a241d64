// Package report renders period reports and their export encodings.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bizledger/internal/metrics"
	"github.com/cleared-dev/bizledger/internal/model"
	"github.com/cleared-dev/bizledger/internal/period"
)

// Totals summarizes a report's money flow.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// CategoryLine is one (kind, category) group of the breakdown.
type CategoryLine struct {
	Kind     model.Kind
	Category string
	Amount   decimal.Decimal
	Count    int
}

// Report is a classified transaction set with its totals.
type Report struct {
	Window       period.Window
	Label        string
	Totals       Totals
	Breakdown    []CategoryLine // first-occurrence order
	Transactions []model.Transaction
}

// Generate builds the report for the p-window containing ref.
func Generate(txs []model.Transaction, p model.Period, ref time.Time) (Report, error) {
	w, err := period.WindowFor(p, ref)
	if err != nil {
		return Report{}, err
	}
	in := w.Filter(txs)

	income, expense := metrics.Sum(in)
	return Report{
		Window:       w,
		Label:        w.Label(),
		Totals:       Totals{Income: income, Expense: expense, Net: income.Sub(expense)},
		Breakdown:    breakdown(in),
		Transactions: in,
	}, nil
}

func breakdown(txs []model.Transaction) []CategoryLine {
	type key struct {
		kind     model.Kind
		category string
	}
	var lines []CategoryLine
	index := make(map[key]int)
	for _, tx := range txs {
		k := key{tx.Kind, tx.Category}
		i, ok := index[k]
		if !ok {
			i = len(lines)
			index[k] = i
			lines = append(lines, CategoryLine{Kind: tx.Kind, Category: tx.Category, Amount: decimal.Zero})
		}
		lines[i].Amount = lines[i].Amount.Add(tx.Amount)
		lines[i].Count++
	}
	return lines
}
