// Package ledger is the transaction store: an ordered, newest-first list of
// transactions persisted as one blob.
package ledger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bizledger/internal/model"
	"github.com/cleared-dev/bizledger/internal/period"
	"github.com/cleared-dev/bizledger/internal/store"
)

// Ledger is an immutable value; mutating methods return a new Ledger and
// leave the receiver untouched.
type Ledger struct {
	txs []model.Transaction
}

// New builds a ledger from transactions already in newest-first order.
func New(txs []model.Transaction) Ledger {
	return Ledger{txs: slices.Clone(txs)}
}

// All returns a copy of the transactions, newest first.
func (l Ledger) All() []model.Transaction {
	return slices.Clone(l.txs)
}

func (l Ledger) Len() int { return len(l.txs) }

// IDs lists every transaction ID.
func (l Ledger) IDs() []string {
	ids := make([]string, len(l.txs))
	for i, tx := range l.txs {
		ids[i] = tx.ID
	}
	return ids
}

// Add prepends tx.
func (l Ledger) Add(tx model.Transaction) Ledger {
	txs := make([]model.Transaction, 0, len(l.txs)+1)
	txs = append(txs, tx)
	txs = append(txs, l.txs...)
	return Ledger{txs: txs}
}

// Remove drops the transaction with the given ID. ok is false when no such
// transaction exists.
func (l Ledger) Remove(id string) (Ledger, bool) {
	i := slices.IndexFunc(l.txs, func(tx model.Transaction) bool { return tx.ID == id })
	if i < 0 {
		return l, false
	}
	return Ledger{txs: slices.Delete(slices.Clone(l.txs), i, i+1)}, true
}

// Find returns the transaction with the given ID.
func (l Ledger) Find(id string) (model.Transaction, bool) {
	for _, tx := range l.txs {
		if tx.ID == id {
			return tx, true
		}
	}
	return model.Transaction{}, false
}

// CountInMonth counts transactions dated in the calendar month of ref.
func (l Ledger) CountInMonth(ref time.Time) int {
	return len(period.Month(ref).Filter(l.txs))
}

// Totals sums income and expense over every transaction.
func (l Ledger) Totals() (income, expense, net decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, tx := range l.txs {
		switch tx.Kind {
		case model.KindIncome:
			income = income.Add(tx.Amount)
		case model.KindExpense:
			expense = expense.Add(tx.Amount)
		}
	}
	return income, expense, income.Sub(expense)
}

// Load reads the whole ledger from kv. A missing key is an empty ledger.
func Load(ctx context.Context, kv store.KV) (Ledger, error) {
	var txs []model.Transaction
	if _, err := store.GetJSON(ctx, kv, store.KeyTransactions, &txs); err != nil {
		return Ledger{}, fmt.Errorf("loading transactions: %w", err)
	}
	return Ledger{txs: txs}, nil
}

// Save re-serializes the whole ledger into kv.
func Save(ctx context.Context, kv store.KV, l Ledger) error {
	txs := l.txs
	if txs == nil {
		txs = []model.Transaction{}
	}
	if err := store.SetJSON(ctx, kv, store.KeyTransactions, txs); err != nil {
		return fmt.Errorf("saving transactions: %w", err)
	}
	return nil
}
