// Package metrics derives month-over-month analytics from a transaction set.
package metrics

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bizledger/internal/model"
	"github.com/cleared-dev/bizledger/internal/period"
)

// TopCategoryLimit is how many expense categories the ranking keeps.
const TopCategoryLimit = 5

var hundred = decimal.NewFromInt(100)

// MonthSummary aggregates one calendar month.
type MonthSummary struct {
	Name             string // e.g. "January"
	Year             int
	Income           decimal.Decimal
	Expense          decimal.Decimal
	Profit           decimal.Decimal
	ProfitMargin     float64 // percent; 0 when there is no income
	TransactionCount int
}

// Changes holds month-over-month percentage deltas.
type Changes struct {
	Income  float64
	Expense float64
	Profit  float64
}

// CategoryTotal is one ranked expense category.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// Averages holds the mean transaction amount per kind for the current month.
type Averages struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Snapshot is the full analytics view for a reference date.
type Snapshot struct {
	Current       MonthSummary
	Previous      MonthSummary
	Changes       Changes
	TopCategories []CategoryTotal
	Averages      Averages
	HealthScore   int
	HealthLabel   string
}

// Compute builds the analytics snapshot for the month containing ref.
func Compute(txs []model.Transaction, ref time.Time) Snapshot {
	curWin := period.Month(ref)
	prevWin := period.PreviousMonth(ref)
	cur := curWin.Filter(txs)
	prev := prevWin.Filter(txs)

	s := Snapshot{
		Current:       summarize(curWin, cur),
		Previous:      summarize(prevWin, prev),
		TopCategories: TopExpenseCategories(cur, TopCategoryLimit),
		Averages: Averages{
			Income:  average(cur, model.KindIncome),
			Expense: average(cur, model.KindExpense),
		},
	}
	s.Changes = Changes{
		Income:  PercentChange(s.Previous.Income, s.Current.Income),
		Expense: PercentChange(s.Previous.Expense, s.Current.Expense),
		Profit:  ProfitChange(s.Previous.Profit, s.Current.Profit),
	}
	s.HealthScore = HealthScore(s.Current.ProfitMargin, s.Changes.Income, s.Changes.Expense)
	s.HealthLabel = HealthLabel(s.HealthScore)
	return s
}

func summarize(w period.Window, txs []model.Transaction) MonthSummary {
	income, expense := Sum(txs)
	profit := income.Sub(expense)
	return MonthSummary{
		Name:             w.Start.Month().String(),
		Year:             w.Start.Year(),
		Income:           income,
		Expense:          expense,
		Profit:           profit,
		ProfitMargin:     ProfitMargin(income, profit),
		TransactionCount: len(txs),
	}
}

// Sum totals income and expense amounts.
func Sum(txs []model.Transaction) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, tx := range txs {
		switch tx.Kind {
		case model.KindIncome:
			income = income.Add(tx.Amount)
		case model.KindExpense:
			expense = expense.Add(tx.Amount)
		}
	}
	return income, expense
}

// ProfitMargin is profit as a percentage of income, or 0 without income.
func ProfitMargin(income, profit decimal.Decimal) float64 {
	if !income.IsPositive() {
		return 0
	}
	return profit.Div(income).Mul(hundred).InexactFloat64()
}

// PercentChange is the relative change from previous to current in percent.
// A rise from zero counts as 100 and zero-to-zero as 0.
func PercentChange(previous, current decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsPositive() {
			return 100
		}
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(hundred).InexactFloat64()
}

// ProfitChange compares profits, which may be negative. Only a positive
// previous profit is used as a base; otherwise any current profit counts as 100.
func ProfitChange(previous, current decimal.Decimal) float64 {
	if previous.IsPositive() {
		return current.Sub(previous).Div(previous.Abs()).Mul(hundred).InexactFloat64()
	}
	if current.IsPositive() {
		return 100
	}
	return 0
}

// TopExpenseCategories ranks expense categories by summed amount, highest
// first. Equal amounts keep the order in which the category first appeared.
func TopExpenseCategories(txs []model.Transaction, n int) []CategoryTotal {
	var totals []CategoryTotal
	index := make(map[string]int)
	for _, tx := range txs {
		if tx.Kind != model.KindExpense {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(totals)
			index[tx.Category] = i
			totals = append(totals, CategoryTotal{Category: tx.Category, Amount: decimal.Zero})
		}
		totals[i].Amount = totals[i].Amount.Add(tx.Amount)
	}

	slices.SortStableFunc(totals, func(a, b CategoryTotal) int {
		return b.Amount.Cmp(a.Amount)
	})
	if len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

func average(txs []model.Transaction, kind model.Kind) decimal.Decimal {
	sum := decimal.Zero
	count := 0
	for _, tx := range txs {
		if tx.Kind == kind {
			sum = sum.Add(tx.Amount)
			count++
		}
	}
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}
