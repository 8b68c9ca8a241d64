package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bizledger/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func expense(amount, category string, d time.Time) model.Transaction {
	return model.Transaction{Amount: dec(amount), Category: category, Date: d, Kind: model.KindExpense}
}

func income(amount, category string, d time.Time) model.Transaction {
	return model.Transaction{Amount: dec(amount), Category: category, Date: d, Kind: model.KindIncome}
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, date(2024, 3, 10))

	assert.True(t, s.Current.Income.IsZero())
	assert.True(t, s.Current.Expense.IsZero())
	assert.True(t, s.Current.Profit.IsZero())
	assert.Zero(t, s.Current.ProfitMargin)
	assert.Zero(t, s.Changes.Income)
	assert.Zero(t, s.Changes.Expense)
	assert.Zero(t, s.Changes.Profit)
	assert.Empty(t, s.TopCategories)
	assert.True(t, s.Averages.Income.IsZero())
	assert.True(t, s.Averages.Expense.IsZero())
	assert.Equal(t, 50, s.HealthScore)
	assert.Equal(t, HealthFair, s.HealthLabel)
	assert.Equal(t, "March", s.Current.Name)
	assert.Equal(t, "February", s.Previous.Name)
}

func TestCompute_MonthOverMonth(t *testing.T) {
	ref := date(2024, 3, 15)
	txs := []model.Transaction{
		income("1000", "Sales", date(2024, 3, 2)),
		expense("400", "Rent", date(2024, 3, 3)),
		expense("100", "Travel", date(2024, 3, 20)),
		income("800", "Sales", date(2024, 2, 10)),
		expense("250", "Rent", date(2024, 2, 11)),
		income("999", "Sales", date(2023, 3, 1)), // same month, other year
	}

	s := Compute(txs, ref)

	assert.True(t, s.Current.Income.Equal(dec("1000")))
	assert.True(t, s.Current.Expense.Equal(dec("500")))
	assert.True(t, s.Current.Profit.Equal(dec("500")))
	assert.InDelta(t, 50.0, s.Current.ProfitMargin, 1e-9)
	assert.Equal(t, 3, s.Current.TransactionCount)

	assert.True(t, s.Previous.Income.Equal(dec("800")))
	assert.True(t, s.Previous.Profit.Equal(dec("550")))
	assert.Equal(t, 2, s.Previous.TransactionCount)

	assert.InDelta(t, 25.0, s.Changes.Income, 1e-9)
	assert.InDelta(t, 100.0, s.Changes.Expense, 1e-9)
	assert.InDelta(t, (500.0-550.0)/550.0*100, s.Changes.Profit, 1e-9)

	assert.True(t, s.Averages.Income.Equal(dec("1000")))
	assert.True(t, s.Averages.Expense.Equal(dec("250")))

	// 50 + 20 + 5 - 20 = 55
	assert.Equal(t, 55, s.HealthScore)
	assert.Equal(t, HealthFair, s.HealthLabel)
}

func TestCompute_JanuaryComparesWithDecember(t *testing.T) {
	txs := []model.Transaction{
		income("100", "Sales", date(2023, 12, 31)),
		income("150", "Sales", date(2024, 1, 1)),
	}
	s := Compute(txs, date(2024, 1, 10))

	assert.Equal(t, "December", s.Previous.Name)
	assert.Equal(t, 2023, s.Previous.Year)
	assert.True(t, s.Previous.Income.Equal(dec("100")))
	assert.InDelta(t, 50.0, s.Changes.Income, 1e-9)
}

func TestCompute_NetProfitMatchesRawSums(t *testing.T) {
	ref := date(2024, 5, 1)
	txs := []model.Transaction{
		income("10.10", "Sales", date(2024, 5, 1)),
		income("0.20", "Sales", date(2024, 5, 2)),
		expense("3.33", "Meals", date(2024, 5, 3)),
		expense("0.10", "Meals", date(2024, 5, 31)),
	}

	s := Compute(txs, ref)

	raw := decimal.Zero
	for _, tx := range txs {
		if tx.Kind == model.KindIncome {
			raw = raw.Add(tx.Amount)
		} else {
			raw = raw.Sub(tx.Amount)
		}
	}
	assert.True(t, raw.Equal(s.Current.Profit), "raw %s != profit %s", raw, s.Current.Profit)
	assert.True(t, s.Current.Profit.Equal(dec("6.87")))
}

func TestProfitMargin_ZeroIncome(t *testing.T) {
	for _, exp := range []string{"0", "1", "99999.99"} {
		profit := decimal.Zero.Sub(dec(exp))
		assert.Zero(t, ProfitMargin(decimal.Zero, profit), "expense %s", exp)
	}
}

func TestPercentChange(t *testing.T) {
	assert.Equal(t, 100.0, PercentChange(decimal.Zero, dec("50")))
	assert.Equal(t, 0.0, PercentChange(decimal.Zero, decimal.Zero))
	assert.InDelta(t, -50.0, PercentChange(dec("100"), dec("50")), 1e-9)
	assert.InDelta(t, 200.0, PercentChange(dec("10"), dec("30")), 1e-9)
}

func TestIncomeChange_FromZero(t *testing.T) {
	txs := []model.Transaction{income("50", "Sales", date(2024, 4, 3))}
	s := Compute(txs, date(2024, 4, 20))
	assert.Equal(t, 100.0, s.Changes.Income)
}

func TestProfitChange(t *testing.T) {
	assert.InDelta(t, 50.0, ProfitChange(dec("100"), dec("150")), 1e-9)
	assert.Equal(t, 100.0, ProfitChange(dec("-20"), dec("5")))
	assert.Equal(t, 0.0, ProfitChange(dec("-20"), dec("-40")))
	assert.Equal(t, 0.0, ProfitChange(decimal.Zero, decimal.Zero))
}

func TestTopExpenseCategories(t *testing.T) {
	d := date(2024, 6, 5)
	txs := []model.Transaction{
		expense("100", "Rent", d),
		expense("50", "Rent", d),
		expense("30", "Travel", d),
	}

	got := TopExpenseCategories(txs, TopCategoryLimit)
	require.Len(t, got, 2)
	assert.Equal(t, "Rent", got[0].Category)
	assert.True(t, got[0].Amount.Equal(dec("150")))
	assert.Equal(t, "Travel", got[1].Category)
	assert.True(t, got[1].Amount.Equal(dec("30")))
}

func TestTopExpenseCategories_TiesKeepFirstSeen(t *testing.T) {
	d := date(2024, 6, 5)
	txs := []model.Transaction{
		expense("10", "Meals", d),
		income("500", "Sales", d),
		expense("10", "Software", d),
		expense("20", "Rent", d),
		expense("10", "Insurance", d),
	}

	got := TopExpenseCategories(txs, TopCategoryLimit)
	names := make([]string, len(got))
	for i, c := range got {
		names[i] = c.Category
	}
	assert.Equal(t, []string{"Rent", "Meals", "Software", "Insurance"}, names)
}

func TestTopExpenseCategories_Limit(t *testing.T) {
	d := date(2024, 6, 5)
	var txs []model.Transaction
	for i, c := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		txs = append(txs, expense(decimal.NewFromInt(int64(i+1)).String(), c, d))
	}

	got := TopExpenseCategories(txs, TopCategoryLimit)
	require.Len(t, got, 5)
	assert.Equal(t, "G", got[0].Category)
	assert.Equal(t, "C", got[4].Category)
}

func TestHealthScore(t *testing.T) {
	tests := []struct {
		name                  string
		margin, income, spend float64
		want                  int
	}{
		{"neutral", 0, 0, 0, 50},
		{"capped gains", 10000, 10000, -50, 100},
		{"capped losses", -10000, -10000, 10000, 0},
		{"expense drop ignored", 0, 0, -80, 50},
		{"half rounds up", 1.25, 0, 0, 51},
		{"negative half rounds up", -1.25, 0, 0, 50},
		{"mixed", 30, 10, 20, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HealthScore(tt.margin, tt.income, tt.spend))
		})
	}
}

func TestHealthScore_AlwaysInRange(t *testing.T) {
	values := []float64{-math.MaxFloat64, -1e9, -100, -0.5, 0, 0.5, 100, 1e9, math.MaxFloat64}
	for _, m := range values {
		for _, i := range values {
			for _, e := range values {
				score := HealthScore(m, i, e)
				assert.GreaterOrEqual(t, score, 0)
				assert.LessOrEqual(t, score, 100)
			}
		}
	}
}

func TestHealthLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, HealthExcellent},
		{80, HealthExcellent},
		{79, HealthGood},
		{60, HealthGood},
		{59, HealthFair},
		{40, HealthFair},
		{39, HealthNeedsAttention},
		{0, HealthNeedsAttention},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HealthLabel(tt.score), "score %d", tt.score)
	}
}

func TestSuggest(t *testing.T) {
	ref := date(2024, 6, 15)
	txs := []model.Transaction{
		expense("600", "Rent", date(2024, 6, 1)),
		expense("300", "Marketing", date(2024, 6, 2)),
		expense("100", "Meals", date(2024, 6, 3)),
		expense("500", "Rent", date(2024, 5, 1)),
	}

	got := Suggest(Compute(txs, ref))

	require.Len(t, got.Categories, 2)
	assert.Equal(t, "Rent", got.Categories[0].Category)
	assert.InDelta(t, 60.0, got.Categories[0].Share, 1e-9)
	assert.True(t, got.Categories[0].Review)
	assert.Equal(t, "Marketing", got.Categories[1].Category)
	assert.InDelta(t, 30.0, got.Categories[1].Share, 1e-9)
	assert.True(t, got.Categories[1].Review)
	assert.True(t, got.GrowthAlert)
	assert.InDelta(t, 100.0, got.ExpenseChange, 1e-9)
}

func TestSuggest_NoExpenses(t *testing.T) {
	got := Suggest(Compute(nil, date(2024, 6, 15)))
	assert.Empty(t, got.Categories)
	assert.False(t, got.GrowthAlert)
}
