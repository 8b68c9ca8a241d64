package metrics

import "github.com/shopspring/decimal"

const (
	suggestionCategories = 2
	reviewShare          = 25.0
	growthAlertThreshold = 10.0
)

// CategorySuggestion describes how much one large category weighs on spending.
type CategorySuggestion struct {
	Category string
	Amount   decimal.Decimal
	Share    float64 // percent of the month's expenses
	Review   bool    // share above a quarter of spending
}

// Suggestions are the expense optimization hints for a snapshot.
type Suggestions struct {
	Categories    []CategorySuggestion
	GrowthAlert   bool
	ExpenseChange float64
}

// Suggest derives optimization hints from the two biggest expense categories
// and the month-over-month expense trend.
func Suggest(s Snapshot) Suggestions {
	out := Suggestions{
		GrowthAlert:   s.Changes.Expense > growthAlertThreshold,
		ExpenseChange: s.Changes.Expense,
	}
	if !s.Current.Expense.IsPositive() {
		return out
	}

	top := s.TopCategories
	if len(top) > suggestionCategories {
		top = top[:suggestionCategories]
	}
	for _, c := range top {
		share := c.Amount.Div(s.Current.Expense).Mul(hundred).InexactFloat64()
		out.Categories = append(out.Categories, CategorySuggestion{
			Category: c.Category,
			Amount:   c.Amount,
			Share:    share,
			Review:   share > reviewShare,
		})
	}
	return out
}
