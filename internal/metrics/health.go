package metrics

import "math"

// Health labels, best first.
const (
	HealthExcellent      = "Excellent"
	HealthGood           = "Good"
	HealthFair           = "Fair"
	HealthNeedsAttention = "Needs Attention"
)

// HealthScore folds margin and trend into a 0-100 heuristic:
// base 50, up to +40 from margin, up to +20 from income growth and
// up to -20 from expense growth.
func HealthScore(profitMargin, incomeChange, expenseChange float64) int {
	score := 50.0
	score += math.Min(profitMargin*0.4, 40)
	score += math.Min(incomeChange*0.2, 20)
	score -= math.Min(math.Max(expenseChange, 0)*0.2, 20)

	// Halves round up, toward positive infinity.
	score = math.Floor(score + 0.5)
	return int(math.Max(0, math.Min(score, 100)))
}

// HealthLabel maps a score to its band.
func HealthLabel(score int) string {
	switch {
	case score >= 80:
		return HealthExcellent
	case score >= 60:
		return HealthGood
	case score >= 40:
		return HealthFair
	default:
		return HealthNeedsAttention
	}
}
