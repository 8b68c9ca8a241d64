package period

import (
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

func tx(id string, d time.Time) model.Transaction {
	return model.Transaction{ID: id, Amount: decimal.NewFromInt(1), Category: "Other", Date: d, Kind: model.KindExpense}
}

func TestWindowFor(t *testing.T) {
	// 2024-03-13 is a Wednesday.
	ref := date(2024, 3, 13)
	tests := []struct {
		period     model.Period
		start, end time.Time
	}{
		{model.PeriodDaily, date(2024, 3, 13), date(2024, 3, 13)},
		{model.PeriodWeekly, date(2024, 3, 10), date(2024, 3, 16)},
		{model.PeriodMonthly, date(2024, 3, 1), date(2024, 3, 31)},
		{model.PeriodQuarterly, date(2024, 1, 1), date(2024, 3, 31)},
		{model.PeriodYearly, date(2024, 1, 1), date(2024, 12, 31)},
	}
	for _, tt := range tests {
		w, err := WindowFor(tt.period, ref)
		require.NoError(t, err)
		assert.Equal(t, tt.start, w.Start, "%s start", tt.period)
		assert.Equal(t, tt.end, w.End, "%s end", tt.period)
	}
}

func TestWindowFor_WeekStartsOnSunday(t *testing.T) {
	w, err := WindowFor(model.PeriodWeekly, date(2024, 3, 10))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 10), w.Start)

	// A Saturday belongs to the week that began six days earlier.
	w, err = WindowFor(model.PeriodWeekly, date(2024, 3, 16))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 10), w.Start)
}

func TestWindowFor_WeekCrossesYear(t *testing.T) {
	// 2025-01-01 is a Wednesday; the week starts 2024-12-29.
	w, err := WindowFor(model.PeriodWeekly, date(2025, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 12, 29), w.Start)
	assert.Equal(t, date(2025, 1, 4), w.End)
}

func TestWindowFor_Quarters(t *testing.T) {
	tests := []struct {
		month   int
		start   time.Time
		end     time.Time
		quarter int
	}{
		{2, date(2024, 1, 1), date(2024, 3, 31), 1},
		{4, date(2024, 4, 1), date(2024, 6, 30), 2},
		{9, date(2024, 7, 1), date(2024, 9, 30), 3},
		{12, date(2024, 10, 1), date(2024, 12, 31), 4},
	}
	for _, tt := range tests {
		w, err := WindowFor(model.PeriodQuarterly, date(2024, tt.month, 15))
		require.NoError(t, err)
		assert.Equal(t, tt.start, w.Start)
		assert.Equal(t, tt.end, w.End)
		assert.Equal(t, tt.quarter, w.Quarter())
	}
}

func TestWindowFor_LeapFebruary(t *testing.T) {
	w, err := WindowFor(model.PeriodMonthly, date(2024, 2, 10))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 29), w.End)
}

func TestWindowFor_UnknownPeriod(t *testing.T) {
	_, err := WindowFor(model.Period("hourly"), date(2024, 1, 1))
	assert.Error(t, err)
}

func TestPreviousMonth(t *testing.T) {
	w := PreviousMonth(date(2024, 1, 15))
	assert.Equal(t, date(2023, 12, 1), w.Start)
	assert.Equal(t, date(2023, 12, 31), w.End)

	w = PreviousMonth(date(2024, 3, 31))
	assert.Equal(t, date(2024, 2, 1), w.Start)
	assert.Equal(t, date(2024, 2, 29), w.End)
}

func TestClassify_InclusiveBoundaries(t *testing.T) {
	txs := []model.Transaction{
		tx("before", date(2024, 2, 29)),
		tx("first", date(2024, 3, 1)),
		tx("mid", date(2024, 3, 15)),
		tx("last", date(2024, 3, 31)),
		tx("after", date(2024, 4, 1)),
	}

	got, err := Classify(txs, model.PeriodMonthly, date(2024, 3, 13))
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, g := range got {
		ids[i] = g.ID
	}
	assert.Equal(t, []string{"first", "mid", "last"}, ids)
}

func TestClassify_Idempotent(t *testing.T) {
	var txs []model.Transaction
	for d := date(2023, 11, 1); d.Before(date(2024, 5, 1)); d = d.AddDate(0, 0, 3) {
		txs = append(txs, tx(d.Format(model.DateFormat), d))
	}
	ref := date(2024, 1, 3)

	for _, p := range model.Periods {
		once, err := Classify(txs, p, ref)
		require.NoError(t, err)
		twice, err := Classify(once, p, ref)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "period %s", p)
	}
}

func TestClassify_ReferenceTimeOfDay(t *testing.T) {
	txs := []model.Transaction{tx("today", date(2024, 6, 1))}
	ref := time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)

	got, err := Classify(txs, model.PeriodDaily, ref)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLabel(t *testing.T) {
	ref := date(2024, 3, 13)
	tests := []struct {
		period model.Period
		want   string
	}{
		{model.PeriodDaily, "Daily Report - 2024-03-13"},
		{model.PeriodWeekly, "Weekly Report - 3/10/2024 to 3/16/2024"},
		{model.PeriodMonthly, "Monthly Report - March 2024"},
		{model.PeriodQuarterly, "Quarterly Report - Q1 2024"},
		{model.PeriodYearly, "Yearly Report - 2024"},
	}
	for _, tt := range tests {
		w, err := WindowFor(tt.period, ref)
		require.NoError(t, err)
		assert.Equal(t, tt.want, w.Label())
	}
}
