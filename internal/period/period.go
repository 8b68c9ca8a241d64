// Package period buckets transactions into calendar reporting windows.
package period

import (
	"fmt"
	"time"

	"github.com/cleared-dev/bizledger/internal/model"
)

// Window is an inclusive range of calendar days.
type Window struct {
	Period model.Period
	Start  time.Time // first day, UTC midnight
	End    time.Time // last day, UTC midnight
}

// WindowFor returns the window of kind p that contains ref.
func WindowFor(p model.Period, ref time.Time) (Window, error) {
	day := model.Day(ref)
	y, m, _ := day.Date()

	var start, end time.Time
	switch p {
	case model.PeriodDaily:
		start, end = day, day
	case model.PeriodWeekly:
		start = day.AddDate(0, 0, -int(day.Weekday()))
		end = start.AddDate(0, 0, 6)
	case model.PeriodMonthly:
		start = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	case model.PeriodQuarterly:
		q := (int(m) - 1) / 3
		start = time.Date(y, time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 3, -1)
	case model.PeriodYearly:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		return Window{}, fmt.Errorf("unknown report period %q", p)
	}
	return Window{Period: p, Start: start, End: end}, nil
}

// Month returns the calendar month containing ref.
func Month(ref time.Time) Window {
	w, _ := WindowFor(model.PeriodMonthly, ref)
	return w
}

// PreviousMonth returns the calendar month before the one containing ref.
// January rolls back to December of the prior year.
func PreviousMonth(ref time.Time) Window {
	return Month(Month(ref).Start.AddDate(0, 0, -1))
}

// Contains reports whether the calendar day of t lies inside the window.
func (w Window) Contains(t time.Time) bool {
	d := model.Day(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Quarter returns the 1-based quarter number of the window start.
func (w Window) Quarter() int {
	return (int(w.Start.Month())-1)/3 + 1
}

// Label names the window and its dates for report headings.
func (w Window) Label() string {
	switch w.Period {
	case model.PeriodDaily:
		return "Daily Report - " + w.Start.Format(model.DateFormat)
	case model.PeriodWeekly:
		return fmt.Sprintf("Weekly Report - %s to %s", w.Start.Format("1/2/2006"), w.End.Format("1/2/2006"))
	case model.PeriodMonthly:
		return "Monthly Report - " + w.Start.Format("January 2006")
	case model.PeriodQuarterly:
		return fmt.Sprintf("Quarterly Report - Q%d %d", w.Quarter(), w.Start.Year())
	case model.PeriodYearly:
		return fmt.Sprintf("Yearly Report - %d", w.Start.Year())
	}
	return string(w.Period)
}

// Filter returns, in their original order, the transactions dated inside w.
func (w Window) Filter(txs []model.Transaction) []model.Transaction {
	var out []model.Transaction
	for _, tx := range txs {
		if w.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// Classify returns the transactions falling in the p-window around ref.
func Classify(txs []model.Transaction, p model.Period, ref time.Time) ([]model.Transaction, error) {
	w, err := WindowFor(p, ref)
	if err != nil {
		return nil, err
	}
	return w.Filter(txs), nil
}
