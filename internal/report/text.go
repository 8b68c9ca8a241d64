package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// WriteText writes the plain-text report: summary, category breakdown and
// detailed transactions under fixed headers.
func WriteText(w io.Writer, r Report, generated time.Time) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "BUSINESS FINANCIAL REPORT")
	fmt.Fprintln(bw, r.Label)
	fmt.Fprintf(bw, "Generated on: %s\n", generated.Format("1/2/2006"))
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "SUMMARY")
	fmt.Fprintln(bw, "=======")
	fmt.Fprintf(bw, "Total Income: $%s\n", r.Totals.Income.StringFixed(2))
	fmt.Fprintf(bw, "Total Expenses: $%s\n", r.Totals.Expense.StringFixed(2))
	fmt.Fprintf(bw, "Net Profit: $%s\n", r.Totals.Net.StringFixed(2))
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "CATEGORY BREAKDOWN")
	fmt.Fprintln(bw, "==================")
	for _, line := range r.Breakdown {
		fmt.Fprintf(bw, "%s (%s): $%s (%d transactions)\n", line.Category, line.Kind, line.Amount.StringFixed(2), line.Count)
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "DETAILED TRANSACTIONS")
	fmt.Fprintln(bw, "====================")
	for _, tx := range r.Transactions {
		fmt.Fprintf(bw, "%s | %s | %s | $%s | %s\n",
			tx.Date.Format("2006-01-02"),
			strings.ToUpper(string(tx.Kind)),
			tx.Category,
			tx.Amount.StringFixed(2),
			tx.Description)
	}

	return bw.Flush()
}
