package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bizledger/internal/app"
	"github.com/cleared-dev/bizledger/internal/model"
	"github.com/cleared-dev/bizledger/internal/report"
)

func newReportCommand(g *globalOptions) *cobra.Command {
	var exportFormat string
	var outDir string

	cmd := &cobra.Command{
		Use:   "report <daily|weekly|monthly|quarterly|yearly>",
		Short: "Summarize a reporting period, optionally exporting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := model.ParsePeriod(args[0])
			if err != nil {
				return err
			}
			var f report.Format
			if exportFormat != "" {
				if f, err = report.ParseFormat(exportFormat); err != nil {
					return err
				}
			}
			return g.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return runReport(cmd.OutOrStdout(), a, p, f, outDir)
			})
		},
	}

	cmd.Flags().StringVar(&exportFormat, "export", "", "write the report to a file (csv or text)")
	cmd.Flags().StringVar(&outDir, "out", "exports", "directory for exported reports")

	return cmd
}

func runReport(out io.Writer, a *app.App, p model.Period, f report.Format, outDir string) error {
	r, err := a.Report(p)
	if err != nil {
		return err
	}
	if err := writeReport(out, r); err != nil {
		return err
	}
	if f == "" {
		return nil
	}

	path, err := a.Export(p, f, outDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, successStyle.Render("Exported "+path))
	return nil
}

func writeReport(out io.Writer, r report.Report) error {
	fmt.Fprintln(out, titleStyle.Render(r.Label))
	fmt.Fprintf(out, "Income %s   Expenses %s   Net %s\n\n",
		money(r.Totals.Income), money(r.Totals.Expense), signed(r.Totals.Net))

	if len(r.Breakdown) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("No transactions in this period."))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("Category"),
		headerStyle.Render("Type"),
		headerStyle.Render("Amount"),
		headerStyle.Render("Count"))
	for _, line := range r.Breakdown {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", line.Category, line.Kind, money(line.Amount), line.Count)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%d transactions", len(r.Transactions))))
	return nil
}
