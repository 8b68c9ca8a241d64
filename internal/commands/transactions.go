package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bizledger/internal/app"
	"github.com/cleared-dev/bizledger/internal/ledger"
	"github.com/cleared-dev/bizledger/internal/model"
)

func newAddCommand(g *globalOptions) *cobra.Command {
	var in ledger.Input

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, a *app.App) error {
				tx, err := a.AddTransaction(ctx, in)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Added %s %s (%s) on %s [%s]",
					tx.Kind, money(tx.Amount), tx.Category, tx.Date.Format(model.DateFormat), tx.ID)))
				fmt.Fprintln(out, mutedStyle.Render(a.QuotaUsage().String()))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&in.Amount, "amount", "", "amount, e.g. 12.50 (required)")
	cmd.Flags().StringVar(&in.Category, "category", "", "category (required)")
	cmd.Flags().StringVar(&in.Description, "description", "", "free-text note")
	cmd.Flags().StringVar(&in.Date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&in.Kind, "type", string(model.KindExpense), "expense or income")

	return cmd
}

func newDeleteCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.DeleteTransaction(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted transaction %s\n", args[0])
				return nil
			})
		},
	}
}

func newListCommand(g *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.State().Access(a.Now()); err != nil {
					return err
				}
				return writeTransactions(cmd.OutOrStdout(), a.State().Ledger.All(), limit)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many (0 for all)")

	return cmd
}

func writeTransactions(out io.Writer, txs []model.Transaction, limit int) error {
	if len(txs) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("No transactions yet. Add one with 'bizledger add'."))
		return nil
	}
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("ID"),
		headerStyle.Render("Date"),
		headerStyle.Render("Type"),
		headerStyle.Render("Category"),
		headerStyle.Render("Amount"),
		headerStyle.Render("Description"))
	for _, tx := range txs {
		amount := money(tx.Amount)
		if tx.Kind == model.KindIncome {
			amount = goodStyle.Render("+" + amount)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date.Format(model.DateFormat), tx.Kind, tx.Category, amount, tx.Description)
	}
	return w.Flush()
}

func newCategoriesCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories transactions can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, a *app.App) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("Category"), headerStyle.Render("Usually"))
				for _, c := range a.Categories().All() {
					kind := string(c.Kind)
					if kind == "" {
						kind = mutedStyle.Render("either")
					}
					fmt.Fprintf(w, "%s\t%s\n", c.Name, kind)
				}
				return w.Flush()
			})
		},
	}
}
