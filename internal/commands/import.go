package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bizledger/internal/app"
	"github.com/cleared-dev/bizledger/internal/importer"
)

func newImportCommand(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a bank statement (Chase CSV, OFX or QFX)",
		Long: `Import transactions from a bank statement. Each line is added like a manual
entry, so the monthly limit of your plan applies.

Without a file argument, every statement in <data-dir>/import is imported and
moved to <data-dir>/import/processed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, a *app.App) error {
				out := cmd.OutOrStdout()
				registry := importer.DefaultRegistry()
				if len(args) == 1 {
					res, err := a.Import(ctx, args[0], registry)
					writeImportResult(out, res)
					return err
				}
				results, err := a.ImportPending(ctx, registry)
				if len(results) == 0 && err == nil {
					fmt.Fprintln(out, mutedStyle.Render("No statements waiting in "+importer.Dir(a.Config().Storage.Dir)))
				}
				for _, res := range results {
					writeImportResult(out, res)
				}
				return err
			})
		},
	}
	return cmd
}

func writeImportResult(out io.Writer, res app.ImportResult) {
	fmt.Fprintf(out, "%s: %d added", filepath.Base(res.File), res.Added)
	if res.Skipped > 0 {
		fmt.Fprint(out, warnStyle.Render(fmt.Sprintf(", %d skipped (monthly limit reached)", res.Skipped)))
	}
	if len(res.Invalid) > 0 {
		fmt.Fprintf(out, ", %d invalid", len(res.Invalid))
	}
	fmt.Fprintln(out)
	for _, err := range res.Invalid {
		fmt.Fprintln(out, mutedStyle.Render("  "+err.Error()))
	}
}
