package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bizledger/internal/activity"
	"github.com/cleared-dev/bizledger/internal/app"
)

func newActivityCommand(g *globalOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, a *app.App) error {
				var entries []activity.Entry
				var err error
				switch u := a.State().User; {
				case all:
					entries, err = a.Activity().Read()
				case u != nil:
					entries, err = a.Activity().ForUser(u.ID)
				default:
					return fmt.Errorf("not logged in: pass --all to see every entry")
				}
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					headerStyle.Render("Time"),
					headerStyle.Render("Action"),
					headerStyle.Render("Transaction"),
					headerStyle.Render("Details"))
				for _, e := range entries {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
						e.Timestamp.Local().Format(time.DateTime), e.Action, e.TransactionID, e.Details)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include entries from every user")

	return cmd
}
