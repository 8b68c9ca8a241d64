package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bizledger/internal/app"
	"github.com/cleared-dev/bizledger/internal/entitlement"
	"github.com/cleared-dev/bizledger/internal/model"
	"github.com/cleared-dev/bizledger/internal/subscription"
)

func newPlansCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List subscription plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writePlans(cmd.OutOrStdout())
		},
	}
}

func writePlans(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("Tier"),
		headerStyle.Render("Plan"),
		headerStyle.Render("Price"),
		headerStyle.Render("Transactions"),
		headerStyle.Render("Reports"))
	for _, p := range entitlement.Catalogue() {
		rule := entitlement.For(p.Tier)
		periods := make([]string, len(rule.Periods))
		for i, per := range rule.Periods {
			periods[i] = string(per)
		}
		fmt.Fprintf(w, "%s\t%s\t%s/mo\t%s/mo\t%s\n",
			p.Tier, p.Name, money(p.Price), rule.Quota, strings.Join(periods, ", "))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)
	for _, p := range entitlement.Catalogue() {
		fmt.Fprintf(out, "%s %s\n", titleStyle.Render(p.Name+":"), mutedStyle.Render(p.Description))
	}
	return nil
}

func newPlanCommand(g *globalOptions) *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage your subscription",
	}
	planCmd.AddCommand(&cobra.Command{
		Use:   "activate <tier>",
		Short: "Start a trial or switch to a paid plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, err := model.ParseTier(args[0])
			if err != nil {
				return err
			}
			return g.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return runActivate(ctx, cmd.OutOrStdout(), a, tier)
			})
		},
	})
	return planCmd
}

func runActivate(ctx context.Context, out io.Writer, a *app.App, tier model.Tier) error {
	if tier != model.TierTrial {
		fmt.Fprintln(out, mutedStyle.Render("Processing payment..."))
	}
	sub, err := a.Activate(ctx, tier)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("%s plan activated", planName(sub.Tier))
	if sub.Expiry != nil && sub.Tier != model.TierPremium {
		msg += ", renews " + sub.Expiry.Format(model.DateFormat)
	}
	fmt.Fprintln(out, successStyle.Render(msg))
	return nil
}

func planName(t model.Tier) string {
	for _, p := range entitlement.Catalogue() {
		if p.Tier == t {
			return p.Name
		}
	}
	return t.String()
}

func newStatusCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show account, plan and usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, a *app.App) error {
				writeStatus(cmd.OutOrStdout(), a)
				return nil
			})
		},
	}
}

func writeStatus(out io.Writer, a *app.App) {
	st := a.State()
	now := a.Now()
	if st.User == nil {
		fmt.Fprintln(out, "Not signed in. Run 'bizledger login' or 'bizledger signup'.")
		return
	}

	u := st.User
	fmt.Fprintln(out, titleStyle.Render(displayName(u.Name, u.Email)))
	if u.BusinessName != "" {
		fmt.Fprintf(out, "Business: %s\n", u.BusinessName)
	}
	fmt.Fprintf(out, "Plan:     %s\n", planName(u.Subscription.Tier))
	if exp := u.Subscription.Expiry; exp != nil && u.Subscription.Tier != model.TierPremium {
		fmt.Fprintf(out, "Expires:  %s\n", exp.Format(model.DateFormat))
	}

	if err := st.Access(now); err != nil {
		fmt.Fprintln(out, warnStyle.Render(userError(err).Error()))
		return
	}

	if ts := subscription.Trial(u.Subscription, now); ts.Active {
		line := fmt.Sprintf("Trial:    %d days left", ts.DaysLeft)
		if ts.ExpiringSoon {
			line = warnStyle.Render(line + " (expiring soon, choose a plan to keep your data flowing)")
		}
		fmt.Fprintln(out, line)
	}

	usage := a.QuotaUsage()
	fmt.Fprintf(out, "Usage:    %s\n", usage)
	switch rem := usage.Remaining(); {
	case rem == 0:
		fmt.Fprintln(out, warnStyle.Render("Left:     0 this month, upgrade your plan to add more"))
	case rem > 0:
		fmt.Fprintf(out, "Left:     %d this month\n", rem)
	}
	income, expense, net := st.Ledger.Totals()
	fmt.Fprintf(out, "All time: income %s, expenses %s, net %s\n", money(income), money(expense), signed(net))
}
