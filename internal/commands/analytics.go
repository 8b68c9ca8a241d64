package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/bizledger/internal/app"
	"github.com/cleared-dev/bizledger/internal/entitlement"
	"github.com/cleared-dev/bizledger/internal/metrics"
)

func newAnalyticsCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show this month's performance and business health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return runAnalytics(cmd.OutOrStdout(), a)
			})
		},
	}
}

func runAnalytics(out io.Writer, a *app.App) error {
	snap, err := a.Analytics()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderSnapshot(snap))

	tier := a.State().Tier()
	if !entitlement.CheckFeatureAccess(tier, entitlement.FeatureOptimizationSuggestions).Allowed {
		fmt.Fprintln(out, mutedStyle.Render("Expense optimization suggestions are available on the Premium plan."))
		return nil
	}
	sug, err := a.Suggestions()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderSuggestions(sug))
	return nil
}

func renderSnapshot(s metrics.Snapshot) string {
	cur, prev := s.Current, s.Previous

	month := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("%s %d", cur.Name, cur.Year)),
		fmt.Sprintf("Income    %s  %s", money(cur.Income), percent(s.Changes.Income, false)),
		fmt.Sprintf("Expenses  %s  %s", money(cur.Expense), percent(s.Changes.Expense, true)),
		fmt.Sprintf("Profit    %s  %s", signed(cur.Profit), percent(s.Changes.Profit, false)),
		fmt.Sprintf("Margin    %.1f%%", cur.ProfitMargin),
		mutedStyle.Render(fmt.Sprintf("%d transactions; %s %d: %s profit", cur.TransactionCount, prev.Name, prev.Year, money(prev.Profit))),
	))

	health := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Business Health"),
		healthStyle(s.HealthScore).Render(fmt.Sprintf("%d/100", s.HealthScore)),
		s.HealthLabel,
		"",
		fmt.Sprintf("Avg income   %s", money(s.Averages.Income)),
		fmt.Sprintf("Avg expense  %s", money(s.Averages.Expense)),
	))

	top := []string{titleStyle.Render("Top Expense Categories")}
	if len(s.TopCategories) == 0 {
		top = append(top, mutedStyle.Render("No expenses this month"))
	}
	for i, c := range s.TopCategories {
		top = append(top, fmt.Sprintf("%d. %-22s %s", i+1, c.Category, money(c.Amount)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, month, " ", health),
		panelStyle.Render(strings.Join(top, "\n")),
	)
}

func healthStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return successStyle
	case score >= 60:
		return goodStyle
	case score >= 40:
		return warnStyle
	}
	return badStyle
}

func renderSuggestions(s metrics.Suggestions) string {
	lines := []string{titleStyle.Render("Expense Optimization")}
	for _, c := range s.Categories {
		line := fmt.Sprintf("%s is %.1f%% of spending (%s)", c.Category, c.Share, money(c.Amount))
		if c.Review {
			line = warnStyle.Render(line + ". Review this category for savings.")
		}
		lines = append(lines, line)
	}
	if s.GrowthAlert {
		lines = append(lines, badStyle.Render(fmt.Sprintf("Expenses grew %s over last month.", formatPercent(s.ExpenseChange))))
	}
	if len(lines) == 1 {
		lines = append(lines, mutedStyle.Render("Nothing to flag this month."))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}
