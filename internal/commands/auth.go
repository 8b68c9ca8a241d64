package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bizledger/internal/app"
	"github.com/cleared-dev/bizledger/internal/identity"
)

func newSignupCommand(g *globalOptions) *cobra.Command {
	var p identity.SignupParams

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return runSignup(ctx, cmd, a, p)
			})
		},
	}

	cmd.Flags().StringVar(&p.Name, "name", "", "your name")
	cmd.Flags().StringVar(&p.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&p.Password, "password", "", "password (required)")
	cmd.Flags().StringVar(&p.BusinessName, "business", "", "business name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runSignup(ctx context.Context, cmd *cobra.Command, a *app.App, p identity.SignupParams) error {
	if p.BusinessName == "" {
		p.BusinessName = a.Config().Business.Name
	}
	u, err := a.Signup(ctx, p)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, successStyle.Render("Account created for "+u.Email))
	fmt.Fprintln(out, "Choose a plan to start tracking: bizledger plans")
	return nil
}

func newLoginCommand(g *globalOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to an existing account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, a *app.App) error {
				u, err := a.Login(ctx, email, password)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Welcome back, "+displayName(u.Name, u.Email)))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if a.State().User == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
					return nil
				}
				a.Logout(ctx)
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
				return nil
			})
		},
	}
}

func displayName(name, email string) string {
	if name != "" {
		return name
	}
	return email
}
