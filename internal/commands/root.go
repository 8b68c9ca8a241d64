package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bizledger/internal/app"
	"github.com/cleared-dev/bizledger/internal/config"
	"github.com/cleared-dev/bizledger/internal/logger"
)

// Version is set at build time with -ldflags "-X ...commands.Version=...".
var Version = "dev"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	envFile    string
	dataDir    string
	appOpts    []app.Option // test hooks
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&globalOptions{})
}

func newRootCommand(opts *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bizledger",
		Short:   "Small business income and expense tracking",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "config file")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "file with BIZLEDGER_* overrides")
	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory (overrides storage.dir)")

	rootCmd.AddCommand(
		newInitCommand(),
		newSignupCommand(opts),
		newLoginCommand(opts),
		newLogoutCommand(opts),
		newStatusCommand(opts),
		newPlansCommand(),
		newPlanCommand(opts),
		newAddCommand(opts),
		newDeleteCommand(opts),
		newListCommand(opts),
		newCategoriesCommand(opts),
		newAnalyticsCommand(opts),
		newReportCommand(opts),
		newImportCommand(opts),
		newActivityCommand(opts),
	)

	return rootCmd
}

// loadConfig resolves the effective configuration: .env, then the YAML
// file, then BIZLEDGER_* variables, then --data-dir.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	if err := config.LoadEnvFile(o.envFile); err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv(cfg)

	// Relative storage paths are taken from the config file's directory.
	base := filepath.Dir(o.configPath)
	cfg.Storage.Dir = resolve(base, cfg.Storage.Dir)
	cfg.Storage.SQLitePath = resolve(base, cfg.Storage.SQLitePath)
	if o.dataDir != "" {
		cfg.Storage.Dir = o.dataDir
		cfg.Storage.SQLitePath = filepath.Join(o.dataDir, "bizledger.db")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// withApp opens the session, runs fn, and prints any queued notices.
// Errors from fn are rewritten into user-facing messages.
func (o *globalOptions) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	ctx := logger.WithContext(cmd.Context(), log)

	a, err := app.Open(ctx, cfg, o.appOpts...)
	if err != nil {
		return fmt.Errorf("opening data: %w", err)
	}
	defer a.Close()

	printNotices(cmd, a)
	runErr := fn(ctx, a)
	printNotices(cmd, a)
	return userError(runErr)
}

func printNotices(cmd *cobra.Command, a *app.App) {
	for _, n := range a.Notices() {
		fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render("! "+n))
	}
}
