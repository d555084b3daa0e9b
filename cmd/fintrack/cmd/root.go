// Package cmd provides the fintrack CLI commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"fintrack/internal/cli"
	applog "fintrack/internal/log"
)

// runtime carries state shared by every subcommand of one invocation.
type runtime struct {
	envFile string
	debug   bool

	logger *applog.Logger
	app    *cli.App
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd, _ := newRoot()
	return rootCmd
}

func newRoot() (*cobra.Command, *runtime) {
	rt := &runtime{}

	rootCmd := &cobra.Command{
		Use:   "fintrack",
		Short: "Track personal income and expenses",
		Long: `fintrack records income and expense transactions in a local
preference store and reports on the current month.

It supports:
- Adding, editing and deleting transactions
- Monthly income, expense, balance and per-category totals
- A monthly budget with progress
- JSON backup export and destructive restore
- Low balance alerts, optionally published to RabbitMQ

Example:
  fintrack add --type expense --amount 12.50 --category Food --note lunch
  fintrack summary
  fintrack export`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.open(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&rt.envFile, "env-file", "", "env file to load (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&rt.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newAddCmd(rt),
		newEditCmd(rt),
		newDeleteCmd(rt),
		newListCmd(rt),
		newRecentCmd(rt),
		newSummaryCmd(rt),
		newBudgetCmd(rt),
		newBalanceCmd(rt),
		newExportCmd(rt),
		newImportCmd(rt),
		newSettingsCmd(rt),
		newCategoriesCmd(rt),
		newAlertsCmd(rt),
	)
	return rootCmd, rt
}

// Execute runs the CLI. This is called by main.main().
func Execute() error {
	return execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

// execute runs one invocation and always releases the store, whether or not
// the command failed.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rootCmd, rt := newRoot()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if cerr := rt.close(); err == nil {
		err = cerr
	}
	return err
}

func (rt *runtime) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if rt.envFile != "" {
		if err := godotenv.Load(rt.envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	} else {
		cli.LoadEnvFile()
	}

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	rt.logger = cli.SetupLogger(rt.debug || cfg.Debug).WithComponent(applog.ComponentCLI)

	app, err := cli.Open(ctx, cfg, rt.logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	rt.app = app
	return nil
}

func (rt *runtime) close() error {
	if rt.app == nil {
		return nil
	}
	err := rt.app.Close()
	rt.app = nil
	return err
}

// warnLowBalance prints the low balance warning shown after an entry is
// saved. It ignores the notifications preference.
func (rt *runtime) warnLowBalance(ctx context.Context, w io.Writer) {
	status, err := rt.app.Checker.Evaluate(ctx)
	if err != nil {
		rt.logger.WarnContext(ctx, "Balance check failed", applog.FieldError, err)
		return
	}
	if status.Low {
		alert := status.Alert(rt.app.Repository.Now())
		fmt.Fprintf(w, "\n%s: %s\n", alert.Title(), alert.Text())
	}
}
