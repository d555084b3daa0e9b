package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fintrack/internal/repository"
)

func newExportCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write all transactions to a JSON backup file",
		Long: `Write all transactions to a JSON backup file. Without a file argument
the backup is named financial_tracker_backup_<yyyyMMdd_HHmmss>.json in the
current directory. Use "-" to write to standard output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 && args[0] == "-" {
				_, err := rt.app.Repository.Export(ctx, cmd.OutOrStdout())
				return err
			}

			path := repository.BackupFileName(rt.app.Repository.Now())
			if len(args) == 1 {
				path = args[0]
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create backup file: %w", err)
			}
			n, err := rt.app.Repository.Export(ctx, f)
			if cerr := f.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("close backup file: %w", cerr)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", n, path)
			return nil
		},
	}
}

func newImportCmd(rt *runtime) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all transactions with the contents of a JSON backup",
		Long: `Replace all transactions with the contents of a JSON backup. This is a
destructive restore: transactions not in the file are lost. Pass --yes to
confirm.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("import replaces every stored transaction; re-run with --yes to confirm")
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open backup file: %w", err)
			}
			defer f.Close()

			n, err := rt.app.Repository.Import(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions from %s\n", n, args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm replacing all transactions")
	return cmd
}
