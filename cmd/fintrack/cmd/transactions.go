package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

const displayDateLayout = "Jan 02, 2006"

func bindTransactionFlags(cmd *cobra.Command, in *transactionInput) {
	cmd.Flags().StringVar(&in.Amount, "amount", "", "positive amount, e.g. 12.50")
	cmd.Flags().StringVar(&in.Type, "type", "", "income or expense")
	cmd.Flags().StringVar(&in.Category, "category", "", "category label")
	cmd.Flags().StringVar(&in.Date, "date", "", "date (YYYY-MM-DD); defaults to now")
	cmd.Flags().StringVar(&in.Note, "note", "", "optional note")
}

func newAddCmd(rt *runtime) *cobra.Command {
	var in transactionInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		Example: `  fintrack add --type income --amount 1000 --category Salary
  fintrack add --type expense --amount 12.50 --category Food --date 2026-03-01 --note lunch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := in.draft(rt.app.Repository.Now().Location())
			if err != nil {
				return err
			}
			rt.warnUnknownCategory(cmd.ErrOrStderr(), d.Type, d.Category)

			tx := rt.app.Repository.NewTransaction(d)
			if err := rt.app.Repository.Add(ctx, tx); err != nil {
				return err
			}
			rt.logger.InfoContext(ctx, "Transaction added", applog.NewFields().
				WithOperation(applog.OpAdd).
				WithTransaction(tx.ID, string(tx.Type), tx.Category, tx.Amount.String()).
				ToSlice()...)

			fmt.Fprintf(cmd.OutOrStdout(), "Transaction saved successfully (%s)\n", tx.ID)
			rt.warnLowBalance(ctx, cmd.OutOrStdout())
			return nil
		},
	}
	bindTransactionFlags(cmd, &in)
	return cmd
}

func newEditCmd(rt *runtime) *cobra.Command {
	var in transactionInput
	cmd := &cobra.Command{
		Use:     "edit <id>",
		Short:   "Change fields of an existing transaction",
		Example: `  fintrack edit 3f1c... --amount 15 --note "dinner, not lunch"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			existing, ok, err := rt.app.Repository.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no transaction with id %s", args[0])
			}

			merged := transactionInput{
				Amount:   existing.Amount.String(),
				Type:     string(existing.Type),
				Category: existing.Category,
				Note:     existing.Note,
			}
			flags := cmd.Flags()
			if flags.Changed("amount") {
				merged.Amount = in.Amount
			}
			if flags.Changed("type") {
				merged.Type = in.Type
			}
			if flags.Changed("category") {
				merged.Category = in.Category
			}
			if flags.Changed("date") {
				merged.Date = in.Date
			}
			if flags.Changed("note") {
				merged.Note = in.Note
			}

			d, err := merged.draft(rt.app.Repository.Now().Location())
			if err != nil {
				return err
			}
			d.ID = existing.ID
			if d.Date.IsZero() {
				d.Date = existing.Date
			}
			rt.warnUnknownCategory(cmd.ErrOrStderr(), d.Type, d.Category)

			tx := rt.app.Repository.NewTransaction(d)
			if err := rt.app.Repository.Update(ctx, tx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Transaction updated successfully (%s)\n", tx.ID)
			rt.warnLowBalance(ctx, cmd.OutOrStdout())
			return nil
		},
	}
	bindTransactionFlags(cmd, &in)
	return cmd
}

func newDeleteCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.app.Repository.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Transaction deleted")
			return nil
		},
	}
}

func newListCmd(rt *runtime) *cobra.Command {
	var typeFilter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all transactions in stored order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var want core.Type
			if typeFilter != "" {
				t, err := core.ParseType(typeFilter)
				if err != nil {
					return err
				}
				want = t
			}

			txs, err := rt.app.Repository.List(cmd.Context())
			if err != nil {
				return err
			}
			filtered := txs[:0:0]
			for _, t := range txs {
				if want == "" || t.Type == want {
					filtered = append(filtered, t)
				}
			}
			return rt.printTransactions(cmd, filtered)
		},
	}
	cmd.Flags().StringVar(&typeFilter, "type", "", "only show income or expense")
	return cmd
}

func newRecentCmd(rt *runtime) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := rt.app.Repository.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return rt.printTransactions(cmd, txs)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "number of transactions to show")
	return cmd
}

func (rt *runtime) printTransactions(cmd *cobra.Command, txs []core.Transaction) error {
	out := cmd.OutOrStdout()
	if len(txs) == 0 {
		fmt.Fprintln(out, "No transactions yet")
		return nil
	}
	symbol, err := rt.app.Settings.CurrencySymbol(cmd.Context())
	if err != nil {
		return err
	}

	loc := rt.app.Repository.Now().Location()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tCATEGORY\tAMOUNT\tNOTE")
	for _, t := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.Date.In(loc).Format(displayDateLayout),
			t.Type.Label(),
			t.Category,
			core.SignedAmount(symbol, t),
			t.Note)
	}
	return w.Flush()
}

// warnUnknownCategory flags categories outside the catalog. They are still
// accepted.
func (rt *runtime) warnUnknownCategory(w io.Writer, t core.Type, category string) {
	if !rt.app.Categories.Contains(t, category) {
		fmt.Fprintf(w, "Note: %q is not a listed %s category\n", category, t.Label())
	}
}
