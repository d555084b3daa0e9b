package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fintrack/internal/core"
)

func newSummaryCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show this month's income, expenses, balance and budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			summary, err := rt.app.Repository.MonthSummary(ctx)
			if err != nil {
				return err
			}
			snap, err := rt.app.Settings.Snapshot(ctx)
			if err != nil {
				return err
			}
			sym := snap.CurrencySymbol
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "\n=== %s ===\n", rt.app.Repository.Now().Format("January 2006"))
			fmt.Fprintf(out, "Balance:  %s\n", core.FormatAmount(sym, summary.Balance))
			fmt.Fprintf(out, "Income:   %s (%s%%)\n", core.FormatAmount(sym, summary.Income), summary.IncomeShare.StringFixed(1))
			fmt.Fprintf(out, "Expenses: %s (%s%%)\n", core.FormatAmount(sym, summary.Expense), summary.ExpenseShare.StringFixed(1))

			if budget := core.NewBudgetStatus(snap.MonthlyBudget, summary.Expense); budget.HasBudget() {
				fmt.Fprintf(out, "Budget:   %s of %s used (%d%%)\n",
					core.FormatAmount(sym, budget.Spent), core.FormatAmount(sym, budget.Budget), budget.Percent)
			}

			if len(summary.ByCategory) > 0 {
				fmt.Fprintln(out, "\nExpenses by category:")
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				for _, c := range summary.ByCategory {
					share := decimal.Zero
					if summary.Expense.IsPositive() {
						share = c.Amount.Div(summary.Expense).Mul(decimal.NewFromInt(100))
					}
					fmt.Fprintf(w, "  %s\t%s\t%s%%\n", c.Name, core.FormatAmount(sym, c.Amount), share.StringFixed(1))
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

func newBudgetCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show progress against the monthly budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			budget, err := rt.app.Settings.MonthlyBudget(ctx)
			if err != nil {
				return err
			}
			sym, err := rt.app.Settings.CurrencySymbol(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !budget.IsPositive() {
				fmt.Fprintln(out, "No monthly budget set. Use 'fintrack budget set <amount>'.")
				return nil
			}
			status, err := rt.app.Repository.BudgetStatus(ctx, budget)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Budget:    %s\n", core.FormatAmount(sym, status.Budget))
			fmt.Fprintf(out, "Spent:     %s (%d%%)\n", core.FormatAmount(sym, status.Spent), status.Percent)
			fmt.Fprintf(out, "Remaining: %s\n", core.FormatAmount(sym, status.Remaining))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <amount>",
		Short: "Set the monthly budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := core.ParseAmount(args[0])
			if err != nil {
				return err
			}
			if err := rt.app.Settings.SetMonthlyBudget(cmd.Context(), amount); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Budget saved successfully")
			return nil
		},
	}, &cobra.Command{
		Use:   "clear",
		Short: "Remove the monthly budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.app.Settings.SetMonthlyBudget(cmd.Context(), decimal.Zero); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Budget cleared")
			return nil
		},
	})
	return cmd
}

func newBalanceCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show this month's balance and check it against the alert threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			status, err := rt.app.Checker.Evaluate(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Balance: %s\n", core.FormatAmount(status.Symbol(), status.Balance))
			if status.Low {
				fmt.Fprintf(out, "Below the low balance threshold of %s\n", core.FormatAmount(status.Symbol(), status.Threshold))
			}
			return nil
		},
	}
}
