package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fintrack/internal/core"
)

func newSettingsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := rt.app.Settings.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			budget := "not set"
			if snap.MonthlyBudget.IsPositive() {
				budget = core.FormatAmount(snap.CurrencySymbol, snap.MonthlyBudget)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "currency\t%s (%s)\n", snap.Currency, snap.CurrencySymbol)
			fmt.Fprintf(w, "budget\t%s\n", budget)
			fmt.Fprintf(w, "dark-mode\t%t\n", snap.DarkMode)
			fmt.Fprintf(w, "notifications\t%t\n", snap.Notifications)
			fmt.Fprintf(w, "first-run\t%t\n", snap.FirstRun)
			return w.Flush()
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a preference",
		Long: `Change a preference. Keys:
  currency       one of ` + currencyCodes() + `
  dark-mode      true or false
  notifications  true or false (gates low balance alerts)
  passcode       new passcode
  first-run      true or false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			key, value := args[0], args[1]
			s := rt.app.Settings

			var err error
			switch key {
			case "currency":
				err = s.SetCurrency(ctx, value)
			case "dark-mode":
				err = setBool(value, func(b bool) error { return s.SetDarkMode(ctx, b) })
			case "notifications":
				err = setBool(value, func(b bool) error { return s.SetNotificationsEnabled(ctx, b) })
			case "passcode":
				err = s.SetPasscode(ctx, value)
			case "first-run":
				err = setBool(value, func(b bool) error { return s.SetFirstRun(ctx, b) })
			default:
				return fmt.Errorf("unknown setting %q", key)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", key)

			if key == "notifications" {
				status, err := rt.app.Checker.Check(ctx)
				if err != nil {
					return err
				}
				if status.Notified {
					fmt.Fprintln(cmd.OutOrStdout(), "Low balance alert sent")
				}
			}
			return nil
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check-passcode <passcode>",
		Short: "Verify a passcode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := rt.app.Settings.CheckPasscode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("incorrect passcode")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Passcode accepted")
			return nil
		},
	}

	cmd.AddCommand(setCmd, checkCmd)
	return cmd
}

func newCategoriesCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories offered for each transaction type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, t := range []core.Type{core.Income, core.Expense} {
				fmt.Fprintf(out, "%s: %s\n", t.Label(), strings.Join(rt.app.Categories.For(t), ", "))
			}
			return nil
		},
	}
}

func setBool(value string, set func(bool) error) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean %q", value)
	}
	return set(b)
}

func currencyCodes() string {
	var codes []string
	for _, c := range core.SupportedCurrencies() {
		codes = append(codes, c.Code)
	}
	return strings.Join(codes, ", ")
}
