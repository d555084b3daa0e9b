package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fintrack/internal/amqp"
	"fintrack/internal/cli"
	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

func newAlertsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Low balance alerts",
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Run the low balance check once and send an alert if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := rt.app.Checker.Check(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Balance %s, threshold %s\n",
				core.FormatAmount(status.Symbol(), status.Balance),
				core.FormatAmount(status.Symbol(), status.Threshold))
			switch {
			case status.Notified:
				fmt.Fprintln(out, "Low balance alert sent")
			case status.Low:
				fmt.Fprintln(out, "Balance is low; notifications are disabled")
			}
			return nil
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Print low balance alerts from the message broker until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rt.app.Config
			if !cfg.AMQPEnabled() {
				return fmt.Errorf("AMQP_URL is not set")
			}
			client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, rt.logger.WithComponent(applog.ComponentAMQP))
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, done := cli.GracefulShutdown(rt.logger, 5*time.Second, nil)
			out := cmd.OutOrStdout()
			err = client.ConsumeLowBalanceAlerts(ctx, func(alert *amqp.LowBalanceAlert) error {
				_, err := fmt.Fprintf(out, "[%s] %s: %s\n", alert.Timestamp.Local().Format(time.DateTime), alert.Title(), alert.Text())
				return err
			})
			if errors.Is(err, context.Canceled) {
				<-done
				return nil
			}
			return err
		},
	}

	cmd.AddCommand(checkCmd, watchCmd)
	return cmd
}
