package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/cli"
	"fintrack/internal/config"
	applog "fintrack/internal/log"
	"fintrack/internal/services"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		applog.New(applog.DefaultConfig()).Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg.Debug)
	logger.Info("Starting balance-worker", applog.FieldOperation, applog.OpStartup)

	if cfg.Backend == config.BackendBolt {
		logger.Warn("bolt keeps an exclusive file lock; CLI writes will block while the worker runs",
			applog.FieldPath, cfg.BoltDBPath)
	}

	app, err := cli.Open(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to open store", applog.FieldError, err, applog.FieldBackend, cfg.Backend)
		os.Exit(1)
	}
	defer app.Close()

	monitor := services.NewBalanceMonitor(app.Checker, cfg.BalanceCheckInterval, logger.WithComponent(applog.ComponentWorker))
	logger.Info("Balance check configured",
		"interval", cfg.BalanceCheckInterval,
		applog.FieldThreshold, cfg.LowBalanceThreshold.String(),
		"amqp_enabled", cfg.AMQPEnabled())

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := monitor.Stop(shutdownCtx); err != nil {
			logger.Warn("Balance monitor did not stop cleanly", applog.FieldError, err)
		}
	})

	if err := run(ctx, monitor); err != nil {
		logger.Error("balance-worker stopped", applog.FieldError, err)
		os.Exit(1)
	}
	<-done
	logger.Info("balance-worker shutdown complete", applog.FieldOperation, applog.OpShutdown)
}

// run starts the monitor and returns when ctx is cancelled, or with an error
// if the check loop exits on its own.
func run(ctx context.Context, monitor *services.BalanceMonitor) error {
	if err := monitor.Start(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-monitor.Done():
			if ctx.Err() != nil {
				return nil
			}
			return errors.New("balance monitor exited unexpectedly")
		case <-gctx.Done():
			return nil
		}
	})
	return g.Wait()
}
