// Package cli provides common process initialization shared by
// cmd/fintrack and cmd/balance-worker.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/amqp"
	"fintrack/internal/backend"
	"fintrack/internal/config"
	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/repository"
	"fintrack/internal/services"
	"fintrack/internal/settings"
)

// SetupLogger initializes structured logging and sets it as the default
// logger. Debug lowers the level to Debug.
func SetupLogger(debug bool) *applog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentApp,
		Output:    os.Stderr,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// App bundles everything a command needs, built once per process.
type App struct {
	Config     *config.Config
	Logger     *applog.Logger
	Repository *repository.Repository
	Settings   *settings.Settings
	Categories core.CategoryCatalog
	Checker    *services.BalanceChecker

	cleanups []func() error
}

// Open wires the preference store, repository, settings and balance checker
// from cfg. The AMQP notifier is used when configured and reachable;
// otherwise alerts go to the log.
func Open(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*App, error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger.WithComponent(applog.ComponentBackend)).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: logger}
	app.addCleanup(res.Cleanup)

	window, err := core.ParseMonthWindow(cfg.MonthWindow)
	if err != nil {
		app.Close()
		return nil, err
	}
	catalog, err := core.LoadCategoryCatalog(cfg.CategoriesFile)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Categories = catalog

	app.Repository = repository.New(res.Store, repository.Config{
		MonthWindow:   window,
		CorruptPolicy: repository.CorruptPolicy(cfg.CorruptPolicy),
		Now:           time.Now,
		Logger:        logger.WithComponent(applog.ComponentRepository),
	})
	app.Settings = settings.New(res.Store, logger.WithComponent(applog.ComponentSettings))

	var notifier services.Notifier = services.NewLogNotifier(logger.WithComponent(applog.ComponentWorker))
	if cfg.AMQPEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger.WithComponent(applog.ComponentAMQP))
		if err != nil {
			logger.WarnContext(ctx, "Failed to initialize AMQP client, alerts will be logged only", applog.FieldError, err)
		} else {
			notifier = client
			app.addCleanup(client.Close)
		}
	}

	checkerCfg := services.DefaultBalanceCheckerConfig()
	checkerCfg.Threshold = cfg.LowBalanceThreshold
	app.Checker = services.NewBalanceChecker(app.Repository, app.Settings, notifier, checkerCfg, logger.WithComponent(applog.ComponentWorker))

	return app, nil
}

func (a *App) addCleanup(fn func() error) {
	if fn != nil {
		a.cleanups = append(a.cleanups, fn)
	}
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		if err := a.cleanups[i](); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("cleanup: %w", err)
		}
	}
	a.cleanups = nil
	return firstErr
}

// GracefulShutdown returns a context cancelled on SIGINT or SIGTERM. The
// cleanup runs once the signal arrives, bounded by timeout.
func GracefulShutdown(logger *applog.Logger, timeout time.Duration, cleanup func(context.Context)) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String(), applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		cancel()
		if cleanup != nil {
			cleanup(shutdownCtx)
		}
		if shutdownCtx.Err() != nil {
			logger.Warn("Shutdown timeout reached")
		} else {
			logger.Info("Shutdown complete")
		}
		close(done)
	}()

	return ctx, done
}
