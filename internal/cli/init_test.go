package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/config"
	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

func testConfig(t *testing.T, backend string) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Backend:              backend,
		SQLiteDBPath:         filepath.Join(dir, "fintrack.db"),
		BoltDBPath:           filepath.Join(dir, "fintrack.bolt"),
		CorruptPolicy:        config.PolicyDegrade,
		MonthWindow:          "calendar",
		LowBalanceThreshold:  decimal.NewFromInt(100),
		BalanceCheckInterval: time.Minute,
	}
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	logger := SetupLogger(true)
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug logger should enable debug level")
	}
	logger = SetupLogger(false)
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("default logger should not enable debug level")
	}
}

func TestOpen_WiresEveryBackend(t *testing.T) {
	for _, backend := range []string{config.BackendMemory, config.BackendSQLite, config.BackendBolt} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			app, err := Open(ctx, testConfig(t, backend), applog.Discard())
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer app.Close()

			tx := app.Repository.NewTransaction(core.Draft{Amount: decimal.NewFromInt(50), Type: core.Income, Category: "Gift"})
			if err := app.Repository.Add(ctx, tx); err != nil {
				t.Fatalf("add: %v", err)
			}
			status, err := app.Checker.Evaluate(ctx)
			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}
			if !status.Balance.Equal(decimal.NewFromInt(50)) || !status.Low {
				t.Fatalf("unexpected status %+v", status)
			}
			if len(app.Categories.Expense) == 0 {
				t.Fatal("expected default categories")
			}
		})
	}
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.BackendBolt)

	app, err := Open(ctx, cfg, applog.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if err := app.Settings.SetCurrency(ctx, "JPY"); err != nil {
		t.Fatal(err)
	}
	if err := app.Close(); err != nil {
		t.Fatal(err)
	}

	app, err = Open(ctx, cfg, applog.Discard())
	if err != nil {
		t.Fatal(err)
	}
	defer app.Close()
	if sym, _ := app.Settings.CurrencySymbol(ctx); sym != "¥" {
		t.Fatalf("expected ¥ after reopen, got %q", sym)
	}
}

func TestOpen_RejectsBadConfig(t *testing.T) {
	cfg := testConfig(t, "postgres")
	if _, err := Open(context.Background(), cfg, applog.Discard()); err == nil {
		t.Fatal("expected error for unknown backend")
	}

	cfg = testConfig(t, config.BackendMemory)
	cfg.MonthWindow = "rolling"
	if _, err := Open(context.Background(), cfg, applog.Discard()); err == nil {
		t.Fatal("expected error for unknown month window")
	}
}
