package main

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	applog "fintrack/internal/log"
	"fintrack/internal/services"
)

type staticBalance struct{}

func (staticBalance) Balance(context.Context) (decimal.Decimal, error) {
	return decimal.NewFromInt(1000), nil
}

type staticSettings struct{}

func (staticSettings) NotificationsEnabled(context.Context) (bool, error) { return true, nil }
func (staticSettings) Currency(context.Context) (string, error)           { return "USD", nil }

func TestRunReturnsOnCancel(t *testing.T) {
	checker := services.NewBalanceChecker(staticBalance{}, staticSettings{}, nil, services.DefaultBalanceCheckerConfig(), applog.Discard())
	monitor := services.NewBalanceMonitor(checker, time.Hour, applog.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- run(ctx, monitor) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("expected clean exit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
