package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

// DefaultLowBalanceThreshold is the balance under which alerts fire.
var DefaultLowBalanceThreshold = decimal.NewFromInt(500)

type (
	// BalanceSource yields the current month's balance.
	BalanceSource interface {
		Balance(ctx context.Context) (decimal.Decimal, error)
	}

	// AlertSettings exposes the preferences that shape an alert.
	AlertSettings interface {
		NotificationsEnabled(ctx context.Context) (bool, error)
		Currency(ctx context.Context) (string, error)
	}

	// Notifier delivers a low balance alert. *amqp.Client satisfies it.
	Notifier interface {
		PublishLowBalanceAlert(ctx context.Context, alert *amqp.LowBalanceAlert) error
	}
)

// BalanceCheckerConfig holds configuration for the balance checker
type BalanceCheckerConfig struct {
	// Threshold is the balance under which the balance counts as low (default: 500)
	Threshold decimal.Decimal

	// Now stamps alerts (default: time.Now)
	Now func() time.Time
}

func DefaultBalanceCheckerConfig() BalanceCheckerConfig {
	return BalanceCheckerConfig{
		Threshold: DefaultLowBalanceThreshold,
		Now:       time.Now,
	}
}

// BalanceStatus is the outcome of one evaluation.
type BalanceStatus struct {
	Balance   decimal.Decimal
	Threshold decimal.Decimal
	Currency  string
	Low       bool
	// Notified is set by Check when an alert was dispatched.
	Notified bool
}

// Symbol returns the display symbol of the status currency.
func (s BalanceStatus) Symbol() string {
	return core.SymbolFor(s.Currency)
}

// Alert builds the message describing this status.
func (s BalanceStatus) Alert(now time.Time) *amqp.LowBalanceAlert {
	return amqp.NewLowBalanceAlert(s.Balance, s.Threshold, s.Currency, now)
}

// BalanceChecker applies the low balance rule.
type BalanceChecker struct {
	balances BalanceSource
	settings AlertSettings
	notifier Notifier
	config   BalanceCheckerConfig
	logger   *applog.Logger
}

func NewBalanceChecker(balances BalanceSource, settings AlertSettings, notifier Notifier, config BalanceCheckerConfig, logger *applog.Logger) *BalanceChecker {
	if config.Now == nil {
		config.Now = time.Now
	}
	if logger == nil {
		logger = applog.FromSlog(nil, applog.ComponentWorker)
	}
	return &BalanceChecker{
		balances: balances,
		settings: settings,
		notifier: notifier,
		config:   config,
		logger:   logger,
	}
}

// Evaluate computes the balance and compares it to the threshold without
// consulting the notifications preference.
func (c *BalanceChecker) Evaluate(ctx context.Context) (BalanceStatus, error) {
	balance, err := c.balances.Balance(ctx)
	if err != nil {
		return BalanceStatus{}, fmt.Errorf("compute balance: %w", err)
	}
	currency, err := c.settings.Currency(ctx)
	if err != nil {
		return BalanceStatus{}, fmt.Errorf("read currency: %w", err)
	}
	return BalanceStatus{
		Balance:   balance,
		Threshold: c.config.Threshold,
		Currency:  currency,
		Low:       balance.LessThan(c.config.Threshold),
	}, nil
}

// Check evaluates the balance and dispatches an alert when it is low and
// notifications are enabled.
func (c *BalanceChecker) Check(ctx context.Context) (BalanceStatus, error) {
	status, err := c.Evaluate(ctx)
	if err != nil {
		return status, err
	}

	c.logger.DebugContext(ctx, "Balance checked",
		applog.FieldOperation, applog.OpCheck,
		applog.FieldBalance, status.Balance.String(),
		applog.FieldThreshold, status.Threshold.String())

	if !status.Low {
		return status, nil
	}

	enabled, err := c.settings.NotificationsEnabled(ctx)
	if err != nil {
		return status, fmt.Errorf("read notifications setting: %w", err)
	}
	if !enabled {
		c.logger.DebugContext(ctx, "Balance low but notifications disabled")
		return status, nil
	}
	if c.notifier == nil {
		c.logger.WarnContext(ctx, "No notifier configured, skipping low balance alert")
		return status, nil
	}

	if err := c.notifier.PublishLowBalanceAlert(ctx, status.Alert(c.config.Now())); err != nil {
		return status, fmt.Errorf("send low balance alert: %w", err)
	}
	status.Notified = true
	return status, nil
}

// LogNotifier reports alerts through the logger. It stands in for the broker
// when AMQP is not configured.
type LogNotifier struct {
	logger *applog.Logger
}

func NewLogNotifier(logger *applog.Logger) *LogNotifier {
	if logger == nil {
		logger = applog.FromSlog(nil, applog.ComponentWorker)
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) PublishLowBalanceAlert(ctx context.Context, alert *amqp.LowBalanceAlert) error {
	n.logger.WarnContext(ctx, alert.Title(),
		"message", alert.Text(),
		applog.FieldBalance, alert.Balance.String(),
		applog.FieldThreshold, alert.Threshold.String())
	return nil
}
