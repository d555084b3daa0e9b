// Package settings exposes the scalar preferences with their defaults.
package settings

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/prefs"
)

// Defaults applied when a key is unset or unreadable.
const (
	DefaultCurrency      = core.DefaultCurrency
	DefaultDarkMode      = false
	DefaultNotifications = true
	DefaultPasscode      = "1234"
	DefaultFirstRun      = true
)

var (
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrNegativeBudget      = errors.New("budget must not be negative")
	ErrEmptyPasscode       = errors.New("passcode cannot be empty")
)

// Store is the slice of the preference store settings need.
type Store interface {
	prefs.Reader
	prefs.Writer
}

// Snapshot is every setting read at once.
type Snapshot struct {
	Currency       string
	CurrencySymbol string
	MonthlyBudget  decimal.Decimal
	DarkMode       bool
	Notifications  bool
	FirstRun       bool
}

type Settings struct {
	store  Store
	logger *applog.Logger
}

func New(store Store, logger *applog.Logger) *Settings {
	if logger == nil {
		logger = applog.FromSlog(nil, applog.ComponentSettings)
	}
	return &Settings{store: store, logger: logger}
}

// Currency returns the selected currency code.
func (s *Settings) Currency(ctx context.Context) (string, error) {
	v, err := prefs.GetOr(ctx, s.store, prefs.KeyCurrency, DefaultCurrency)
	if err != nil {
		return DefaultCurrency, fmt.Errorf("get currency: %w", err)
	}
	if v == "" {
		return DefaultCurrency, nil
	}
	return v, nil
}

// SetCurrency stores code after checking it against the supported table.
func (s *Settings) SetCurrency(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !core.IsSupportedCurrency(code) {
		return fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	return s.set(ctx, prefs.KeyCurrency, code)
}

// CurrencySymbol maps the stored currency to its symbol.
func (s *Settings) CurrencySymbol(ctx context.Context) (string, error) {
	code, err := s.Currency(ctx)
	if err != nil {
		return core.SymbolFor(DefaultCurrency), err
	}
	return core.SymbolFor(code), nil
}

// MonthlyBudget returns the budget, zero meaning "not set".
func (s *Settings) MonthlyBudget(ctx context.Context) (decimal.Decimal, error) {
	v, err := s.get(ctx, prefs.KeyMonthlyBudget)
	if err != nil || v == "" {
		return decimal.Zero, err
	}
	d, perr := decimal.NewFromString(strings.TrimSpace(v))
	if perr != nil || d.IsNegative() {
		s.malformed(ctx, prefs.KeyMonthlyBudget, v)
		return decimal.Zero, nil
	}
	return d, nil
}

func (s *Settings) SetMonthlyBudget(ctx context.Context, budget decimal.Decimal) error {
	if budget.IsNegative() {
		return ErrNegativeBudget
	}
	return s.set(ctx, prefs.KeyMonthlyBudget, budget.String())
}

func (s *Settings) DarkMode(ctx context.Context) (bool, error) {
	return s.getBool(ctx, prefs.KeyDarkMode, DefaultDarkMode)
}

func (s *Settings) SetDarkMode(ctx context.Context, on bool) error {
	return s.set(ctx, prefs.KeyDarkMode, strconv.FormatBool(on))
}

// NotificationsEnabled gates low-balance alerts.
func (s *Settings) NotificationsEnabled(ctx context.Context) (bool, error) {
	return s.getBool(ctx, prefs.KeyNotifications, DefaultNotifications)
}

func (s *Settings) SetNotificationsEnabled(ctx context.Context, on bool) error {
	return s.set(ctx, prefs.KeyNotifications, strconv.FormatBool(on))
}

func (s *Settings) Passcode(ctx context.Context) (string, error) {
	v, err := prefs.GetOr(ctx, s.store, prefs.KeyPasscode, DefaultPasscode)
	if err != nil {
		return DefaultPasscode, fmt.Errorf("get passcode: %w", err)
	}
	return v, nil
}

func (s *Settings) SetPasscode(ctx context.Context, passcode string) error {
	if strings.TrimSpace(passcode) == "" {
		return ErrEmptyPasscode
	}
	return s.set(ctx, prefs.KeyPasscode, passcode)
}

// CheckPasscode reports whether input matches the stored passcode.
func (s *Settings) CheckPasscode(ctx context.Context, input string) (bool, error) {
	want, err := s.Passcode(ctx)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(input)) == 1, nil
}

// FirstRun is true until onboarding has been completed.
func (s *Settings) FirstRun(ctx context.Context) (bool, error) {
	return s.getBool(ctx, prefs.KeyFirstTime, DefaultFirstRun)
}

func (s *Settings) SetFirstRun(ctx context.Context, first bool) error {
	return s.set(ctx, prefs.KeyFirstTime, strconv.FormatBool(first))
}

// Snapshot reads every setting except the passcode.
func (s *Settings) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	var err error
	if snap.Currency, err = s.Currency(ctx); err != nil {
		return snap, err
	}
	snap.CurrencySymbol = core.SymbolFor(snap.Currency)
	if snap.MonthlyBudget, err = s.MonthlyBudget(ctx); err != nil {
		return snap, err
	}
	if snap.DarkMode, err = s.DarkMode(ctx); err != nil {
		return snap, err
	}
	if snap.Notifications, err = s.NotificationsEnabled(ctx); err != nil {
		return snap, err
	}
	if snap.FirstRun, err = s.FirstRun(ctx); err != nil {
		return snap, err
	}
	return snap, nil
}

func (s *Settings) get(ctx context.Context, key string) (string, error) {
	v, err := prefs.GetOr(ctx, s.store, key, "")
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return v, nil
}

func (s *Settings) getBool(ctx context.Context, key string, def bool) (bool, error) {
	v, err := s.get(ctx, key)
	if err != nil {
		return def, err
	}
	if v == "" {
		return def, nil
	}
	b, perr := strconv.ParseBool(strings.TrimSpace(v))
	if perr != nil {
		s.malformed(ctx, key, v)
		return def, nil
	}
	return b, nil
}

func (s *Settings) set(ctx context.Context, key, value string) error {
	if err := s.store.Set(ctx, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	s.logger.DebugContext(ctx, "Setting updated", applog.FieldKey, key)
	return nil
}

func (s *Settings) malformed(ctx context.Context, key, value string) {
	s.logger.WarnContext(ctx, "Stored setting unreadable, using default",
		applog.FieldKey, key,
		"value", value)
}
