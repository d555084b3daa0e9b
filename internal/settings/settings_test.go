package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	applog "fintrack/internal/log"
	"fintrack/internal/prefs"
	"fintrack/internal/prefs/memory"
)

func newTestSettings() (*Settings, *memory.Store) {
	store := memory.New()
	return New(store, applog.Discard()), store
}

func TestSettings_Defaults(t *testing.T) {
	s, _ := newTestSettings()
	snap, err := s.Snapshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if snap.Currency != "USD" || snap.CurrencySymbol != "$" {
		t.Errorf("unexpected currency %s %s", snap.Currency, snap.CurrencySymbol)
	}
	if !snap.MonthlyBudget.IsZero() {
		t.Errorf("expected zero budget, got %s", snap.MonthlyBudget)
	}
	if snap.DarkMode || !snap.Notifications || !snap.FirstRun {
		t.Errorf("unexpected flags %+v", snap)
	}
	if ok, _ := s.CheckPasscode(context.Background(), "1234"); !ok {
		t.Errorf("default passcode should be 1234")
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	s, _ := newTestSettings()
	ctx := context.Background()

	if err := s.SetCurrency(ctx, "eur"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMonthlyBudget(ctx, decimal.RequireFromString("1250.50")); err != nil {
		t.Fatal(err)
	}
	if err := s.SetDarkMode(ctx, true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetNotificationsEnabled(ctx, false); err != nil {
		t.Fatal(err)
	}
	if err := s.SetFirstRun(ctx, false); err != nil {
		t.Fatal(err)
	}
	if err := s.SetPasscode(ctx, "9876"); err != nil {
		t.Fatal(err)
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Currency != "EUR" || snap.CurrencySymbol != "€" {
		t.Errorf("unexpected currency %s %s", snap.Currency, snap.CurrencySymbol)
	}
	if !snap.MonthlyBudget.Equal(decimal.RequireFromString("1250.5")) {
		t.Errorf("unexpected budget %s", snap.MonthlyBudget)
	}
	if !snap.DarkMode || snap.Notifications || snap.FirstRun {
		t.Errorf("unexpected flags %+v", snap)
	}
	if ok, _ := s.CheckPasscode(ctx, "1234"); ok {
		t.Errorf("old passcode must no longer match")
	}
	if ok, _ := s.CheckPasscode(ctx, "9876"); !ok {
		t.Errorf("new passcode should match")
	}
}

func TestSettings_RejectsInvalidInput(t *testing.T) {
	s, store := newTestSettings()
	ctx := context.Background()

	if err := s.SetCurrency(ctx, "XYZ"); !errors.Is(err, ErrUnsupportedCurrency) {
		t.Errorf("expected ErrUnsupportedCurrency, got %v", err)
	}
	if err := s.SetMonthlyBudget(ctx, decimal.NewFromInt(-5)); !errors.Is(err, ErrNegativeBudget) {
		t.Errorf("expected ErrNegativeBudget, got %v", err)
	}
	if err := s.SetPasscode(ctx, "  "); !errors.Is(err, ErrEmptyPasscode) {
		t.Errorf("expected ErrEmptyPasscode, got %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("rejected input must not be stored")
	}
}

func TestSettings_MalformedValuesFallBack(t *testing.T) {
	s, store := newTestSettings()
	ctx := context.Background()
	for key, value := range map[string]string{
		prefs.KeyMonthlyBudget: "lots",
		prefs.KeyDarkMode:      "sometimes",
		prefs.KeyNotifications: "?",
		prefs.KeyFirstTime:     "",
	} {
		_ = store.Set(ctx, key, value)
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !snap.MonthlyBudget.IsZero() || snap.DarkMode || !snap.Notifications || !snap.FirstRun {
		t.Fatalf("expected defaults, got %+v", snap)
	}
}

func TestSettings_UnknownCurrencySymbol(t *testing.T) {
	s, store := newTestSettings()
	_ = store.Set(context.Background(), prefs.KeyCurrency, "CHF")
	sym, err := s.CurrencySymbol(context.Background())
	if err != nil || sym != "$" {
		t.Fatalf("expected fallback $, got %q err=%v", sym, err)
	}
}

type brokenStore struct{ err error }

func (b brokenStore) Get(context.Context, string) (string, error) { return "", b.err }
func (b brokenStore) Set(context.Context, string, string) error   { return b.err }
func (b brokenStore) Delete(context.Context, string) error        { return b.err }

func TestSettings_StoreErrorsPropagate(t *testing.T) {
	boom := errors.New("io")
	s := New(brokenStore{err: boom}, applog.Discard())
	ctx := context.Background()

	if _, err := s.Currency(ctx); !errors.Is(err, boom) {
		t.Errorf("currency: expected io error, got %v", err)
	}
	if _, err := s.NotificationsEnabled(ctx); !errors.Is(err, boom) {
		t.Errorf("notifications: expected io error, got %v", err)
	}
	if err := s.SetDarkMode(ctx, true); !errors.Is(err, boom) {
		t.Errorf("dark mode: expected io error, got %v", err)
	}
	if _, err := s.Snapshot(ctx); !errors.Is(err, boom) {
		t.Errorf("snapshot: expected io error, got %v", err)
	}
}
