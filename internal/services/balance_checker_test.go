package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/prefs/memory"
	"fintrack/internal/repository"
	"fintrack/internal/settings"
)

type fakeBalance struct {
	balance decimal.Decimal
	err     error
}

func (f fakeBalance) Balance(context.Context) (decimal.Decimal, error) { return f.balance, f.err }

type fakeSettings struct {
	notifications bool
	currency      string
	err           error
}

func (f fakeSettings) NotificationsEnabled(context.Context) (bool, error) {
	return f.notifications, f.err
}
func (f fakeSettings) Currency(context.Context) (string, error) { return f.currency, nil }

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []*amqp.LowBalanceAlert
	err    error
}

func (n *recordingNotifier) PublishLowBalanceAlert(_ context.Context, alert *amqp.LowBalanceAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.alerts = append(n.alerts, alert)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.alerts)
}

func TestDefaultBalanceCheckerConfig(t *testing.T) {
	config := DefaultBalanceCheckerConfig()
	if !config.Threshold.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected threshold 500, got %s", config.Threshold)
	}
	if config.Now == nil {
		t.Error("expected a clock")
	}
}

func TestBalanceChecker_Check(t *testing.T) {
	tests := []struct {
		name          string
		balance       int64
		notifications bool
		wantLow       bool
		wantNotified  bool
	}{
		{"above threshold", 800, true, false, false},
		{"exactly at threshold", 500, true, false, false},
		{"below threshold", 499, true, true, true},
		{"negative balance", -20, true, true, true},
		{"below threshold but notifications off", 100, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &recordingNotifier{}
			checker := NewBalanceChecker(
				fakeBalance{balance: decimal.NewFromInt(tt.balance)},
				fakeSettings{notifications: tt.notifications, currency: "GBP"},
				notifier,
				DefaultBalanceCheckerConfig(),
				applog.Discard(),
			)

			status, err := checker.Check(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if status.Low != tt.wantLow || status.Notified != tt.wantNotified {
				t.Fatalf("got low=%v notified=%v", status.Low, status.Notified)
			}
			wantCount := 0
			if tt.wantNotified {
				wantCount = 1
			}
			if notifier.count() != wantCount {
				t.Fatalf("expected %d alerts, got %d", wantCount, notifier.count())
			}
			if tt.wantNotified {
				alert := notifier.alerts[0]
				if alert.Currency != "GBP" || alert.Symbol != "£" || !alert.Balance.Equal(decimal.NewFromInt(tt.balance)) {
					t.Fatalf("unexpected alert %+v", alert)
				}
			}
		})
	}
}

func TestBalanceChecker_EvaluateIgnoresNotificationSetting(t *testing.T) {
	checker := NewBalanceChecker(
		fakeBalance{balance: decimal.NewFromInt(10)},
		fakeSettings{notifications: false, currency: "USD"},
		nil,
		DefaultBalanceCheckerConfig(),
		applog.Discard(),
	)
	status, err := checker.Evaluate(context.Background())
	if err != nil || !status.Low || status.Symbol() != "$" {
		t.Fatalf("unexpected status %+v err=%v", status, err)
	}
}

func TestBalanceChecker_Errors(t *testing.T) {
	boom := errors.New("boom")
	config := DefaultBalanceCheckerConfig()

	checker := NewBalanceChecker(fakeBalance{err: boom}, fakeSettings{}, nil, config, applog.Discard())
	if _, err := checker.Check(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected balance error, got %v", err)
	}

	checker = NewBalanceChecker(fakeBalance{}, fakeSettings{err: boom}, nil, config, applog.Discard())
	if _, err := checker.Check(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected settings error, got %v", err)
	}

	checker = NewBalanceChecker(fakeBalance{}, fakeSettings{notifications: true}, &recordingNotifier{err: boom}, config, applog.Discard())
	if _, err := checker.Check(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected notifier error, got %v", err)
	}
}

func TestBalanceChecker_NilNotifierDoesNotFail(t *testing.T) {
	checker := NewBalanceChecker(fakeBalance{}, fakeSettings{notifications: true}, nil, DefaultBalanceCheckerConfig(), applog.Discard())
	status, err := checker.Check(context.Background())
	if err != nil || status.Notified {
		t.Fatalf("expected silent skip, got %+v err=%v", status, err)
	}
}

func TestLogNotifier(t *testing.T) {
	n := NewLogNotifier(applog.Discard())
	alert := amqp.NewLowBalanceAlert(decimal.NewFromInt(1), decimal.NewFromInt(500), "USD", time.Now())
	if err := n.PublishLowBalanceAlert(context.Background(), alert); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBalanceChecker_AgainstRepository(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	store := memory.New()
	cfg := repository.DefaultConfig()
	cfg.Now = func() time.Time { return now }
	cfg.Logger = applog.Discard()
	repo := repository.New(store, cfg)
	prefs := settings.New(store, applog.Discard())
	ctx := context.Background()

	for _, tx := range []core.Transaction{
		{ID: "i", Amount: decimal.NewFromInt(1000), Type: core.Income, Category: "Salary", Date: now},
		{ID: "e", Amount: decimal.NewFromInt(700), Type: core.Expense, Category: "Holidays", Date: now},
	} {
		if err := repo.Add(ctx, tx); err != nil {
			t.Fatal(err)
		}
	}

	notifier := &recordingNotifier{}
	checker := NewBalanceChecker(repo, prefs, notifier, DefaultBalanceCheckerConfig(), applog.Discard())
	status, err := checker.Check(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !status.Balance.Equal(decimal.NewFromInt(300)) || !status.Notified {
		t.Fatalf("expected a 300 balance alert, got %+v", status)
	}

	if err := prefs.SetNotificationsEnabled(ctx, false); err != nil {
		t.Fatal(err)
	}
	if status, _ := checker.Check(ctx); status.Notified {
		t.Fatalf("notifications disabled, alert must not be sent")
	}
	if notifier.count() != 1 {
		t.Fatalf("expected exactly one alert, got %d", notifier.count())
	}
}
