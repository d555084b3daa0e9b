package amqp

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLowBalanceAlert_JSONRoundTrip(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	msg := NewLowBalanceAlert(decimal.RequireFromString("120.5"), decimal.NewFromInt(500), "EUR", now)

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := LowBalanceAlertFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !got.Balance.Equal(msg.Balance) || !got.Threshold.Equal(msg.Threshold) {
		t.Errorf("amounts differ: %+v vs %+v", got, msg)
	}
	if got.Currency != "EUR" || got.Symbol != "€" || !got.Timestamp.Equal(now) {
		t.Errorf("unexpected fields %+v", got)
	}
}

func TestLowBalanceAlert_FromJSONRejectsGarbage(t *testing.T) {
	if _, err := LowBalanceAlertFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error")
	}
}

func TestLowBalanceAlert_Text(t *testing.T) {
	tests := []struct {
		name     string
		balance  string
		currency string
		want     string
	}{
		{"positive", "450", "USD", "Your current balance is $450.00. Please manage your expenses carefully."},
		{"negative", "-12.3", "GBP", "Your current balance is -£12.30. Please manage your expenses carefully."},
		{"unknown currency falls back", "1", "CHF", "Your current balance is $1.00. Please manage your expenses carefully."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := NewLowBalanceAlert(decimal.RequireFromString(tt.balance), decimal.NewFromInt(500), tt.currency, time.Now())
			if got := msg.Text(); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			if msg.Title() != "Low Balance Alert" {
				t.Fatalf("unexpected title %q", msg.Title())
			}
		})
	}
}
