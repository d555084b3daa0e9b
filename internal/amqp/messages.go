package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// LowBalanceAlert is published when the month's balance drops below the
// configured threshold.
type LowBalanceAlert struct {
	Balance   decimal.Decimal `json:"balance"`
	Threshold decimal.Decimal `json:"threshold"`
	Currency  string          `json:"currency"`
	Symbol    string          `json:"symbol"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewLowBalanceAlert creates an alert stamped with now
func NewLowBalanceAlert(balance, threshold decimal.Decimal, currency string, now time.Time) *LowBalanceAlert {
	return &LowBalanceAlert{
		Balance:   balance,
		Threshold: threshold,
		Currency:  currency,
		Symbol:    core.SymbolFor(currency),
		Timestamp: now,
	}
}

// Title is the notification headline.
func (m *LowBalanceAlert) Title() string {
	return "Low Balance Alert"
}

// Text is the notification body.
func (m *LowBalanceAlert) Text() string {
	return fmt.Sprintf("Your current balance is %s. Please manage your expenses carefully.",
		core.FormatAmount(m.Symbol, m.Balance))
}

// ToJSON converts the message to JSON bytes
func (m *LowBalanceAlert) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LowBalanceAlertFromJSON creates a message from JSON bytes
func LowBalanceAlertFromJSON(data []byte) (*LowBalanceAlert, error) {
	var msg LowBalanceAlert
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
