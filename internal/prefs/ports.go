// Package prefs declares the preference store port: a flat string
// key/value space holding scalar settings and the serialized transaction
// collection.
package prefs

import (
	"context"
	"errors"
)

// Well-known keys.
const (
	KeyTransactions  = "transactions"
	KeyMonthlyBudget = "monthly_budget"
	KeyCurrency      = "currency"
	KeyDarkMode      = "dark_mode"
	KeyNotifications = "notifications"
	KeyPasscode      = "passcode"
	KeyFirstTime     = "first_time"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("preference not found")

// Ports for outbound adapters.
type (
	Reader interface {
		Get(ctx context.Context, key string) (string, error)
	}

	Writer interface {
		// Set replaces the whole value stored under key.
		Set(ctx context.Context, key, value string) error
		Delete(ctx context.Context, key string) error
	}

	// Store is a complete preference backend.
	Store interface {
		Reader
		Writer
		Close() error
	}
)

// GetOr returns the stored value, or def when the key is unset.
func GetOr(ctx context.Context, r Reader, key, def string) (string, error) {
	v, err := r.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return v, nil
}
