package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	// Preference store
	Backend      string
	SQLiteDBPath string
	BoltDBPath   string
	SeedFile     string

	// Repository behavior
	CorruptPolicy  string
	MonthWindow    string
	CategoriesFile string

	// Balance check
	LowBalanceThreshold  decimal.Decimal
	BalanceCheckInterval time.Duration

	// AMQP (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	Debug bool
}

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"

	PolicyDegrade = "degrade"
	PolicyStrict  = "strict"
)

// DefaultLowBalanceThreshold is the balance below which an alert is raised.
var DefaultLowBalanceThreshold = decimal.NewFromInt(500)

func Load() *Config {
	return &Config{
		Backend:      getEnv("FINTRACK_BACKEND", BackendSQLite),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/fintrack.db"),
		BoltDBPath:   getEnv("BOLT_DB_PATH", "./data/fintrack.bolt"),
		SeedFile:     getEnv("FINTRACK_SEED_FILE", ""),

		CorruptPolicy:  getEnv("FINTRACK_CORRUPT_POLICY", PolicyDegrade),
		MonthWindow:    getEnv("FINTRACK_MONTH_WINDOW", "month"),
		CategoriesFile: getEnv("FINTRACK_CATEGORIES_FILE", ""),

		LowBalanceThreshold:  getEnvDecimal("LOW_BALANCE_THRESHOLD", DefaultLowBalanceThreshold),
		BalanceCheckInterval: getEnvDuration("BALANCE_CHECK_INTERVAL", 15*time.Minute),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "fintrack"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "balance_alerts"),

		Debug: getEnvBool("FINTRACK_DEBUG", false),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	switch c.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	case BackendBolt:
		if c.BoltDBPath == "" {
			errors = append(errors, "bolt database path cannot be empty when using bolt backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid backend '%s': must be one of %v", c.Backend, []string{BackendMemory, BackendSQLite, BackendBolt}))
	}

	if c.CorruptPolicy != PolicyDegrade && c.CorruptPolicy != PolicyStrict {
		errors = append(errors, fmt.Sprintf("invalid corrupt policy '%s': must be '%s' or '%s'", c.CorruptPolicy, PolicyDegrade, PolicyStrict))
	}

	if c.MonthWindow != "month" && c.MonthWindow != "calendar" {
		errors = append(errors, fmt.Sprintf("invalid month window '%s': must be 'month' or 'calendar'", c.MonthWindow))
	}

	if c.CategoriesFile != "" {
		if _, err := os.Stat(c.CategoriesFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("categories file does not exist: %s", c.CategoriesFile))
		}
	}

	if c.LowBalanceThreshold.IsNegative() {
		errors = append(errors, fmt.Sprintf("invalid low balance threshold %s: must not be negative", c.LowBalanceThreshold))
	}

	if c.BalanceCheckInterval < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid balance check interval %v: must be at least 1 minute", c.BalanceCheckInterval))
	} else if c.BalanceCheckInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid balance check interval %v: must be at most 24 hours", c.BalanceCheckInterval))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// AMQPEnabled reports whether alerts should be published to a broker.
func (c *Config) AMQPEnabled() bool {
	return c.AMQPURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
