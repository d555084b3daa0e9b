package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fintrack/internal/config"
	applog "fintrack/internal/log"
	"fintrack/internal/prefs"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := FromAppConfig(&config.Config{Backend: "redis"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}

	got, err := FromAppConfig(&config.Config{Backend: "bolt", BoltDBPath: "x.bolt", SQLiteDBPath: "x.db", SeedFile: "seed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != BoltBackend || got.BoltDBPath != "x.bolt" || got.SQLiteDBPath != "x.db" || got.SeedFile != "seed" {
		t.Fatalf("unexpected backend config %+v", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"memory without seed", Config{Type: MemoryBackend}, false},
		{"sqlite with path", Config{Type: SQLiteBackend, SQLiteDBPath: "a.db"}, false},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"bolt with path", Config{Type: BoltBackend, BoltDBPath: "a.bolt"}, false},
		{"bolt without path", Config{Type: BoltBackend}, true},
		{"unknown type", Config{Type: "redis"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGetBackendTypeStrings(t *testing.T) {
	got := GetBackendTypeStrings()
	if len(got) != 3 || got[0] != "sqlite" || got[1] != "bolt" || got[2] != "memory" {
		t.Fatalf("unexpected types %v", got)
	}
}

func TestFactory_CreateBackend(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "seed.txt")
	if err := os.WriteFile(seed, []byte("currency=EUR\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		config Config
	}{
		{"memory", Config{Type: MemoryBackend, SeedFile: seed}},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "db", "fintrack.db")}},
		{"bolt", Config{Type: BoltBackend, BoltDBPath: filepath.Join(dir, "bolt", "fintrack.bolt")}},
	}

	factory := NewFactory(applog.Discard())
	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := factory.CreateBackend(ctx, tt.config)
			if err != nil {
				t.Fatalf("create backend: %v", err)
			}
			defer func() {
				if err := res.Cleanup(); err != nil {
					t.Errorf("cleanup: %v", err)
				}
			}()

			if _, err := res.Store.Get(ctx, prefs.KeyTransactions); !errors.Is(err, prefs.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if err := res.Store.Set(ctx, prefs.KeyMonthlyBudget, "250"); err != nil {
				t.Fatalf("set: %v", err)
			}
			if v, err := res.Store.Get(ctx, prefs.KeyMonthlyBudget); err != nil || v != "250" {
				t.Fatalf("expected 250, got %q err=%v", v, err)
			}
		})
	}
}

func TestFactory_MemorySeed(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "seed.txt")
	if err := os.WriteFile(seed, []byte("# comment\ncurrency=EUR\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := NewFactory(applog.Discard()).CreateBackend(context.Background(), Config{Type: MemoryBackend, SeedFile: seed})
	if err != nil {
		t.Fatal(err)
	}
	if v, err := res.Store.Get(context.Background(), prefs.KeyCurrency); err != nil || v != "EUR" {
		t.Fatalf("expected seeded EUR, got %q err=%v", v, err)
	}
}

func TestFactory_RejectsInvalidConfig(t *testing.T) {
	if _, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: SQLiteBackend}); err == nil {
		t.Fatal("expected error")
	}
}
