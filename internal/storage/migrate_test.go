package storage

import (
	"path/filepath"
	"testing"
)

func TestRunMigrationsSetsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fintrack.db")

	if v, dirty, err := SchemaVersion(path); err != nil || v != 0 || dirty {
		t.Fatalf("fresh database: version=%d dirty=%v err=%v", v, dirty, err)
	}
	if err := RunMigrations(path); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// Second run is a no-op.
	if err := RunMigrations(path); err != nil {
		t.Fatalf("migrate again: %v", err)
	}
	v, dirty, err := SchemaVersion(path)
	if err != nil || v != 1 || dirty {
		t.Fatalf("expected version 1 clean, got version=%d dirty=%v err=%v", v, dirty, err)
	}
}
