// Package bolt keeps preferences in a single bbolt bucket.
package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bbolt "go.etcd.io/bbolt"

	"fintrack/internal/prefs"
)

// BucketPreferences holds every preference key.
const BucketPreferences = "preferences"

// Store represents the bbolt database wrapper.
type Store struct {
	db *bbolt.DB
}

// Open creates the database file if needed and initializes the bucket.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(BucketPreferences)); err != nil {
			return fmt.Errorf("create bucket %s: %w", BucketPreferences, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get retrieves the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, error) {
	var value string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketPreferences))
		if b == nil {
			return fmt.Errorf("bucket %s not found", BucketPreferences)
		}

		data := b.Get([]byte(key))
		if data == nil {
			return prefs.ErrNotFound
		}

		// data is only valid inside the transaction; string() copies it.
		value = string(data)
		return nil
	})
	return value, err
}

// Set stores value under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketPreferences))
		if b == nil {
			return fmt.Errorf("bucket %s not found", BucketPreferences)
		}
		return b.Put([]byte(key), []byte(value))
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketPreferences))
		if b == nil {
			return fmt.Errorf("bucket %s not found", BucketPreferences)
		}
		return b.Delete([]byte(key))
	})
}

// Keys lists every stored key in byte order.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketPreferences))
		if b == nil {
			return fmt.Errorf("bucket %s not found", BucketPreferences)
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}
