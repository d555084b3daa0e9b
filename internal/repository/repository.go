// Package repository owns the persisted transaction collection.
//
// The whole collection lives under a single preference key as a JSON array.
// Every mutation reads the array, changes it in memory and writes it back in
// full; every aggregate is a fresh scan. A mutex serializes those
// read-modify-write sequences within one Repository value. Nothing guards
// against a second process writing the same store.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/prefs"
)

// ErrCorruptStore is returned under the strict policy when the stored
// collection cannot be decoded.
var ErrCorruptStore = errors.New("stored transactions are corrupt")

// CorruptPolicy selects how an undecodable collection is treated.
type CorruptPolicy string

const (
	// Degrade treats an undecodable collection as empty. The next write
	// overwrites it.
	Degrade CorruptPolicy = "degrade"
	// Strict surfaces ErrCorruptStore from reads and mutations. Import
	// still works so a backup can be restored over the damage.
	Strict CorruptPolicy = "strict"
)

// Store is the slice of the preference store the repository needs.
type Store interface {
	prefs.Reader
	prefs.Writer
}

type Config struct {
	MonthWindow   core.MonthWindow
	CorruptPolicy CorruptPolicy
	// Now is consulted for "current month" and for default dates.
	Now    func() time.Time
	Logger *applog.Logger
}

func DefaultConfig() Config {
	return Config{
		MonthWindow:   core.MonthOfYear,
		CorruptPolicy: Degrade,
		Now:           time.Now,
	}
}

type Repository struct {
	mu     sync.Mutex
	store  Store
	window core.MonthWindow
	policy CorruptPolicy
	now    func() time.Time
	logger *applog.Logger
}

func New(store Store, config Config) *Repository {
	if config.MonthWindow == "" {
		config.MonthWindow = core.MonthOfYear
	}
	if config.CorruptPolicy == "" {
		config.CorruptPolicy = Degrade
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	logger := config.Logger
	if logger == nil {
		logger = applog.FromSlog(nil, applog.ComponentRepository)
	}
	return &Repository{
		store:  store,
		window: config.MonthWindow,
		policy: config.CorruptPolicy,
		now:    config.Now,
		logger: logger,
	}
}

// Now returns the repository's notion of the current time.
func (r *Repository) Now() time.Time {
	return r.now()
}

// NewTransaction builds a draft using the repository clock for the default
// date.
func (r *Repository) NewTransaction(d core.Draft) core.Transaction {
	return d.Build(r.now())
}

// Load reads the stored collection and classifies it. The error is reserved
// for store failures; decode failures are reported as StateCorrupt.
func (r *Repository) Load(ctx context.Context) (LoadResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *Repository) load(ctx context.Context) (LoadResult, error) {
	raw, err := r.store.Get(ctx, prefs.KeyTransactions)
	if errors.Is(err, prefs.ErrNotFound) {
		return LoadResult{State: StateEmpty}, nil
	}
	if err != nil {
		return LoadResult{}, fmt.Errorf("read transactions: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return LoadResult{State: StateEmpty}, nil
	}

	txs, err := core.DecodeTransactions([]byte(raw))
	if err != nil {
		return LoadResult{State: StateCorrupt, Cause: err}, nil
	}
	return LoadResult{State: StateOK, Transactions: txs}, nil
}

// collection applies the corrupt policy on top of load.
func (r *Repository) collection(ctx context.Context, op string) ([]core.Transaction, error) {
	res, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if res.State != StateCorrupt {
		return res.Transactions, nil
	}
	if r.policy == Strict {
		return nil, fmt.Errorf("%w: %w", ErrCorruptStore, res.Cause)
	}
	r.logger.WarnContext(ctx, "Stored transactions unreadable, treating as empty",
		applog.FieldOperation, op,
		applog.FieldError, res.Cause)
	return nil, nil
}

func (r *Repository) save(ctx context.Context, op string, txs []core.Transaction) error {
	data, err := core.EncodeTransactions(txs)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, prefs.KeyTransactions, string(data)); err != nil {
		return fmt.Errorf("write transactions: %w", err)
	}
	r.logger.DebugContext(ctx, "Transactions written",
		applog.FieldOperation, op,
		applog.FieldCount, len(txs))
	return nil
}

// Add appends t to the collection.
func (r *Repository) Add(ctx context.Context, t core.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	txs, err := r.collection(ctx, applog.OpAdd)
	if err != nil {
		return fmt.Errorf("add transaction: %w", err)
	}
	txs = append(txs, t)
	if err := r.save(ctx, applog.OpAdd, txs); err != nil {
		return fmt.Errorf("add transaction: %w", err)
	}
	return nil
}

// Update replaces the first entry whose ID matches t.ID. An unknown ID
// leaves the collection untouched and is not an error.
func (r *Repository) Update(ctx context.Context, t core.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	txs, err := r.collection(ctx, applog.OpUpdate)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	idx := indexOf(txs, t.ID)
	if idx == -1 {
		r.logger.DebugContext(ctx, "Update skipped, no transaction with id", applog.FieldID, t.ID)
		return nil
	}
	txs[idx] = t
	if err := r.save(ctx, applog.OpUpdate, txs); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

// Delete removes every entry with the given ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	txs, err := r.collection(ctx, applog.OpDelete)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	kept := txs[:0]
	for _, t := range txs {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if err := r.save(ctx, applog.OpDelete, kept); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// List returns the collection in stored order.
func (r *Repository) List(ctx context.Context) ([]core.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	txs, err := r.collection(ctx, applog.OpList)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	return txs, nil
}

// Get returns the first transaction with the given ID.
func (r *Repository) Get(ctx context.Context, id string) (core.Transaction, bool, error) {
	txs, err := r.List(ctx)
	if err != nil {
		return core.Transaction{}, false, err
	}
	if idx := indexOf(txs, id); idx != -1 {
		return txs[idx], true, nil
	}
	return core.Transaction{}, false, nil
}

// Replace overwrites the whole collection with txs.
func (r *Repository) Replace(ctx context.Context, txs []core.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.save(ctx, applog.OpImport, txs); err != nil {
		return fmt.Errorf("replace transactions: %w", err)
	}
	return nil
}

func indexOf(txs []core.Transaction, id string) int {
	for i, t := range txs {
		if t.ID == id {
			return i
		}
	}
	return -1
}
