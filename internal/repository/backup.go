package repository

import (
	"context"
	"fmt"
	"io"
	"time"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

const backupTimeLayout = "20060102_150405"

// BackupFileName names an export file after its creation time.
func BackupFileName(now time.Time) string {
	return "financial_tracker_backup_" + now.Format(backupTimeLayout) + ".json"
}

// Export writes the collection to w as a JSON array and returns how many
// transactions were written.
func (r *Repository) Export(ctx context.Context, w io.Writer) (int, error) {
	txs, err := r.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("export transactions: %w", err)
	}
	data, err := core.EncodeTransactions(txs)
	if err != nil {
		return 0, fmt.Errorf("export transactions: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return 0, fmt.Errorf("export transactions: %w", err)
	}
	r.logger.InfoContext(ctx, "Transactions exported",
		applog.FieldOperation, applog.OpExport,
		applog.FieldCount, len(txs))
	return len(txs), nil
}

// Import replaces the whole collection with the array read from rd. A
// payload that does not decode leaves the store untouched. Import ignores
// the corrupt policy so a damaged store can be restored.
func (r *Repository) Import(ctx context.Context, rd io.Reader) (int, error) {
	txs, err := core.ReadTransactions(rd)
	if err != nil {
		return 0, fmt.Errorf("import transactions: %w", err)
	}
	if err := r.Replace(ctx, txs); err != nil {
		return 0, fmt.Errorf("import transactions: %w", err)
	}
	r.logger.InfoContext(ctx, "Transactions imported",
		applog.FieldOperation, applog.OpImport,
		applog.FieldCount, len(txs))
	return len(txs), nil
}
