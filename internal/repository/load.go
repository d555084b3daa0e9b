package repository

import "fintrack/internal/core"

// LoadState classifies what was found under the transactions key.
type LoadState int

const (
	// StateEmpty means nothing has been stored yet.
	StateEmpty LoadState = iota
	// StateOK means the stored collection decoded cleanly.
	StateOK
	// StateCorrupt means a value is stored but cannot be decoded.
	StateCorrupt
)

func (s LoadState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateOK:
		return "ok"
	case StateCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// LoadResult is the outcome of reading the stored collection. Cause is set
// only for StateCorrupt.
type LoadResult struct {
	State        LoadState
	Transactions []core.Transaction
	Cause        error
}
