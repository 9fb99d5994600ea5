package repository

import (
	"context"

	"github.com/medrec/records-gateway/internal/model"
)

// ExecResult is the outcome of a write statement.
type ExecResult struct {
	RowsAffected int64
	LastInsertID int64
}

// RecordStore executes statements against the backing database. Every call
// owns its connection for the duration of exactly one statement; there is
// no pooling or reuse across calls.
type RecordStore interface {
	// EnsureSchema idempotently creates the database and records table.
	EnsureSchema(ctx context.Context) error
	// InsertRecord inserts one patient record with bound parameters.
	InsertRecord(ctx context.Context, rec model.RecordInput) (ExecResult, error)
	// Select runs a read statement and returns the rows as maps.
	Select(ctx context.Context, query string) ([]map[string]any, error)
	// Insert runs a client-supplied insert statement verbatim.
	Insert(ctx context.Context, query string) (ExecResult, error)
}
