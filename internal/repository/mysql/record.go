package mysql

import (
	"context"
	"fmt"

	"github.com/medrec/records-gateway/internal/model"
	"github.com/medrec/records-gateway/internal/repository"
)

const insertRecordStmt = `INSERT INTO patients (name, date_of_birth) VALUES (?, ?)`

// InsertRecord inserts one record using bound parameters only.
func (s *Store) InsertRecord(ctx context.Context, rec model.RecordInput) (repository.ExecResult, error) {
	db, err := s.open(s.cfg.Name)
	if err != nil {
		return repository.ExecResult{}, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, insertRecordStmt, rec.Name, rec.DateOfBirth)
	if err != nil {
		return repository.ExecResult{}, fmt.Errorf("failed to insert record: %w", err)
	}
	return execResult(res)
}

// Select runs a read statement and returns every row as a column→value
// map. Driver byte slices become strings so the result serializes as JSON
// text rather than base64.
func (s *Store) Select(ctx context.Context, query string) ([]map[string]any, error) {
	db, err := s.open(s.cfg.Name)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	out := make([]map[string]any, 0)
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while reading rows: %w", err)
	}
	return out, nil
}

// Insert runs a client-supplied insert statement as-is. The command
// classifier has already vetted the leading keyword; nothing else about
// the statement is checked here.
func (s *Store) Insert(ctx context.Context, query string) (repository.ExecResult, error) {
	db, err := s.open(s.cfg.Name)
	if err != nil {
		return repository.ExecResult{}, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, query)
	if err != nil {
		return repository.ExecResult{}, fmt.Errorf("failed to execute insert: %w", err)
	}
	return execResult(res)
}
