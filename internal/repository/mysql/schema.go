package mysql

import (
	"context"
	"fmt"
)

const createTableStmt = `
	CREATE TABLE IF NOT EXISTS patients (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		date_of_birth DATETIME NOT NULL
	)`

// EnsureSchema creates the database and the patients table if absent.
// It runs to completion before the server starts listening.
func (s *Store) EnsureSchema(ctx context.Context) error {
	db, err := s.open("")
	if err != nil {
		return fmt.Errorf("failed to connect for schema init: %w", err)
	}
	_, err = db.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", s.cfg.Name))
	db.Close()
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	db, err = s.open(s.cfg.Name)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", s.cfg.Name, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, createTableStmt); err != nil {
		return fmt.Errorf("failed to create patients table: %w", err)
	}
	return nil
}
