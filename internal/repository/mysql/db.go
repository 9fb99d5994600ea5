package mysql

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/medrec/records-gateway/internal/config"
	"github.com/medrec/records-gateway/internal/repository"
)

// Store talks to MySQL with a fresh connection per call. It holds only the
// connection parameters, never an open handle, so requests share nothing.
type Store struct {
	cfg config.DatabaseConfig
}

func NewStore(cfg config.DatabaseConfig) *Store {
	return &Store{cfg: cfg}
}

// dsn builds the driver DSN. dbName may be empty for server-level
// statements such as CREATE DATABASE.
func (s *Store) dsn(dbName string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		s.cfg.User,
		s.cfg.Password,
		s.cfg.Host,
		s.cfg.Port,
		dbName,
	)
}

// open connects and pings. Callers must Close the returned handle once
// their single statement completes.
func (s *Store) open(dbName string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", s.dsn(dbName))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func execResult(res sql.Result) (repository.ExecResult, error) {
	affected, err := res.RowsAffected()
	if err != nil {
		return repository.ExecResult{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	insertID, err := res.LastInsertId()
	if err != nil {
		return repository.ExecResult{}, fmt.Errorf("failed to read insert id: %w", err)
	}
	return repository.ExecResult{RowsAffected: affected, LastInsertID: insertID}, nil
}
