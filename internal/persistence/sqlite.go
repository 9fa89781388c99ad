package persistence

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-desk/internal/config"
)

// SQLite wraps access to the file-backed relational store.
type SQLite struct {
	DB *sql.DB
}

// NewSQLite opens the store at the configured path, creating the file
// when absent. Foreign keys are enforced on every connection.
func NewSQLite(ctx context.Context, cfg config.SQLiteConfig, logger *zap.Logger) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", cfg.Path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// sqlite supports one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("opened sqlite store", zap.String("path", cfg.Path))
	return &SQLite{DB: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() {
	if s != nil && s.DB != nil {
		_ = s.DB.Close()
	}
}

// Handle returns the underlying database handle.
func (s *SQLite) Handle() *sql.DB {
	if s == nil {
		return nil
	}
	return s.DB
}

// Ping verifies store connectivity.
func (s *SQLite) Ping(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return sql.ErrConnDone
	}
	return s.DB.PingContext(ctx)
}
