package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Schema statements are idempotent; the store is auto-created at
// startup and never migrated.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL,
        email TEXT NOT NULL UNIQUE,
        role TEXT NOT NULL CHECK (role IN ('regular', 'admin')),
        created_at TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS complaints (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        user_id INTEGER NOT NULL,
        subject TEXT NOT NULL,
        description TEXT NOT NULL,
        created_at TIMESTAMP NOT NULL,
        status TEXT NOT NULL CHECK (status IN ('pending', 'resolved')) DEFAULT 'pending',
        FOREIGN KEY (user_id) REFERENCES users(id)
    )`,
	`CREATE TABLE IF NOT EXISTS responses (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        complaint_id INTEGER NOT NULL,
        content TEXT NOT NULL,
        created_at TIMESTAMP NOT NULL,
        FOREIGN KEY (complaint_id) REFERENCES complaints(id)
    )`,
}

// InitSchema creates the three tables if absent. Existing rows are
// never touched; running it twice is a no-op.
func InitSchema(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	if db == nil {
		return sql.ErrConnDone
	}

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	logger.Info("schema initialized", zap.Int("tables", len(schemaStatements)))
	return nil
}
