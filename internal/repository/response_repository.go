package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

// ResponseRepository encapsulates response persistence.
type ResponseRepository interface {
	ListByComplaint(ctx context.Context, complaintID int64) ([]domain.Response, error)
	// CreateAndResolve inserts the response and marks the complaint
	// resolved inside one transaction, so a crash can never leave a
	// response without the matching status.
	CreateAndResolve(ctx context.Context, response *domain.Response) error
}

type responseRepository struct {
	db *sql.DB
}

// NewResponseRepository returns a sqlite-backed implementation.
func NewResponseRepository(db *sql.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) ListByComplaint(ctx context.Context, complaintID int64) ([]domain.Response, error) {
	const query = `
        SELECT id, complaint_id, content, created_at
        FROM responses WHERE complaint_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Response
	for rows.Next() {
		var response domain.Response
		if err := rows.Scan(
			&response.ID,
			&response.ComplaintID,
			&response.Content,
			&response.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, response)
	}
	return result, rows.Err()
}

func (r *responseRepository) CreateAndResolve(ctx context.Context, response *domain.Response) error {
	const insertQuery = `
        INSERT INTO responses (complaint_id, content, created_at)
        VALUES (?, ?, ?)`
	const resolveQuery = `
        UPDATE complaints SET status = ? WHERE id = ?`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, insertQuery,
		response.ComplaintID,
		response.Content,
		response.CreatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			return domain.ErrComplaintNotFound
		}
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	cmd, err := tx.ExecContext(ctx, resolveQuery, domain.ComplaintStatusResolved, response.ComplaintID)
	if err != nil {
		return err
	}
	if affected, err := cmd.RowsAffected(); err != nil {
		return err
	} else if affected == 0 {
		return domain.ErrComplaintNotFound
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	response.ID = id
	return nil
}
