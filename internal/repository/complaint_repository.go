package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

// ComplaintRepository encapsulates complaint persistence. Listings use
// natural store order; there is no filtering or pagination beyond the
// owner scope.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id int64) (*domain.Complaint, error)
	ListAll(ctx context.Context) ([]domain.Complaint, error)
	ListByOwner(ctx context.Context, userID int64) ([]domain.Complaint, error)
}

type complaintRepository struct {
	db *sql.DB
}

// NewComplaintRepository returns a sqlite-backed implementation.
func NewComplaintRepository(db *sql.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (user_id, subject, description, created_at)
        VALUES (?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		complaint.UserID,
		complaint.Subject,
		complaint.Description,
		complaint.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	complaint.ID = id
	complaint.Status = domain.ComplaintStatusPending
	return nil
}

func (r *complaintRepository) GetByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	const query = `
        SELECT id, user_id, subject, description, created_at, status
        FROM complaints WHERE id = ?`

	var complaint domain.Complaint
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&complaint.ID,
		&complaint.UserID,
		&complaint.Subject,
		&complaint.Description,
		&complaint.CreatedAt,
		&complaint.Status,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrComplaintNotFound
		}
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	const query = `
        SELECT id, user_id, subject, description, created_at, status
        FROM complaints ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) ListByOwner(ctx context.Context, userID int64) ([]domain.Complaint, error) {
	const query = `
        SELECT id, user_id, subject, description, created_at, status
        FROM complaints WHERE user_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func scanComplaints(rows *sql.Rows) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(
			&complaint.ID,
			&complaint.UserID,
			&complaint.Subject,
			&complaint.Description,
			&complaint.CreatedAt,
			&complaint.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}
