package domain

import "time"

// ComplaintStatus enumerates the complaint lifecycle. The only
// transition is pending -> resolved, forced by an admin response.
type ComplaintStatus string

const (
	ComplaintStatusPending  ComplaintStatus = "pending"
	ComplaintStatusResolved ComplaintStatus = "resolved"
)

// Complaint is an issue filed by exactly one user. Subject and
// description are free text and never edited after creation; only the
// status changes.
type Complaint struct {
	ID          int64
	UserID      int64
	Subject     string
	Description string
	CreatedAt   time.Time
	Status      ComplaintStatus
}
