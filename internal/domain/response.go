package domain

import "time"

// Response is an admin-authored reply bound to one complaint. Creating
// a response resolves the complaint regardless of its prior state.
type Response struct {
	ID          int64
	ComplaintID int64
	Content     string
	CreatedAt   time.Time
}
