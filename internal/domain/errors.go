package domain

import "errors"

// Sentinel errors surfaced to users as flash messages rather than
// request failures.
var (
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrComplaintNotFound = errors.New("complaint not found")
	ErrPermissionDenied  = errors.New("permission denied")
)
