package session

import "errors"

// Validation errors. Each aborts the operation with prior state
// unchanged; callers distinguish them with errors.Is.
var (
	ErrNotSignedIn       = errors.New("not signed in")
	ErrInvalidCredential = errors.New("email and password are required")
	ErrEmptyTitle        = errors.New("task title must not be empty")
	ErrEmptyName         = errors.New("category name must not be empty")
	ErrInvalidColor      = errors.New("unknown category color")
	ErrInvalidDate       = errors.New("invalid date, use YYYY-MM-DD")
	ErrInvalidEstimate   = errors.New("estimate must be a number")
)
