package service

import "errors"

// Validation sentinels. Handlers map these to HTTP 400 before any store
// access has happened.
var (
	ErrInvalidPagination = errors.New("page and page size must be positive")
	ErrInvalidAction     = errors.New("unknown audit action")
	ErrInvalidMutation   = errors.New("mutation kind must be create, update or delete")
	ErrInvalidDateRange  = errors.New("date range start must not be after end")

	// ErrAuditQueueFull reports a dropped audit event. Callers log it and
	// carry on; it never fails the triggering business operation.
	ErrAuditQueueFull = errors.New("audit queue full")

	// ErrRecorderClosed reports an event arriving after shutdown began.
	// Same caller contract as a full queue: log and carry on.
	ErrRecorderClosed = errors.New("audit recorder closed")

	// ErrInvalidCredentials hides whether the email or the password was
	// wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken signals a duplicate registration attempt.
	ErrEmailTaken = errors.New("email already registered")
)
