package domain

import "errors"

var (
	// ErrInvalidPayload is returned when an event body cannot be decoded
	ErrInvalidPayload = errors.New("invalid event payload")

	// ErrDuplicateEvent is returned when an event id was already recorded
	ErrDuplicateEvent = errors.New("event already recorded")
)

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError wraps err as retryable
func NewRetryableError(err error) *RetryableError {
	return &RetryableError{Err: err}
}
