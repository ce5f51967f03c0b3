package services

import "errors"

// Client-input errors. Handlers map these to 400.
var (
	ErrInvalidPayload     = errors.New("invalid request data")
	ErrMissingFields      = errors.New("please provide all required fields")
	ErrInvalidDateRange   = errors.New("end date cannot be earlier than start date")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// PersistenceError reports a store failure during Op.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
