package sqlerr

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// StorageError is returned by the storage gateway whenever the underlying
// store fails, either while querying or while committing staged changes.
type StorageError struct {
	// Op is the gateway operation that failed ("find", "commit").
	Op string

	// Err is the cause, carrying a stack trace captured at the gateway.
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Driver returns the decoded Postgres error behind e, or nil when the cause
// did not come from Postgres.
func (e *StorageError) Driver() *Error {
	var pgerr *pgconn.PgError
	if errors.As(e.Err, &pgerr) {
		return ConvertPgError(pgerr)
	}
	return nil
}

// Code returns the classification of the cause, Other when unknown.
func (e *StorageError) Code() Code {
	if driverErr := e.Driver(); driverErr != nil {
		return driverErr.Code
	}
	return Other
}

// NewStorageError wraps err as a *StorageError for op. It returns nil for a
// nil err and leaves an existing *StorageError untouched.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}

	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return err
	}

	return &StorageError{
		Op:  op,
		Err: errors.WithStack(err),
	}
}
