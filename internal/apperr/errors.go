package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports bad caller input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports a missing snapshot, token or record.
type NotFoundError struct {
	Resource string
	Key      string
	Err      error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q not found: %s", e.Resource, e.Key, e.Err)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ExpiredError reports a guest link past its expiry.
type ExpiredError struct {
	Resource string
}

func (e *ExpiredError) Error() string { return e.Resource + " has expired" }

// StoreError wraps a document store failure.
type StoreError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %s", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IOError wraps a snapshot file failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// BackupError wraps the first failure of a backup run.
type BackupError struct {
	Err error
}

func (e *BackupError) Error() string { return "backup failed: " + e.Err.Error() }

func (e *BackupError) Unwrap() error { return e.Err }

// PartialRestoreError means the live records were deleted but the snapshot
// records could not be written back. Data was lost, not merely left stale.
type PartialRestoreError struct {
	Deleted int
	Err     error
}

func (e *PartialRestoreError) Error() string {
	return fmt.Sprintf("restore left collection empty after deleting %d records: %s", e.Deleted, e.Err)
}

func (e *PartialRestoreError) Unwrap() error { return e.Err }

func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func NotFound(resource, key string) error {
	return &NotFoundError{Resource: resource, Key: key}
}

func Store(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Collection: collection, Err: err}
}

// HTTPStatus maps an error to the status code reported at the HTTP boundary.
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		expired    *ExpiredError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &expired):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
