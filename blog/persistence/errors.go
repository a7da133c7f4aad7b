package persistence

import "fmt"

// StorageError wraps a storage backend fault (network, timeout,
// serialization). It is distinct from the domain error types so callers can
// decide retry eligibility: storage errors are plausibly retryable, domain
// errors are not. The repository never translates domain content into a
// StorageError.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
