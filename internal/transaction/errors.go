package transaction

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("invalid transaction")
	ErrNotFound     = errors.New("transaction not found")
	ErrImportFormat = errors.New("invalid import format")
	ErrPersistence  = errors.New("persisting transactions")
)

// ValidationError reports the first field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ImportFormatError rejects a whole import. Index is the offending element,
// or -1 when the document itself has the wrong shape.
type ImportFormatError struct {
	Index int
	Err   error
}

func (e *ImportFormatError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", ErrImportFormat, e.Err)
	}

	return fmt.Sprintf("%s: entry %d: %v", ErrImportFormat, e.Index, e.Err)
}

func (e *ImportFormatError) Unwrap() []error { return []error{ErrImportFormat, e.Err} }

// PersistenceError wraps a failed read or write of the persisted snapshot.
// The in-memory ledger stays authoritative when a save fails.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s transactions: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }
