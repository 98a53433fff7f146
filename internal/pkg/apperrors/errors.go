package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the five error categories the application produces.
// Typed errors below unwrap to one of these so callers can classify with
// errors.Is without caring about the concrete type.
var (
	// ErrValidation marks construction-time invariant violations.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks lookups for entities that do not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate marks uniqueness violations against stored state.
	ErrDuplicate = errors.New("duplicate resource")
	// ErrBusinessRule marks cross-entity workflow rule violations.
	ErrBusinessRule = errors.New("business rule violated")
	// ErrPersistence wraps underlying storage failures.
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError reports the first field-level rule an entity factory
// rejected. It is always a caller/input bug, never retried.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Unwrap links the error to ErrValidation
func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field rule
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports an absent entity together with the identifier
// that was looked up.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// Unwrap links the error to ErrNotFound
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError creates a NotFoundError carrying the offending id
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// DuplicateError reports a uniqueness violation. It is distinct from
// ValidationError because it depends on stored state, not input shape.
type DuplicateError struct {
	Resource string
	Key      string
}

// Error implements the error interface
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.Key)
}

// Unwrap links the error to ErrDuplicate
func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// NewDuplicateError creates a DuplicateError for the given natural key
func NewDuplicateError(resource, key string) error {
	return &DuplicateError{Resource: resource, Key: key}
}

// BusinessRuleError reports a workflow-level rule violation, such as an
// attendance record referencing a course that does not exist or an update
// against a finalized course.
type BusinessRuleError struct {
	Rule    string
	Message string
}

// Error implements the error interface
func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule %s: %s", e.Rule, e.Message)
}

// Unwrap links the error to ErrBusinessRule
func (e *BusinessRuleError) Unwrap() error { return ErrBusinessRule }

// NewBusinessRuleError creates a BusinessRuleError for a named rule
func NewBusinessRuleError(rule, message string) error {
	return &BusinessRuleError{Rule: rule, Message: message}
}

// PersistenceError wraps a storage failure without swallowing it. The
// underlying error stays reachable through errors.Is/As.
type PersistenceError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

// Unwrap exposes both the category sentinel and the wrapped cause
func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }

// NewPersistenceError wraps err as a PersistenceError for operation op
func NewPersistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
