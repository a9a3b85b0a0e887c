package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("conflict")

	// ErrUpstreamProcessingFailed is returned when the document-understanding
	// capability reports that it could not process a document.
	ErrUpstreamProcessingFailed = errors.New("upstream processing failed")

	// ErrUpstreamResponseInvalid is returned when the capability's structured
	// output is empty or does not match the quote schema.
	ErrUpstreamResponseInvalid = errors.New("upstream response invalid")

	// ErrExtractionInProgress is returned when an extraction run is already
	// active for the same source. It unwraps to ErrConflict.
	ErrExtractionInProgress = fmt.Errorf("extraction already in progress: %w", ErrConflict)
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// UpstreamError carries the raw message reported by the document-understanding
// capability. It unwraps to one of the Upstream sentinels.
type UpstreamError struct {
	Kind    error
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Kind }

// NewUpstreamFailed wraps a raw failure message from the capability.
func NewUpstreamFailed(message string) *UpstreamError {
	return &UpstreamError{Kind: ErrUpstreamProcessingFailed, Message: message}
}

// NewUpstreamInvalid describes why the capability's output was rejected.
func NewUpstreamInvalid(message string) *UpstreamError {
	return &UpstreamError{Kind: ErrUpstreamResponseInvalid, Message: message}
}
