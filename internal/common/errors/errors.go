// Package errors provides the standardized error taxonomy for the chatbot
// pipeline. Every failure surfaced to the caller maps to one of four typed
// errors; raw SQL and credentials never travel inside error messages.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed         ErrorCode = "VALIDATION_FAILED"
	ErrCodeUnsafeQuery              ErrorCode = "UNSAFE_QUERY"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeLLMUnavailable           ErrorCode = "LLM_UNAVAILABLE"
)

// ValidationError marks unusable input: an empty message, or an intent whose
// required entity (e.g. an identifier for a lookup) was not extracted. It is
// answered with a clarification prompt, never treated as a server fault.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s[%s]: %s", ErrCodeValidationFailed, e.Field, e.Message)
}

// NewValidationError creates a clarification-grade input error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// UnsafeQueryError marks a validator rejection. Reason is safe to log but the
// rejected SQL text itself must not be shown to the caller.
type UnsafeQueryError struct {
	Reason string
}

func (e *UnsafeQueryError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCodeUnsafeQuery, e.Reason)
}

// NewUnsafeQueryError creates a validator rejection error.
func NewUnsafeQueryError(reason string) *UnsafeQueryError {
	return &UnsafeQueryError{Reason: reason}
}

// ExecutionError marks a data-store failure during a validated SELECT.
type ExecutionError struct {
	Code    ErrorCode
	Message string
	cause   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ExecutionError) Unwrap() error { return e.cause }

// NewExecutionError wraps a driver error. The driver text is kept on the
// wrapped cause for logs; Message carries the caller-safe summary.
func NewExecutionError(message string, cause error) *ExecutionError {
	return &ExecutionError{Code: ErrCodeQueryExecutionFailed, Message: message, cause: cause}
}

// NewConnectionError wraps a connect/ping failure.
func NewConnectionError(cause error) *ExecutionError {
	return &ExecutionError{Code: ErrCodeDatabaseConnectionFailed, Message: "database connection failed", cause: cause}
}

// UpstreamError marks an LLM collaborator failure. The orchestrator demotes
// it to the introspection fallback instead of failing the request.
type UpstreamError struct {
	Service string
	cause   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s[%s]: %v", ErrCodeLLMUnavailable, e.Service, e.cause)
}

func (e *UpstreamError) Unwrap() error { return e.cause }

// NewUpstreamError wraps an LLM client failure.
func NewUpstreamError(service string, cause error) *UpstreamError {
	return &UpstreamError{Service: service, cause: cause}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsUnsafeQuery reports whether err is (or wraps) an UnsafeQueryError.
func IsUnsafeQuery(err error) bool {
	var u *UnsafeQueryError
	return errors.As(err, &u)
}

// IsExecution reports whether err is (or wraps) an ExecutionError.
func IsExecution(err error) bool {
	var x *ExecutionError
	return errors.As(err, &x)
}

// IsUpstream reports whether err is (or wraps) an UpstreamError.
func IsUpstream(err error) bool {
	var u *UpstreamError
	return errors.As(err, &u)
}
